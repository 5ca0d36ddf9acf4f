package monitor

import (
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// SimulationService is the health service name reported while the tick
// loop runs.
const SimulationService = "rangesim.Simulation"

// GRPCServer exposes the standard gRPC health service so supervisors can
// tell a running simulation from a finished one.
type GRPCServer struct {
	addr     string
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	running  atomic.Bool
	wg       sync.WaitGroup
}

// NewGRPCServer creates a server that will listen on addr. The simulation
// service starts as NOT_SERVING.
func NewGRPCServer(addr string) *GRPCServer {
	s := &GRPCServer{
		addr:   addr,
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.health.SetServingStatus(SimulationService, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Start listens on the configured address and serves in the background.
func (s *GRPCServer) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

// Serve serves on lis in the background.
func (s *GRPCServer) Serve(lis net.Listener) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("grpc server already running")
	}
	s.listener = lis
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Printf("gRPC health server listening on %s", lis.Addr())
		if err := s.server.Serve(lis); err != nil && s.running.Load() {
			log.Printf("gRPC server error: %v", err)
		}
	}()
	return nil
}

// SetServing flips the simulation service status.
func (s *GRPCServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(SimulationService, status)
}

// Stop marks every service NOT_SERVING and drains connections.
func (s *GRPCServer) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.health.Shutdown()
	s.server.GracefulStop()
	s.wg.Wait()
	log.Printf("gRPC server stopped")
}
