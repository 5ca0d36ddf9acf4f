package monitor

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func dialBuf(t *testing.T, lis *bufconn.Listener) healthpb.HealthClient {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func checkStatus(t *testing.T, client healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: SimulationService})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestGRPCServer_HealthFollowsSimulation(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	s := NewGRPCServer("bufnet")
	require.NoError(t, s.Serve(lis))
	defer s.Stop()

	client := dialBuf(t, lis)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client))

	s.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client))

	s.SetServing(false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client))
}

func TestGRPCServer_DoubleServeAndStop(t *testing.T) {
	s := NewGRPCServer("bufnet")
	require.NoError(t, s.Serve(bufconn.Listen(1<<16)))
	assert.Error(t, s.Serve(bufconn.Listen(1<<16)))
	s.Stop()
	s.Stop()
}

func TestGRPCServer_StartListenError(t *testing.T) {
	s := NewGRPCServer("256.0.0.1:bad")
	assert.Error(t, s.Start())
}
