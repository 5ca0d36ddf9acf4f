package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/rangesim/internal/agent"
	"github.com/banshee-data/rangesim/internal/config"
	"github.com/banshee-data/rangesim/internal/db"
	"github.com/banshee-data/rangesim/internal/fsutil"
	"github.com/banshee-data/rangesim/internal/lidar"
	"github.com/banshee-data/rangesim/internal/lidar/monitor"
	"github.com/banshee-data/rangesim/internal/monitoring"
	"github.com/banshee-data/rangesim/internal/occupancy"
	"github.com/banshee-data/rangesim/internal/version"
)

var (
	configFile  = flag.String("config", "", "Path to a JSON simulation config (default: built-in defaults)")
	mapFile     = flag.String("map", "", "PNG occupancy map; walls are pixels matching wall_color (default: generated room)")
	width       = flag.Int("width", 0, "Map width in pixels (overrides config)")
	height      = flag.Int("height", 0, "Map height in pixels (overrides config)")
	moveScript  = flag.String("moves", "", "Move script of U/D/L/R letters; empty means random walk")
	tickBudget  = flag.Int("ticks", 0, "Random-walk ticks to run (0 runs until interrupted)")
	dbFile      = flag.String("db", "", "Path to the SQLite database file (empty disables persistence)")
	plotDir     = flag.String("plot-dir", "", "Directory for per-tick PNG plots (empty disables plotting)")
	listen      = flag.String("listen", "", "HTTP monitor listen address, e.g. :8082 (empty disables)")
	grpcListen  = flag.String("grpc-listen", "", "gRPC health service listen address, e.g. :50051 (empty disables)")
	tickFlag    = flag.Duration("tick", -1, "Delay between ticks (overrides config; 0 runs flat out)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (overrides config; 0 keeps config value)")
	verbose     = flag.Bool("v", false, "Log every scan and move")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// loadConfig applies command-line overrides on top of the config file.
func loadConfig() (*config.SimConfig, error) {
	cfg := config.EmptySimConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadSimConfig(*configFile); err != nil {
			return nil, err
		}
	}
	if *width > 0 {
		cfg.MapWidth = width
	}
	if *height > 0 {
		cfg.MapHeight = height
	}
	if *tickFlag >= 0 {
		s := tickFlag.String()
		cfg.TickInterval = &s
	}
	if *seedFlag != 0 {
		cfg.Seed = seedFlag
	}
	return cfg, cfg.Validate()
}

// loadWorld reads the PNG map, or generates a walled room when none is
// given. A width or height of zero keeps the image's own size.
func loadWorld(cfg *config.SimConfig, path string) (occupancy.Map, error) {
	w, h := cfg.GetMapWidth(), cfg.GetMapHeight()
	if path == "" {
		return occupancy.NewRoom(w, h)
	}
	m, err := occupancy.LoadImageMap(path, w, h, cfg.GetWallColor())
	if err != nil {
		return nil, err
	}
	return m, nil
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("rangesim", version.String())
		return
	}
	monitoring.SetVerbose(*verbose)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var moves []agent.Direction
	if *moveScript != "" {
		if moves, err = agent.ParseMoves(*moveScript); err != nil {
			log.Fatalf("invalid -moves: %v", err)
		}
	}

	world, err := loadWorld(cfg, *mapFile)
	if err != nil {
		log.Fatalf("failed to load map: %v", err)
	}
	w, h := world.Bounds()
	log.Printf("map %dx%d loaded", w, h)

	sim, err := newSimulation(cfg, world)
	if err != nil {
		if errors.Is(err, lidar.ErrNoSpawnPoint) {
			log.Fatalf("map has no free area for an agent of radius %.1f: %v", cfg.GetAgentRadius(), err)
		}
		log.Fatalf("failed to set up simulation: %v", err)
	}
	sim.moves = moves
	sim.ticks = *tickBudget
	p := sim.agent.Position()
	log.Printf("agent %s spawned at (%.0f, %.0f)", sim.agent.ID(), p.X, p.Y)

	if *dbFile != "" {
		store, err := db.Open(*dbFile)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer store.Close()
		sess := &db.Session{
			AgentID:          sim.agent.ID(),
			MapSource:        *mapFile,
			MapWidth:         w,
			MapHeight:        h,
			RayCount:         cfg.GetRayCount(),
			MaxRange:         cfg.GetMaxRange(),
			SamplesPerRay:    cfg.GetSamplesPerRay(),
			DistanceVariance: cfg.GetDistanceVariance(),
			AngleVariance:    cfg.GetAngleVariance(),
			AgentRadius:      cfg.GetAgentRadius(),
			MovementStep:     cfg.GetMovementStep(),
		}
		if err := store.StartSession(sess); err != nil {
			log.Fatalf("failed to start session: %v", err)
		}
		sim.store = store
		sim.sessionID = sess.SessionID
		log.Printf("recording session %s to %s", sess.SessionID, *dbFile)
	}

	if *plotDir != "" {
		dir := filepath.Join(*plotDir, time.Now().Format("20060102_150405"))
		if sim.plotter, err = monitor.NewCloudPlotter(fsutil.OSFileSystem{}, dir, world); err != nil {
			log.Fatalf("failed to create plotter: %v", err)
		}
		sim.plotBase = *plotDir
		log.Printf("writing plots to %s", dir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if *listen != "" {
		sim.snapshots = monitor.NewSnapshotHolder()
		ws := monitor.NewWebServer(monitor.WebServerConfig{
			Address:   *listen,
			Snapshots: sim.snapshots,
			DB:        sim.store,
			SessionID: sim.sessionID,
			PlotDir:   *plotDir,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ws.Start(ctx); err != nil {
				log.Printf("monitor stopped: %v", err)
			}
		}()
	}

	var grpcSrv *monitor.GRPCServer
	if *grpcListen != "" {
		grpcSrv = monitor.NewGRPCServer(*grpcListen)
		if err := grpcSrv.Start(); err != nil {
			log.Fatalf("failed to start gRPC server: %v", err)
		}
		defer grpcSrv.Stop()
		grpcSrv.SetServing(true)
	}

	ticks, runErr := sim.run(ctx)
	if grpcSrv != nil {
		grpcSrv.SetServing(false)
	}
	moved, blocked := sim.agent.MoveStats()
	log.Printf("completed %d ticks: %d moves, %d blocked, %d points in cloud",
		ticks, moved, blocked, len(sim.agent.PointCloud()))

	// Keep serving the final state until interrupted.
	if runErr == nil && *listen != "" && ctx.Err() == nil {
		log.Printf("monitor still serving on %s; interrupt to exit", *listen)
		<-ctx.Done()
	}
	stop()
	wg.Wait()

	if runErr != nil {
		log.Fatalf("simulation failed: %v", runErr)
	}
}
