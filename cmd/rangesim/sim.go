package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/banshee-data/rangesim/internal/agent"
	"github.com/banshee-data/rangesim/internal/config"
	"github.com/banshee-data/rangesim/internal/db"
	"github.com/banshee-data/rangesim/internal/lidar"
	"github.com/banshee-data/rangesim/internal/lidar/monitor"
	"github.com/banshee-data/rangesim/internal/occupancy"
	"github.com/banshee-data/rangesim/internal/timeutil"
)

// simulation owns the agent and drives it one tick at a time. Every tick
// moves (except tick 0), rescans with save=true and hands the snapshot to
// the optional store, plotter and monitor.
type simulation struct {
	world     occupancy.Map
	agent     *agent.Agent
	moves     []agent.Direction
	ticks     int
	interval  time.Duration
	clock     timeutil.Clock
	rng       *rand.Rand
	store     *db.DB
	sessionID string
	plotter   *monitor.CloudPlotter
	plotBase  string
	snapshots *monitor.SnapshotHolder
}

// deriveSeed offsets a fixed seed per consumer and keeps zero (wall clock)
// as zero.
func deriveSeed(seed, offset uint64) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + offset
}

func newSimulation(cfg *config.SimConfig, world occupancy.Map) (*simulation, error) {
	seed := cfg.GetSeed()
	radius := cfg.GetAgentRadius()

	spawnOpts := lidar.DefaultSpawnOptions()
	spawnOpts.MaxAttempts = cfg.GetSpawnMaxAttempts()
	spawnOpts.Clearance = cfg.GetSpawnClearance()
	spawnOpts.RayCount = cfg.GetRayCount()
	spawnOpts.SamplesPerRay = cfg.GetSamplesPerRay()
	spawnOpts.Seed = deriveSeed(seed, 1)
	pos, err := lidar.FindSpawnPoint(world, radius, spawnOpts)
	if err != nil {
		return nil, fmt.Errorf("spawn agent: %w", err)
	}

	sensor, err := lidar.NewRangeSensor(lidar.ScanConfig{
		RayCount:      cfg.GetRayCount(),
		MaxRange:      cfg.GetMaxRange(),
		SamplesPerRay: cfg.GetSamplesPerRay(),
		Noise: lidar.Noise{
			DistanceVariance: cfg.GetDistanceVariance(),
			AngleVariance:    cfg.GetAngleVariance(),
		},
		Seed: deriveSeed(seed, 2),
	}, world, pos)
	if err != nil {
		return nil, fmt.Errorf("create sensor: %w", err)
	}

	band := agent.CollisionBand{Min: cfg.GetCollisionBandMin(), Max: cfg.GetCollisionBandMax()}
	a := agent.New(pos, radius, cfg.GetMovementStep(), sensor, agent.WithCollisionBand(band))

	walkSeed := deriveSeed(seed, 3)
	if walkSeed == 0 {
		walkSeed = uint64(time.Now().UnixNano())
	}
	return &simulation{
		world:    world,
		agent:    a,
		interval: cfg.GetTickInterval(),
		clock:    timeutil.RealClock{},
		rng:      rand.New(rand.NewPCG(walkSeed, walkSeed^0x9e3779b97f4a7c15)),
	}, nil
}

// nextMove returns the scripted move for tick (1-based), or a random
// direction once the script is exhausted or absent. The second result is
// false when the run should stop.
func (s *simulation) nextMove(tick int) (agent.Direction, bool) {
	if len(s.moves) > 0 {
		if tick > len(s.moves) {
			return 0, false
		}
		return s.moves[tick-1], true
	}
	if s.ticks > 0 && tick > s.ticks {
		return 0, false
	}
	return agent.Direction(s.rng.IntN(4)), true
}

// step runs one tick. Tick 0 only scans.
func (s *simulation) step(tick int, dir agent.Direction) error {
	moved := false
	dirName := ""
	if tick > 0 {
		moved = s.agent.Move(dir)
		dirName = dir.String()
	}
	s.agent.DetectObstacles(true)
	snap := s.agent.Snapshot()

	if s.store != nil {
		if err := s.store.RecordTick(s.sessionID, tick, dirName, moved, snap); err != nil {
			return err
		}
	}
	plotFile := ""
	if s.plotter != nil {
		path, err := s.plotter.Plot(tick, snap)
		if err != nil {
			return err
		}
		if plotFile, err = filepath.Rel(s.plotBase, path); err != nil {
			plotFile = ""
		}
	}
	if s.snapshots != nil {
		_, blocked := s.agent.MoveStats()
		s.snapshots.Publish(monitor.TickState{
			Tick:      tick,
			Direction: dirName,
			Moved:     moved,
			Blocked:   blocked,
			Snapshot:  snap,
			Published: s.clock.Now(),
			PlotFile:  plotFile,
		})
	}
	return nil
}

// run drives ticks until the move script or tick budget is exhausted or
// ctx is cancelled. It returns the number of ticks completed.
func (s *simulation) run(ctx context.Context) (int, error) {
	if err := s.step(0, 0); err != nil {
		return 0, fmt.Errorf("tick 0: %w", err)
	}

	var ticker timeutil.Ticker
	if s.interval > 0 {
		ticker = s.clock.NewTicker(s.interval)
		defer ticker.Stop()
	}

	for tick := 1; ; tick++ {
		dir, ok := s.nextMove(tick)
		if !ok {
			return tick - 1, nil
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return tick - 1, nil
			case <-ticker.C():
			}
		} else if ctx.Err() != nil {
			return tick - 1, nil
		}
		if err := s.step(tick, dir); err != nil {
			return tick - 1, fmt.Errorf("tick %d: %w", tick, err)
		}
		if tick%100 == 0 {
			moves, blocked := s.agent.MoveStats()
			p := s.agent.Position()
			log.Printf("tick %d: pos=(%.1f, %.1f) moves=%d blocked=%d hits=%d",
				tick, p.X, p.Y, moves, blocked, len(s.agent.PointCloud()))
		}
	}
}
