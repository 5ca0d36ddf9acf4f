package lidar

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/banshee-data/rangesim/internal/monitoring"
	"github.com/banshee-data/rangesim/internal/occupancy"
)

// ErrNoSpawnPoint is returned when FindSpawnPoint exhausts its attempts.
var ErrNoSpawnPoint = errors.New("no spawn point found")

// DefaultSpawnClearance is the free space required around an agent's radius.
const DefaultSpawnClearance = 10.0

// SpawnOptions bound the spawn-point search.
type SpawnOptions struct {
	MaxAttempts   int
	Clearance     float64
	RayCount      int
	SamplesPerRay int
	Seed          uint64
}

// DefaultSpawnOptions returns the options used by the simulation runner.
func DefaultSpawnOptions() SpawnOptions {
	return SpawnOptions{
		MaxAttempts:   1000,
		Clearance:     DefaultSpawnClearance,
		RayCount:      60,
		SamplesPerRay: DefaultSamplesPerRay,
	}
}

// FindSpawnPoint samples random pixels of m until a zero-noise scan with
// range radius+Clearance reports no hits. It gives up after MaxAttempts and
// returns ErrNoSpawnPoint.
func FindSpawnPoint(m occupancy.Map, radius float64, opts SpawnOptions) (Vec2, error) {
	if opts.MaxAttempts <= 0 {
		return Vec2{}, fmt.Errorf("max attempts must be positive, got %d", opts.MaxAttempts)
	}
	if opts.Clearance < 0 {
		return Vec2{}, fmt.Errorf("clearance must be non-negative, got %f", opts.Clearance)
	}

	probe, err := NewRangeSensor(ScanConfig{
		RayCount:      opts.RayCount,
		MaxRange:      radius + opts.Clearance,
		SamplesPerRay: opts.SamplesPerRay,
	}, m, Vec2{})
	if err != nil {
		return Vec2{}, fmt.Errorf("spawn probe: %w", err)
	}

	w, h := m.Bounds()
	rng := rand.New(newSource(opts.Seed))
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		candidate := Vec2{X: float64(rng.IntN(w)), Y: float64(rng.IntN(h))}
		probe.SetPosition(candidate)
		if hits, _ := probe.Scan(); len(hits) == 0 {
			monitoring.Debugf("spawn point (%.0f, %.0f) found after %d attempts",
				candidate.X, candidate.Y, attempt)
			return candidate, nil
		}
	}

	return Vec2{}, fmt.Errorf("%w after %d attempts", ErrNoSpawnPoint, opts.MaxAttempts)
}
