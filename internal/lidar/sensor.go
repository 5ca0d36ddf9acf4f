package lidar

import (
	"fmt"
	"math"

	"github.com/banshee-data/rangesim/internal/monitoring"
	"github.com/banshee-data/rangesim/internal/occupancy"
)

// RayHit is a ray that struck an occupied cell within range. Distance and
// Angle carry measurement noise; Origin is the nominal emitter position.
type RayHit struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
	Origin   Vec2    `json:"origin"`
}

// Point projects the hit into map coordinates.
func (h RayHit) Point() Vec2 { return Project(h.Distance, h.Angle, h.Origin) }

// WastedRay is a ray that found nothing within range. Distance is always the
// sensor's MaxRange and Angle is the nominal, un-noised ray angle.
type WastedRay struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
	Origin   Vec2    `json:"origin"`
}

// Endpoint projects the far end of the ray into map coordinates.
func (r WastedRay) Endpoint() Vec2 { return Project(r.Distance, r.Angle, r.Origin) }

// RangeSensor casts a fan of rays over a read-only occupancy map.
type RangeSensor struct {
	cfg    ScanConfig
	world  occupancy.Map
	pos    Vec2
	angles []float64
	noise  *noiseModel
	scans  uint64
}

// NewRangeSensor validates cfg and returns a sensor at pos. A zero
// SamplesPerRay selects DefaultSamplesPerRay.
func NewRangeSensor(cfg ScanConfig, world occupancy.Map, pos Vec2) (*RangeSensor, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	if world == nil {
		return nil, fmt.Errorf("occupancy map is required")
	}

	// Half-open [0, 2π): the last angle stops one step short of a full turn.
	angles := make([]float64, cfg.RayCount)
	step := 2 * math.Pi / float64(cfg.RayCount)
	for i := range angles {
		angles[i] = float64(i) * step
	}

	return &RangeSensor{
		cfg:    cfg,
		world:  world,
		pos:    pos,
		angles: angles,
		noise:  newNoiseModel(cfg.Noise, newSource(cfg.Seed)),
	}, nil
}

// Config returns the immutable scan configuration.
func (s *RangeSensor) Config() ScanConfig { return s.cfg }

// Position returns the current emitter position.
func (s *RangeSensor) Position() Vec2 { return s.pos }

// SetPosition moves the emitter. The next Scan is taken from p.
func (s *RangeSensor) SetPosition(p Vec2) { s.pos = p }

// Angles returns the nominal ray angles in scan order.
func (s *RangeSensor) Angles() []float64 {
	out := make([]float64, len(s.angles))
	copy(out, s.angles)
	return out
}

// ScanCount returns how many scans this sensor has performed.
func (s *RangeSensor) ScanCount() uint64 { return s.scans }

// Scan performs one full rotation from the current position. Every ray
// resolves to exactly one hit or one wasted ray, so
// len(hits)+len(misses) == RayCount. A scan with no hits is a valid result.
func (s *RangeSensor) Scan() (hits []RayHit, misses []WastedRay) {
	s.scans++
	origin := s.pos
	n := float64(s.cfg.SamplesPerRay)

	for _, angle := range s.angles {
		end := Project(s.cfg.MaxRange, angle, origin)
		dx, dy := end.X-origin.X, end.Y-origin.Y

		resolved := false
		for k := 0; k < s.cfg.SamplesPerRay; k++ {
			t := float64(k) / n
			sample := PixelOf(Vec2{X: origin.X + t*dx, Y: origin.Y + t*dy})

			// Off-map samples are skipped; the ray keeps marching.
			if !occupancy.InBounds(s.world, sample.X, sample.Y) {
				continue
			}
			if !s.world.IsOccupied(sample.X, sample.Y) {
				continue
			}

			d := Distance(origin, Vec2{X: float64(sample.X), Y: float64(sample.Y)})
			noisyDist, noisyAngle := s.noise.apply(d, angle)
			hits = append(hits, RayHit{
				Distance: noisyDist,
				Angle:    noisyAngle,
				Origin:   origin,
			})
			resolved = true
			break
		}

		if !resolved {
			misses = append(misses, WastedRay{
				Distance: s.cfg.MaxRange,
				Angle:    angle,
				Origin:   origin,
			})
		}
	}

	monitoring.Debugf("scan #%d at (%.1f, %.1f): %d hits, %d wasted",
		s.scans, origin.X, origin.Y, len(hits), len(misses))
	return hits, misses
}
