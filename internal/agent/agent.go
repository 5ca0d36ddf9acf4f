// Package agent implements a manually steered mobile agent that carries a
// range sensor, keeps a deduplicated point/ray cloud of its latest scan and
// refuses moves that would bring it too close to an obstacle.
package agent

import (
	"github.com/google/uuid"

	"github.com/banshee-data/rangesim/internal/lidar"
	"github.com/banshee-data/rangesim/internal/monitoring"
)

// CollisionBand is the inclusive range of hit distances that blocks a move.
// Hits closer than Min are ignored.
type CollisionBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultCollisionBand is the historical [10, 23] band.
var DefaultCollisionBand = CollisionBand{Min: 10, Max: 23}

// Contains reports whether d lies in the band.
func (b CollisionBand) Contains(d float64) bool { return d >= b.Min && d <= b.Max }

// Option configures an Agent.
type Option func(*Agent)

// WithCollisionBand overrides DefaultCollisionBand.
func WithCollisionBand(b CollisionBand) Option {
	return func(a *Agent) { a.band = b }
}

// WithID sets the agent identifier. The default is a random UUID.
func WithID(id string) Option {
	return func(a *Agent) { a.id = id }
}

// Agent owns a position, a body radius, a step size and one sensor.
//
// Agent is not safe for concurrent use. External observers should read
// Snapshot values published between moves, never the agent itself.
type Agent struct {
	id     string
	pos    lidar.Vec2
	radius float64
	step   float64
	sensor *lidar.RangeSensor
	band   CollisionBand

	points *Cloud
	rays   *Cloud

	moves   int
	blocked int
}

// New returns an agent at pos with empty clouds. The sensor is moved onto
// the agent's position.
func New(pos lidar.Vec2, radius, step float64, sensor *lidar.RangeSensor, opts ...Option) *Agent {
	a := &Agent{
		id:     uuid.NewString(),
		pos:    pos,
		radius: radius,
		step:   step,
		sensor: sensor,
		band:   DefaultCollisionBand,
		points: NewCloud(),
		rays:   NewCloud(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.sensor.SetPosition(pos)
	return a
}

func (a *Agent) ID() string { return a.id }
func (a *Agent) Position() lidar.Vec2 { return a.pos }
func (a *Agent) Radius() float64 { return a.radius }
func (a *Agent) Step() float64 { return a.step }
func (a *Agent) Sensor() *lidar.RangeSensor { return a.sensor }
func (a *Agent) CollisionBand() CollisionBand { return a.band }
func (a *Agent) PointCloud() []CloudEntry { return a.points.Entries() }
func (a *Agent) RayCloud() []CloudEntry { return a.rays.Entries() }
func (a *Agent) MoveStats() (moves, blocked int) { return a.moves, a.blocked }

// DetectObstacles scans from the sensor's current position.
//
// With save set, both clouds are cleared and rebuilt from the scan and nil
// slices are returned. Without save, the raw readings are returned and the
// stored clouds are left untouched; Move uses this to probe.
func (a *Agent) DetectObstacles(save bool) ([]lidar.RayHit, []lidar.WastedRay) {
	hits, misses := a.sensor.Scan()
	if !save {
		return hits, misses
	}

	a.points.Reset()
	for _, h := range hits {
		a.points.Add(CloudEntry{Point: lidar.PixelOf(h.Point()), Origin: h.Origin})
	}

	a.rays.Reset()
	for _, m := range misses {
		a.rays.Add(CloudEntry{Point: lidar.PixelOf(m.Endpoint()), Origin: m.Origin})
	}
	return nil, nil
}

// Move tries one step in dir. The sensor is moved to the candidate position
// and probed; a hit inside the collision band rolls the sensor back and the
// agent stays put. It reports whether the move was committed. On return the
// sensor and agent positions are always equal.
func (a *Agent) Move(dir Direction) bool {
	candidate := a.pos.Add(dir.offset(a.step))

	a.sensor.SetPosition(candidate)
	hits, _ := a.DetectObstacles(false)

	for _, h := range hits {
		if a.band.Contains(h.Distance) {
			a.sensor.SetPosition(a.pos)
			a.blocked++
			monitoring.Debugf("agent %s: %s to (%.1f, %.1f) blocked, hit at %.2f",
				a.id, dir, candidate.X, candidate.Y, h.Distance)
			return false
		}
	}

	a.pos = candidate
	a.moves++
	return true
}
