package agent

import "github.com/banshee-data/rangesim/internal/lidar"

// Snapshot is an immutable copy of the agent state a renderer or store
// consumes after a completed tick.
type Snapshot struct {
	AgentID  string       `json:"agent_id"`
	Position lidar.Vec2   `json:"position"`
	Radius   float64      `json:"radius"`
	MaxRange float64      `json:"max_range"`
	Points   []CloudEntry `json:"points"`
	Rays     []CloudEntry `json:"rays"`
}

// Snapshot copies the current position and clouds.
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		AgentID:  a.id,
		Position: a.pos,
		Radius:   a.radius,
		MaxRange: a.sensor.Config().MaxRange,
		Points:   a.points.Entries(),
		Rays:     a.rays.Entries(),
	}
}
