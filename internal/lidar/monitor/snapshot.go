package monitor

import (
	"sync"
	"time"

	"github.com/banshee-data/rangesim/internal/agent"
)

// TickState is the agent state published after a completed tick.
type TickState struct {
	Tick      int            `json:"tick"`
	Direction string         `json:"direction,omitempty"`
	Moved     bool           `json:"moved"`
	Blocked   int            `json:"blocked"`
	Snapshot  agent.Snapshot `json:"snapshot"`
	Published time.Time      `json:"published"`
	// PlotFile is the frame written for this tick, relative to the
	// server's plot directory. Empty when plotting is off.
	PlotFile  string         `json:"plot_file,omitempty"`
}

// SnapshotHolder hands the latest tick state from the simulation loop to
// HTTP handlers. The simulation loop is the only writer.
type SnapshotHolder struct {
	mu     sync.RWMutex
	latest *TickState
}

// NewSnapshotHolder returns an empty holder.
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Publish replaces the latest state.
func (h *SnapshotHolder) Publish(st TickState) {
	if st.Published.IsZero() {
		st.Published = time.Now()
	}
	h.mu.Lock()
	h.latest = &st
	h.mu.Unlock()
}

// Latest returns the most recent state, or false when nothing has been
// published yet.
func (h *SnapshotHolder) Latest() (TickState, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return TickState{}, false
	}
	return *h.latest, true
}
