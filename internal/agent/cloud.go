package agent

import (
	"image"

	"github.com/banshee-data/rangesim/internal/lidar"
)

// CloudEntry is one deduplicated point of a cloud together with the emitter
// position it was observed from.
type CloudEntry struct {
	Point  image.Point `json:"point"`
	Origin lidar.Vec2  `json:"origin"`
}

// Cloud is an insertion-ordered set of CloudEntry keyed by Point. The first
// entry for a point wins; later entries with the same point are dropped.
type Cloud struct {
	entries []CloudEntry
	index   map[image.Point]struct{}
}

// NewCloud returns an empty cloud.
func NewCloud() *Cloud {
	return &Cloud{index: make(map[image.Point]struct{})}
}

// Add inserts e unless its point is already present. It reports whether the
// entry was added.
func (c *Cloud) Add(e CloudEntry) bool {
	if _, ok := c.index[e.Point]; ok {
		return false
	}
	c.index[e.Point] = struct{}{}
	c.entries = append(c.entries, e)
	return true
}

// Contains reports whether p is in the cloud.
func (c *Cloud) Contains(p image.Point) bool {
	_, ok := c.index[p]
	return ok
}

// Reset empties the cloud.
func (c *Cloud) Reset() {
	c.entries = c.entries[:0]
	clear(c.index)
}

// Len returns the number of distinct points.
func (c *Cloud) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in insertion order.
func (c *Cloud) Entries() []CloudEntry {
	out := make([]CloudEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
