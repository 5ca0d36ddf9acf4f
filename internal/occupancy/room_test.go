package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	g, err := NewRoom(300, 200)
	require.NoError(t, err)

	// Border.
	for _, p := range [][2]int{{0, 0}, {299, 199}, {4, 100}, {150, 195}, {295, 10}} {
		assert.True(t, g.IsOccupied(p[0], p[1]), "border %v", p)
	}
	// Pillars at x=100 and x=200, y in [66,133).
	assert.True(t, g.IsOccupied(100, 100))
	assert.True(t, g.IsOccupied(200, 100))
	assert.False(t, g.IsOccupied(100, 50))
	// Open floor.
	assert.False(t, g.IsOccupied(150, 100))
	assert.False(t, g.IsOccupied(50, 50))
}

func TestNewRoom_InvalidDimensions(t *testing.T) {
	_, err := NewRoom(0, 10)
	assert.Error(t, err)
}
