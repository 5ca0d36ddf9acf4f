package lidar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSpawnPoint_OpenMap(t *testing.T) {
	g := emptyGrid(t, 200, 150)
	opts := DefaultSpawnOptions()
	opts.Seed = 1

	p, err := FindSpawnPoint(g, 20, opts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.X, 0.0)
	assert.Less(t, p.X, 200.0)
	assert.GreaterOrEqual(t, p.Y, 0.0)
	assert.Less(t, p.Y, 150.0)
}

func TestFindSpawnPoint_KeepsClearOfWalls(t *testing.T) {
	g := emptyGrid(t, 200, 200)
	g.FillRect(0, 0, 200, 5)
	g.FillRect(0, 0, 5, 200)
	g.FillRect(0, 195, 200, 200)
	g.FillRect(195, 0, 200, 200)
	g.FillRect(90, 60, 110, 140)

	opts := DefaultSpawnOptions()
	opts.Seed = 8
	const radius = 20.0

	p, err := FindSpawnPoint(g, radius, opts)
	require.NoError(t, err)

	check := newTestSensor(t, g, p, opts.RayCount, radius+opts.Clearance)
	hits, _ := check.Scan()
	assert.Empty(t, hits, "spawn point %v should have no walls within %v", p, radius+opts.Clearance)
}

func TestFindSpawnPoint_Exhausted(t *testing.T) {
	g := emptyGrid(t, 20, 20)
	g.FillRect(0, 0, 20, 20)

	opts := DefaultSpawnOptions()
	opts.MaxAttempts = 25
	opts.Seed = 2

	_, err := FindSpawnPoint(g, 5, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSpawnPoint))
}

func TestFindSpawnPoint_InvalidOptions(t *testing.T) {
	g := emptyGrid(t, 20, 20)

	opts := DefaultSpawnOptions()
	opts.MaxAttempts = 0
	_, err := FindSpawnPoint(g, 5, opts)
	assert.Error(t, err)

	opts = DefaultSpawnOptions()
	opts.Clearance = -1
	_, err = FindSpawnPoint(g, 5, opts)
	assert.Error(t, err)

	opts = DefaultSpawnOptions()
	opts.RayCount = 0
	_, err = FindSpawnPoint(g, 5, opts)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSpawnPoint))
}
