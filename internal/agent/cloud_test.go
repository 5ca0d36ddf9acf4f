package agent

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/rangesim/internal/lidar"
)

func TestCloud_FirstOccurrenceWins(t *testing.T) {
	c := NewCloud()

	assert.True(t, c.Add(CloudEntry{Point: image.Pt(1, 2), Origin: lidar.Vec2{X: 0}}))
	assert.True(t, c.Add(CloudEntry{Point: image.Pt(3, 4), Origin: lidar.Vec2{X: 1}}))
	assert.False(t, c.Add(CloudEntry{Point: image.Pt(1, 2), Origin: lidar.Vec2{X: 9}}))

	got := c.Entries()
	want := []CloudEntry{
		{Point: image.Pt(1, 2), Origin: lidar.Vec2{X: 0}},
		{Point: image.Pt(3, 4), Origin: lidar.Vec2{X: 1}},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(image.Pt(3, 4)))
	assert.False(t, c.Contains(image.Pt(4, 3)))
}

func TestCloud_Reset(t *testing.T) {
	c := NewCloud()
	c.Add(CloudEntry{Point: image.Pt(1, 1)})
	c.Reset()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains(image.Pt(1, 1)))
	assert.True(t, c.Add(CloudEntry{Point: image.Pt(1, 1)}))
}

func TestCloud_EntriesIsACopy(t *testing.T) {
	c := NewCloud()
	c.Add(CloudEntry{Point: image.Pt(5, 5)})

	entries := c.Entries()
	entries[0].Point = image.Pt(0, 0)

	assert.Equal(t, image.Pt(5, 5), c.Entries()[0].Point)
}
