package lidar

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_ScreenSpaceConvention(t *testing.T) {
	origin := Vec2{X: 100, Y: 100}

	cases := []struct {
		name  string
		angle float64
		want  image.Point
	}{
		{"east", 0, image.Pt(110, 100)},
		{"south (y down)", math.Pi / 2, image.Pt(100, 110)},
		{"west", math.Pi, image.Pt(90, 100)},
		{"north", 3 * math.Pi / 2, image.Pt(100, 90)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PixelOf(Project(10, tc.angle, origin)))
		})
	}
}

func TestPixelOf_Rounds(t *testing.T) {
	assert.Equal(t, image.Pt(60, 50), PixelOf(Vec2{X: 59.9, Y: 50.4}))
	assert.Equal(t, image.Pt(-1, 3), PixelOf(Vec2{X: -0.6, Y: 2.5}))
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Vec2{X: 1, Y: 1}, Vec2{X: 4, Y: 5}), 1e-12)
	assert.Equal(t, 0.0, Distance(Vec2{X: 3, Y: 3}, Vec2{X: 3, Y: 3}))
}

func TestVec2_Add(t *testing.T) {
	assert.Equal(t, Vec2{X: 3, Y: -1}, Vec2{X: 1, Y: 1}.Add(Vec2{X: 2, Y: -2}))
}
