package lidar

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec2 is a continuous 2D position in map pixels.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Project converts a polar reading taken at origin into map coordinates.
// Coordinate convention: screen space, y down, angle in radians.
func Project(distance, angle float64, origin Vec2) Vec2 {
	return Vec2{
		X: origin.X + math.Cos(angle)*distance,
		Y: origin.Y + math.Sin(angle)*distance,
	}
}

// PixelOf rounds a continuous position to the nearest integer pixel.
func PixelOf(v Vec2) image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}
