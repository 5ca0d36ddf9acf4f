// Package lidar simulates a rotating 2D range sensor over an occupancy map.
//
// Responsibilities: casting a full rotation of rays from the emitter,
// classifying each ray as a hit (nearest occupied cell within range) or a
// wasted ray, applying Gaussian range/bearing noise to hits, and the
// zero-noise spawn-point search built on the same scan.
//
// Coordinate convention: screen space, y grows downward. A reading at
// (distance, angle) from origin projects to
//
//	x = origin.X + cos(angle)*distance
//	y = origin.Y + sin(angle)*distance
//
// Every consumer must use Project for this so point clouds line up with the
// rays that produced them.
package lidar
