// Package occupancy provides the read-only binary occupancy maps that range
// sensors sample.
//
// A Map answers one question: is the integer cell (x, y) occupied? Maps are
// built once (from a PNG, from text rows, or programmatically) and then shared
// by every sensor in a session. Nothing in this package mutates a Map after it
// has been handed to a sensor; Grid.Set exists only for construction.
package occupancy
