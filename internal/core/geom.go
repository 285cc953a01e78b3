// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec3 is a point or direction in corridor space.
// The travel axis is Z; the player advances toward negative Z.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new vector.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo returns the Euclidean distance between two points.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Len()
}

// HalfExtents describes an axis-aligned box by its half sizes.
type HalfExtents struct {
	X, Y, Z float64
}

// Cube returns equal half extents on all axes.
func Cube(h float64) HalfExtents {
	return HalfExtents{X: h, Y: h, Z: h}
}

// Overlaps reports whether two axis-aligned boxes centered at a and b overlap.
// Each axis is tested independently against the sum of half extents.
// Touching boxes do not overlap.
func Overlaps(a Vec3, ha HalfExtents, b Vec3, hb HalfExtents) bool {
	if math.Abs(a.X-b.X) >= ha.X+hb.X {
		return false
	}
	if math.Abs(a.Y-b.Y) >= ha.Y+hb.Y {
		return false
	}
	return math.Abs(a.Z-b.Z) < ha.Z+hb.Z
}

// CrossesSlab reports whether a point lies within a slab of the given half
// thickness around planeZ on the travel axis.
func CrossesSlab(p Vec3, planeZ, halfThickness float64) bool {
	return math.Abs(p.Z-planeZ) < halfThickness
}

// Rect represents an axis-aligned rectangle on the screen grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
