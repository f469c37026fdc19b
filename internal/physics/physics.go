// Package physics provides collision detection utilities.
package physics

import "math"

// TriangleEpsilon is the tolerance used by PointInTriangle when comparing the
// triangle's area against the sum of the three sub-triangle areas.
// Fast bullets rely on it to register against the ship's slanted edges.
const TriangleEpsilon = 0.1

// Point is a position in playfield coordinates.
type Point struct {
	X, Y float64
}

// Box is an axis-aligned rectangle given by its top-left corner and size.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// BoxesOverlap reports whether two boxes intersect.
// Boxes that only share an edge do not overlap.
func BoxesOverlap(a, b Box) bool {
	return a.X < b.Right() &&
		a.Right() > b.X &&
		a.Y < b.Bottom() &&
		a.Bottom() > b.Y
}

// PointInBox reports whether p lies inside b, edges included.
func PointInBox(p Point, b Box) bool {
	return p.X >= b.X && p.X <= b.Right() &&
		p.Y >= b.Y && p.Y <= b.Bottom()
}

// PointInTriangle reports whether p lies within the triangle (t1, t2, t3)
// using the area-sum method: p is inside when the three sub-triangles formed
// with p add up to the triangle's own area, within TriangleEpsilon.
func PointInTriangle(p, t1, t2, t3 Point) bool {
	area := TriangleArea(t1, t2, t3)
	a1 := TriangleArea(p, t1, t2)
	a2 := TriangleArea(p, t2, t3)
	a3 := TriangleArea(p, t3, t1)
	return math.Abs(area-(a1+a2+a3)) < TriangleEpsilon
}

// TriangleArea returns the unsigned area of the triangle (a, b, c).
func TriangleArea(a, b, c Point) float64 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}
