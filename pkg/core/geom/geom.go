// Package geom provides the geometric primitives shared by the diagram model
// and the layout engine. Coordinates follow screen conventions: x grows to
// the right and y grows downward.
package geom

import (
	"fmt"
	"math"
)

// Point is a location in diagram coordinates.
type Point struct {
	X, Y float64
}

// String formats the point as "(x, y)".
func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Translate returns p moved by (dx, dy).
func (p Point) Translate(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Dimension is a width/height pair.
type Dimension struct {
	Width, Height float64
}

// Max returns the per-axis maximum of d and o.
func (d Dimension) Max(o Dimension) Dimension {
	return Dimension{math.Max(d.Width, o.Width), math.Max(d.Height, o.Height)}
}

// Grow returns d enlarged by dw and dh.
func (d Dimension) Grow(dw, dh float64) Dimension {
	return Dimension{d.Width + dw, d.Height + dh}
}

// Rectangle is an axis-aligned box anchored at its top-left corner.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// NewRectangle builds a rectangle from a top-left corner and a dimension.
func NewRectangle(origin Point, d Dimension) Rectangle {
	return Rectangle{X: origin.X, Y: origin.Y, Width: d.Width, Height: d.Height}
}

// MaxX returns the right edge.
func (r Rectangle) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rectangle) MaxY() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rectangle) Center() Point { return Point{r.X + r.Width/2, r.Y + r.Height/2} }

// Origin returns the top-left corner.
func (r Rectangle) Origin() Point { return Point{r.X, r.Y} }

// Dimension returns the width and height.
func (r Rectangle) Dimension() Dimension { return Dimension{r.Width, r.Height} }

// Contains reports whether p lies inside r or on its boundary.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rectangle) ContainsRect(o Rectangle) bool {
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// OnBoundary reports whether p lies on the outline of r within tolerance.
func (r Rectangle) OnBoundary(p Point, tolerance float64) bool {
	inflated := Rectangle{r.X - tolerance, r.Y - tolerance, r.Width + 2*tolerance, r.Height + 2*tolerance}
	if !inflated.Contains(p) {
		return false
	}
	return math.Abs(p.X-r.X) <= tolerance || math.Abs(p.X-r.MaxX()) <= tolerance ||
		math.Abs(p.Y-r.Y) <= tolerance || math.Abs(p.Y-r.MaxY()) <= tolerance
}

// Union returns the smallest rectangle covering both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  math.Max(r.MaxX(), o.MaxX()) - x,
		Height: math.Max(r.MaxY(), o.MaxY()) - y,
	}
}

// String formats the rectangle as "[x, y, w×h]".
func (r Rectangle) String() string {
	return fmt.Sprintf("[%g, %g, %g×%g]", r.X, r.Y, r.Width, r.Height)
}

// BoundsOf returns the line segment's bounding rectangle.
func BoundsOf(a, b Point) Rectangle {
	x, y := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return Rectangle{X: x, Y: y, Width: math.Abs(a.X - b.X), Height: math.Abs(a.Y - b.Y)}
}
