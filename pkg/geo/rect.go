// Package geo provides the 2D primitives used by the layout engine.
// All geometry is axis-aligned: zones are reduced to bounding rectangles
// before they reach the optimizer, so the kernel never needs polygon math.
package geo

// Point represents a point on the floor plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Width and height are never negative.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect is a shorthand constructor for Rect.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// BoundsOf returns the axis-aligned bounding rectangle of the given points.
// Returns the zero Rect for an empty slice.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Area returns width * height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.Width &&
		r.Y <= p.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and o overlap. The test is closed-interval:
// rectangles that merely touch along an edge count as intersecting. Every
// admissibility check in the engine goes through this single predicate so
// the tie-break is consistent everywhere.
func (r Rect) Intersects(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// Expand returns r grown by buf on all four sides.
func (r Rect) Expand(buf float64) Rect {
	return Rect{
		X:      r.X - buf,
		Y:      r.Y - buf,
		Width:  r.Width + 2*buf,
		Height: r.Height + 2*buf,
	}
}

// Translate returns r shifted by (dx, dy). Size is unchanged.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}
