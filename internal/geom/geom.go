// Package geom provides the 2D primitives shared by the generators and
// the layout solvers: float vectors, integer grid cells, and rectangles.
package geom

import "math"

// Vec2 is a 2D floating-point vector. Y grows downward (screen coordinates).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns the negation of v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Length returns the magnitude of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns v scaled to unit length. A zero vector falls back to
// east (1, 0) so callers never see NaN components.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{1, 0}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated by rad radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Snap rounds both components to the nearest multiple of step.
// A non-positive step returns v unchanged.
func (v Vec2) Snap(step float64) Vec2 {
	if step <= 0 {
		return v
	}
	return Vec2{
		math.Round(v.X/step) * step,
		math.Round(v.Y/step) * step,
	}
}

// Cell is an integer grid coordinate used during generation before
// conversion to a pixel position.
type Cell struct {
	X, Y int
}

// Add returns c offset by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y}
}

// Vec returns the cell as a float vector.
func (c Cell) Vec() Vec2 {
	return Vec2{float64(c.X), float64(c.Y)}
}

// Rect is an axis-aligned rectangle described by its center and size.
type Rect struct {
	Center Vec2
	Size   Vec2
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.Center.X - r.Size.X/2, r.Center.Y - r.Size.Y/2}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.Center.X + r.Size.X/2, r.Center.Y + r.Size.Y/2}
}

// Shrink returns a rectangle reduced by margin on every side. The size
// never goes below zero.
func (r Rect) Shrink(margin float64) Rect {
	w := math.Max(0, r.Size.X-2*margin)
	h := math.Max(0, r.Size.Y-2*margin)
	return Rect{Center: r.Center, Size: Vec2{w, h}}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min().X < o.Max().X && r.Max().X > o.Min().X &&
		r.Min().Y < o.Max().Y && r.Max().Y > o.Min().Y
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to the [lo, hi] range.
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
