package svg

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned box. Y grows downward.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) X2() float64 { return r.X + r.Width }
func (r Rect) Y2() float64 { return r.Y + r.Height }
func (r Rect) CX() float64 { return r.X + r.Width/2 }
func (r Rect) CY() float64 { return r.Y + r.Height/2 }

// Transform returns the bounding box of r after m.
func (r Rect) Transform(m gg.Matrix) Rect {
	var b Bounds
	for _, p := range []gg.Point{
		{X: r.X, Y: r.Y},
		{X: r.X2(), Y: r.Y},
		{X: r.X, Y: r.Y2()},
		{X: r.X2(), Y: r.Y2()},
	} {
		q := m.TransformPoint(p)
		b.AddPoint(q.X, q.Y)
	}
	return b.Rect()
}

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Bounds accumulates a union of boxes and points. The zero value is empty.
type Bounds struct {
	minX, minY, maxX, maxY float64
	ok                     bool
}

// Add extends b to cover r.
func (b *Bounds) Add(r Rect) {
	b.AddPoint(r.X, r.Y)
	b.AddPoint(r.X2(), r.Y2())
}

// AddPoint extends b to cover (x, y).
func (b *Bounds) AddPoint(x, y float64) {
	if !b.ok {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.ok = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
}

// Empty reports whether nothing was added.
func (b *Bounds) Empty() bool { return !b.ok }

// Rect returns the union, or the zero Rect when b is empty.
func (b *Bounds) Rect() Rect {
	if !b.ok {
		return Rect{}
	}
	return Rect{X: b.minX, Y: b.minY, Width: b.maxX - b.minX, Height: b.maxY - b.minY}
}

// Near reports whether a and b differ by less than 1e-5.
func Near(a, b float64) bool {
	return math.Abs(a-b) < 0.00001
}
