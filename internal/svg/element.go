package svg

import (
	"encoding/xml"
	"strings"

	"github.com/gogpu/gg"
	"github.com/specialistvlad/musjego/internal/typeface"
)

// Element is a drawable node of a document.
type Element interface {
	// BBox returns the bounding box in the parent's coordinates.
	BBox() Rect
	encode(e *xml.Encoder) error
}

// Group is a <g> element. A group with an ID can be referenced by Use.
type Group struct {
	ID    string
	Class string

	// Inherited text presentation.
	FontSize   float64
	FontWeight string
	Anchor     string

	Children []Element

	transform *gg.Matrix
}

// NewGroup creates an empty group.
func NewGroup(id string, children ...Element) *Group {
	return &Group{ID: id, Children: children}
}

// Add appends children and returns g.
func (g *Group) Add(els ...Element) *Group {
	g.Children = append(g.Children, els...)
	return g
}

// SetTransform replaces the transform of g.
func (g *Group) SetTransform(m gg.Matrix) {
	g.transform = &m
}

// Transform returns the transform of g, the identity when none was set.
func (g *Group) Transform() gg.Matrix {
	if g.transform == nil {
		return gg.Identity()
	}
	return *g.transform
}

// ContentBBox returns the box of the children, ignoring the transform of g.
func (g *Group) ContentBBox() Rect {
	var b Bounds
	for _, c := range g.Children {
		b.Add(c.BBox())
	}
	return b.Rect()
}

func (g *Group) BBox() Rect {
	var b Bounds
	for _, c := range g.Children {
		b.Add(c.BBox())
	}
	if b.Empty() {
		return Rect{}
	}
	if g.transform == nil {
		return b.Rect()
	}
	return b.Rect().Transform(*g.transform)
}

// Text is a <text> element measured at creation.
type Text struct {
	X, Y       float64
	Content    string
	FontSize   float64
	FontWeight string
	// Anchor is the SVG text-anchor: "" (start), "middle" or "end".
	Anchor string

	extent typeface.Extent
}

// NewText creates a text element and measures it with m.
func NewText(m typeface.Measurer, x, y float64, content string, size float64, weight, anchor string) *Text {
	return &Text{
		X:          x,
		Y:          y,
		Content:    content,
		FontSize:   size,
		FontWeight: weight,
		Anchor:     anchor,
		extent:     m.Measure(content, size, weight),
	}
}

// Left returns the x of the start of the text after anchoring.
func (t *Text) Left() float64 {
	switch t.Anchor {
	case "middle":
		return t.X - t.extent.Advance/2
	case "end":
		return t.X - t.extent.Advance
	}
	return t.X
}

func (t *Text) BBox() Rect {
	return Rect{
		X:      t.Left(),
		Y:      t.Y - t.extent.Ascent,
		Width:  t.extent.Advance,
		Height: t.extent.Ascent + t.extent.Descent,
	}
}

// Line is a <line> element.
type Line struct {
	X1, Y1, X2, Y2 float64
	StrokeWidth    float64
	Class          string
}

func (l *Line) BBox() Rect {
	var b Bounds
	b.AddPoint(l.X1, l.Y1)
	b.AddPoint(l.X2, l.Y2)
	return b.Rect()
}

// Circle is a filled <circle> element.
type Circle struct {
	CX, CY, R float64
}

func (c *Circle) BBox() Rect {
	return Rect{X: c.CX - c.R, Y: c.CY - c.R, Width: 2 * c.R, Height: 2 * c.R}
}

// PathCmd is one absolute path command: 'M' (move) or 'L' (line).
type PathCmd struct {
	Op   byte
	X, Y float64
}

// Path is a stroked <path> made of straight segments.
type Path struct {
	Cmds        []PathCmd
	StrokeWidth float64
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	p.Cmds = append(p.Cmds, PathCmd{Op: 'M', X: x, Y: y})
	return p
}

// LineTo draws a segment from the current point.
func (p *Path) LineTo(x, y float64) *Path {
	p.Cmds = append(p.Cmds, PathCmd{Op: 'L', X: x, Y: y})
	return p
}

// D returns the path data attribute.
func (p *Path) D() string {
	var b strings.Builder
	for _, c := range p.Cmds {
		b.WriteByte(c.Op)
		b.WriteString(num(c.X))
		b.WriteByte(',')
		b.WriteString(num(c.Y))
	}
	return b.String()
}

func (p *Path) BBox() Rect {
	var b Bounds
	for _, c := range p.Cmds {
		b.AddPoint(c.X, c.Y)
	}
	return b.Rect()
}

// Use is a <use> reference to a definition placed at X, Y.
type Use struct {
	Ref  *Group
	X, Y float64
}

func (u *Use) BBox() Rect {
	if u.Ref == nil {
		return Rect{X: u.X, Y: u.Y}
	}
	return u.Ref.BBox().Translate(u.X, u.Y)
}
