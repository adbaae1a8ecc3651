// Package svg is a small vector document model: groups, text, lines,
// circles, paths and references to reusable definitions. Boxes follow the
// SVG getBBox rules (strokes are not included).
package svg

import (
	"bufio"
	"encoding/xml"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/gg"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// Document is a drawing surface: a size, shared definitions and the
// top-level elements.
type Document struct {
	Width, Height float64
	Defs          []*Group
	Children      []Element
}

// New creates an empty document.
func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

// Clear removes every definition and element.
func (d *Document) Clear() {
	d.Defs = nil
	d.Children = nil
}

// AddDef registers a definition. Definitions are written in insertion
// order.
func (d *Document) AddDef(g *Group) {
	d.Defs = append(d.Defs, g)
}

// Def returns the definition with the given ID, or nil.
func (d *Document) Def(id string) *Group {
	for _, g := range d.Defs {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Add appends top-level elements.
func (d *Document) Add(els ...Element) {
	d.Children = append(d.Children, els...)
}

// WriteTo writes the document as SVG.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	enc := xml.NewEncoder(bw)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "svg"},
		Attr: []xml.Attr{
			attr("xmlns", Namespace),
			attr("width", num(d.Width)),
			attr("height", num(d.Height)),
			attr("viewBox", "0 0 "+num(d.Width)+" "+num(d.Height)),
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return cw.n, err
	}
	if len(d.Defs) > 0 {
		defs := xml.StartElement{Name: xml.Name{Local: "defs"}}
		if err := enc.EncodeToken(defs); err != nil {
			return cw.n, err
		}
		for _, g := range d.Defs {
			if err := g.encode(enc); err != nil {
				return cw.n, err
			}
		}
		if err := enc.EncodeToken(defs.End()); err != nil {
			return cw.n, err
		}
	}
	for _, el := range d.Children {
		if err := el.encode(enc); err != nil {
			return cw.n, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return cw.n, err
	}
	if err := enc.Flush(); err != nil {
		return cw.n, err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return cw.n, err
	}
	err := bw.Flush()
	return cw.n, err
}

func (g *Group) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "g"}}
	if g.ID != "" {
		start.Attr = append(start.Attr, attr("id", g.ID))
	}
	if g.Class != "" {
		start.Attr = append(start.Attr, attr("class", g.Class))
	}
	if g.transform != nil {
		start.Attr = append(start.Attr, attr("transform", matrix(*g.transform)))
	}
	if g.FontSize != 0 {
		start.Attr = append(start.Attr, attr("font-size", num(g.FontSize)))
	}
	if g.FontWeight != "" {
		start.Attr = append(start.Attr, attr("font-weight", g.FontWeight))
	}
	if g.Anchor != "" {
		start.Attr = append(start.Attr, attr("text-anchor", g.Anchor))
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range g.Children {
		if err := c.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (t *Text) encode(e *xml.Encoder) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "text"},
		Attr: []xml.Attr{attr("x", num(t.X)), attr("y", num(t.Y))},
	}
	if t.FontSize != 0 {
		start.Attr = append(start.Attr, attr("font-size", num(t.FontSize)))
	}
	if t.FontWeight != "" {
		start.Attr = append(start.Attr, attr("font-weight", t.FontWeight))
	}
	if t.Anchor != "" {
		start.Attr = append(start.Attr, attr("text-anchor", t.Anchor))
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.CharData(t.Content)); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (l *Line) encode(e *xml.Encoder) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "line"},
		Attr: []xml.Attr{
			attr("x1", num(l.X1)),
			attr("y1", num(l.Y1)),
			attr("x2", num(l.X2)),
			attr("y2", num(l.Y2)),
			attr("stroke", "black"),
		},
	}
	if l.StrokeWidth != 0 {
		start.Attr = append(start.Attr, attr("stroke-width", num(l.StrokeWidth)))
	}
	if l.Class != "" {
		start.Attr = append(start.Attr, attr("class", l.Class))
	}
	return empty(e, start)
}

func (c *Circle) encode(e *xml.Encoder) error {
	return empty(e, xml.StartElement{
		Name: xml.Name{Local: "circle"},
		Attr: []xml.Attr{attr("cx", num(c.CX)), attr("cy", num(c.CY)), attr("r", num(c.R))},
	})
}

func (p *Path) encode(e *xml.Encoder) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "path"},
		Attr: []xml.Attr{attr("d", p.D()), attr("stroke", "black"), attr("fill", "none")},
	}
	if p.StrokeWidth != 0 {
		start.Attr = append(start.Attr, attr("stroke-width", num(p.StrokeWidth)))
	}
	return empty(e, start)
}

func (u *Use) encode(e *xml.Encoder) error {
	href := ""
	if u.Ref != nil {
		href = "#" + u.Ref.ID
	}
	return empty(e, xml.StartElement{
		Name: xml.Name{Local: "use"},
		Attr: []xml.Attr{attr("href", href), attr("x", num(u.X)), attr("y", num(u.Y))},
	})
}

func empty(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// num formats a coordinate with at most four decimals.
func num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// matrix formats m in SVG order: a b c d e f map x' = a*x + c*y + e.
func matrix(m gg.Matrix) string {
	return "matrix(" + num(m.A) + "," + num(m.D) + "," + num(m.B) + "," + num(m.E) + "," + num(m.C) + "," + num(m.F) + ")"
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
