// Package raster paints a rendered svg.Document into a PNG image with
// gogpu/gg.
package raster

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/svg"
	"github.com/specialistvlad/musjego/internal/typeface"
)

// WritePNG paints doc on a white surface of its size, scaled by scale, and
// writes it to w as PNG. Text is drawn with faces.
func WritePNG(ctx context.Context, w io.Writer, doc *svg.Document, faces *typeface.Faces, scale float64) error {
	logger := ctxlog.FromContext(ctx)
	if scale <= 0 {
		scale = 1
	}
	width := int(math.Ceil(doc.Width * scale))
	height := int(math.Ceil(doc.Height * scale))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot rasterize a %dx%d surface", width, height)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetRGB(0, 0, 0)

	p := &painter{dc: dc, faces: faces}
	for _, el := range doc.Children {
		if err := p.paint(el, gg.Scale(scale, scale)); err != nil {
			return err
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	logger.Debug("Rasterized document.", "width", width, "height", height, "texts", p.texts)
	return nil
}

// painter applies its own matrix to every coordinate so that text, which gg
// draws untransformed, lines up with the shapes.
type painter struct {
	dc    *gg.Context
	faces *typeface.Faces
	texts int
}

func (p *painter) paint(el svg.Element, m gg.Matrix) error {
	switch v := el.(type) {
	case *svg.Group:
		m = m.Multiply(v.Transform())
		for _, c := range v.Children {
			if err := p.paint(c, m); err != nil {
				return err
			}
		}
	case *svg.Use:
		if v.Ref == nil {
			return nil
		}
		return p.paint(v.Ref, m.Multiply(gg.Translate(v.X, v.Y)))
	case *svg.Line:
		p.dc.SetLineWidth(strokeWidth(v.StrokeWidth, m))
		a := m.TransformPoint(gg.Pt(v.X1, v.Y1))
		b := m.TransformPoint(gg.Pt(v.X2, v.Y2))
		p.dc.DrawLine(a.X, a.Y, b.X, b.Y)
		return p.dc.Stroke()
	case *svg.Path:
		p.dc.SetLineWidth(strokeWidth(v.StrokeWidth, m))
		for _, cmd := range v.Cmds {
			pt := m.TransformPoint(gg.Pt(cmd.X, cmd.Y))
			if cmd.Op == 'M' {
				p.dc.MoveTo(pt.X, pt.Y)
			} else {
				p.dc.LineTo(pt.X, pt.Y)
			}
		}
		return p.dc.Stroke()
	case *svg.Circle:
		c := m.TransformPoint(gg.Pt(v.CX, v.CY))
		p.dc.DrawCircle(c.X, c.Y, v.R*meanScale(m))
		return p.dc.Fill()
	case *svg.Text:
		p.text(v, m)
	}
	return nil
}

func (p *painter) text(t *svg.Text, m gg.Matrix) {
	if t.Content == "" || p.faces == nil {
		return
	}
	size := t.FontSize * math.Abs(m.E)
	if size <= 0 {
		return
	}
	pt := m.TransformPoint(gg.Pt(t.Left(), t.Y))
	p.dc.SetFont(p.faces.Face(size, t.FontWeight))
	p.dc.DrawString(t.Content, pt.X, pt.Y)
	p.texts++
}

// meanScale is the length scale of m: the square root of its area scale.
func meanScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func strokeWidth(w float64, m gg.Matrix) float64 {
	if w == 0 {
		w = 1
	}
	return w * meanScale(m)
}
