// Package render lays a Score out on an SVG document: a body frame inset by
// the margins, a header with title and composer, and a content frame in
// which every music element is placed left to right on one baseline in
// performance order.
package render

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/defs"
	"github.com/specialistvlad/musjego/internal/layout"
	"github.com/specialistvlad/musjego/internal/score"
	"github.com/specialistvlad/musjego/internal/svg"
	"github.com/specialistvlad/musjego/internal/typeface"
)

// Frame is a positioned group. Its box is in the coordinates of the parent
// frame (the surface for the body).
type Frame struct {
	svg.Rect
	El *svg.Group
}

// Placement records where one music element was put in the content frame.
type Placement struct {
	Tag   string
	DefID string
	X     float64
	Y     float64
	Width float64
}

// Layout is the outcome of one render.
type Layout struct {
	Body       Frame
	Header     Frame
	Content    Frame
	Placements []Placement
	Defs       *defs.Defs
}

// Renderer draws scores with glyphs measured by one Measurer. A Renderer
// holds no per-render state and may be shared.
type Renderer struct {
	measurer typeface.Measurer
}

// New creates a renderer.
func New(m typeface.Measurer) *Renderer {
	return &Renderer{measurer: m}
}

// Render clears doc, sizes it from lo and draws s on it. lo is merged over
// layout.Defaults, so omitted options take their defaults; options listed in
// lo.Zero are drawn with zero. Each call builds its own definition cache.
func (r *Renderer) Render(ctx context.Context, s *score.Score, doc *svg.Document, lo layout.Options) (*Layout, error) {
	logger := ctxlog.FromContext(ctx)
	lo, err := lo.WithDefaults()
	if err != nil {
		return nil, err
	}
	if lo.Width <= 0 || lo.Height <= 0 {
		return nil, fmt.Errorf("invalid surface size %gx%g", lo.Width, lo.Height)
	}

	doc.Clear()
	doc.Width, doc.Height = lo.Width, lo.Height

	out := &Layout{Defs: defs.New(doc, lo, r.measurer)}
	out.Body = bodyFrame(lo)
	doc.Add(out.Body.El)

	out.Header = r.header(s.Head(), out.Body, lo)
	out.Body.El.Add(out.Header.El)

	out.Content = contentFrame(out.Header, out.Body, lo)
	out.Body.El.Add(out.Content.El)

	c := &cursor{lo: lo, defs: out.Defs, el: out.Content.El, baseline: lo.Baseline}
	c.el.Add(&svg.Line{X1: 0, Y1: c.baseline, X2: out.Content.Width, Y2: c.baseline, Class: "ref-line"})

	skipped := 0
	for _, part := range s.Parts() {
		for _, measure := range part.Measures() {
			for _, md := range measure {
				if !c.place(md) {
					skipped++
				}
			}
		}
	}
	out.Placements = c.placements

	logger.Debug("Rendered score.",
		"elements", len(c.placements),
		"skipped", skipped,
		"defs", len(doc.Defs),
		"width", c.x,
	)
	return out, nil
}

func bodyFrame(lo layout.Options) Frame {
	el := svg.NewGroup("")
	el.Class = "body"
	el.SetTransform(gg.Translate(lo.MarginLeft, lo.MarginTop))
	return Frame{
		Rect: svg.Rect{
			X:      lo.MarginLeft,
			Y:      lo.MarginTop,
			Width:  lo.Width - lo.MarginLeft - lo.MarginRight,
			Height: lo.Height - lo.MarginTop - lo.MarginBottom,
		},
		El: el,
	}
}

// header centers the title and right-aligns the composer. Its height is the
// height of what it draws.
func (r *Renderer) header(head *score.ScoreHead, body Frame, lo layout.Options) Frame {
	el := svg.NewGroup("")
	el.Class = "header"
	el.Add(
		svg.NewText(r.measurer, body.Width/2, lo.TitleFontSize, head.Title(), lo.TitleFontSize, lo.TitleFontWeight, "middle"),
		svg.NewText(r.measurer, body.Width, lo.TitleFontSize*1.5, head.Composer(), lo.ComposerFontSize, lo.ComposerFontWeight, "end"),
	)
	return Frame{
		Rect: svg.Rect{Width: body.Width, Height: el.BBox().Height},
		El:   el,
	}
}

func contentFrame(header, body Frame, lo layout.Options) Frame {
	y := header.Y2() + lo.HeaderSep
	el := svg.NewGroup("")
	el.Class = "content"
	el.SetTransform(gg.Translate(0, y))
	return Frame{
		Rect: svg.Rect{Y: y, Width: body.Width, Height: body.Height - y},
		El:   el,
	}
}

// cursor walks the content frame from left to right.
type cursor struct {
	lo       layout.Options
	defs     *defs.Defs
	el       *svg.Group
	baseline float64
	x        float64

	placements []Placement
}

// place draws md at the cursor and advances it. It reports false for
// elements it has no placement for.
func (c *cursor) place(md score.MusicData) bool {
	switch v := md.(type) {
	case *score.Time:
		c.glyph(v.Tag(), c.defs.Time(v))
	case *score.Bar:
		c.glyph(v.Tag(), c.defs.Bar(v))
	case *score.Note:
		c.note(v.Tag(), c.defs.Note(v), v.Duration())
	case *score.Rest:
		c.note(v.Tag(), c.defs.Rest(v), v.Duration())
	case *score.Chord:
		c.note(v.Tag(), c.defs.Chord(v), v.Duration())
	default:
		return false
	}
	return true
}

func (c *cursor) use(el *svg.Group, x, y float64) {
	if el != nil {
		c.el.Add(&svg.Use{Ref: el, X: x, Y: y})
	}
}

func (c *cursor) glyph(tag string, def *defs.Def) {
	c.use(def.El, c.x, c.baseline)
	c.placements = append(c.placements, Placement{Tag: tag, DefID: def.ID, X: c.x, Y: c.baseline, Width: def.Width})
	c.x += def.Width + c.lo.MusicDataSep
}

// note places a head followed by its duration. Values shorter than a
// quarter are underlined below the head, one line per underbar level.
func (c *cursor) note(tag string, def *defs.NoteDef, du *score.Duration) {
	x0 := c.x
	c.use(def.Head.El, c.x, c.baseline)
	c.x += def.Head.Width

	if du.Type() >= 8 {
		y := c.baseline
		for i := 0; i < du.Underbar(); i++ {
			c.el.Add(&svg.Line{X1: x0, Y1: y, X2: c.x, Y2: y, StrokeWidth: c.lo.TypeStrokeWidth})
			y -= c.lo.UnderbarSep
		}
	}
	c.use(def.Duration.El, c.x, c.baseline+def.Head.StepCY)

	c.placements = append(c.placements, Placement{Tag: tag, DefID: def.ID, X: x0, Y: c.baseline, Width: def.Width})
	c.x += def.Duration.Width + c.lo.MusicDataSep
}
