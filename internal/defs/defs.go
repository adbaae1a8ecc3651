// Package defs is the glyph definition cache of a render. Each distinct
// visual identity is built once, registered in the document's definitions
// and shared by every element that looks the same.
package defs

import (
	"math"
	"strconv"

	"github.com/gogpu/gg"
	"github.com/specialistvlad/musjego/internal/layout"
	"github.com/specialistvlad/musjego/internal/score"
	"github.com/specialistvlad/musjego/internal/svg"
	"github.com/specialistvlad/musjego/internal/typeface"
)

// Kind names a family of definitions.
type Kind string

const (
	KindPitch    Kind = "pitch"
	KindDuration Kind = "duration"
	KindTime     Kind = "time"
	KindNote     Kind = "note"
	KindRest     Kind = "rest"
	KindChord    Kind = "chord"
	KindBar      Kind = "bar"
)

// Def is a reusable glyph and its measured geometry. El is nil for glyphs
// that draw nothing.
type Def struct {
	ID       string
	El       *svg.Group
	Width    float64
	Height   float64
	MinWidth float64
	MaxWidth float64
}

// PitchDef is a pitch-like glyph (a pitch, the rest label or a stacked
// chord). The Step offsets are the top, center and bottom of the step label
// after the glyph transform.
type PitchDef struct {
	Def
	StepY  float64
	StepCY float64
	StepY2 float64
}

// NoteDef combines a head glyph with a duration glyph. It serves notes,
// rests and chords.
type NoteDef struct {
	ID       string
	Head     *PitchDef
	Duration *Def
	Width    float64
	Height   float64
	MinWidth float64
	MaxWidth float64
}

// Defs caches definitions for one document and one set of options. It is not
// safe for concurrent use; concurrent renders each need their own.
type Defs struct {
	doc *svg.Document
	lo  layout.Options
	m   typeface.Measurer

	pitches   map[string]*PitchDef
	durations map[string]*Def
	glyphs    map[string]*Def
	notes     map[string]*NoteDef
	built     map[Kind]int
}

// New creates an empty cache that registers its definitions in doc.
func New(doc *svg.Document, lo layout.Options, m typeface.Measurer) *Defs {
	return &Defs{
		doc:       doc,
		lo:        lo,
		m:         m,
		pitches:   make(map[string]*PitchDef),
		durations: make(map[string]*Def),
		glyphs:    make(map[string]*Def),
		notes:     make(map[string]*NoteDef),
		built:     make(map[Kind]int),
	}
}

// Built returns how many definitions of kind k were constructed.
func (d *Defs) Built(k Kind) int {
	return d.built[k]
}

func (d *Defs) register(el *svg.Group) {
	if el != nil {
		d.doc.AddDef(el)
	}
}

// Pitch returns the glyph of p drawn over underbar underbar lines.
func (d *Defs) Pitch(p *score.Pitch, underbar int) *PitchDef {
	id := p.DefID() + "_u" + strconv.Itoa(underbar)
	return d.pitch(id, strconv.Itoa(p.Step()), p.AccidentalSymbol(), p.Octave(), underbar)
}

func (d *Defs) pitch(id, label, accidental string, octave, underbar int) *PitchDef {
	if def, ok := d.pitches[id]; ok {
		return def
	}
	d.built[KindPitch]++
	def := d.makePitch(id, label, accidental, octave, underbar)
	d.pitches[id] = def
	d.register(def.El)
	return def
}

func (d *Defs) makePitch(id, label, accidental string, octave, underbar int) *PitchDef {
	lo := d.lo
	el := svg.NewGroup(id)

	accidentalEndX := 0.0
	if accidental != "" {
		t := svg.NewText(d.m, 0, -lo.AccidentalShift, accidental, lo.AccidentalFontSize, "", "")
		el.Add(t)
		accidentalEndX = t.BBox().X2()
	}

	step := svg.NewText(d.m, accidentalEndX, 0, label, lo.FontSize, "", "")
	el.Add(step)
	sbbox := step.BBox()

	if octave != 0 {
		dots := svg.NewGroup("")
		if octave > 0 {
			for i := 0; i < octave; i++ {
				dots.Add(&svg.Circle{CX: sbbox.CX(), CY: sbbox.Y + lo.OctaveOffset - lo.OctaveSep*float64(i), R: lo.OctaveRadius})
			}
		} else {
			for i := 0; i > octave; i-- {
				dots.Add(&svg.Circle{CX: sbbox.CX(), CY: sbbox.Y2() - lo.OctaveOffset - lo.OctaveSep*float64(i), R: lo.OctaveRadius})
			}
		}
		el.Add(dots)
	}

	m := d.pitchMatrix(el.BBox(), sbbox, accidental != "", octave, underbar)
	el.SetTransform(m)

	stepBox := sbbox.Transform(m)
	box := el.BBox()
	return &PitchDef{
		Def: Def{
			ID:     id,
			El:     el,
			Width:  box.Width,
			Height: -box.Y,
		},
		StepY:  stepBox.Y,
		StepCY: stepBox.CY(),
		StepY2: stepBox.Y2(),
	}
}

// pitchMatrix moves the glyph onto the baseline and shrinks it as
// accidentals, octave dots and underbars are added.
func (d *Defs) pitchMatrix(pbbox, sbbox svg.Rect, hasAccidental bool, octave, underbar int) gg.Matrix {
	lo := d.lo
	absOctave := octave
	if absOctave < 0 {
		absOctave = -absOctave
	}

	shift := -float64(underbar) * lo.UnderbarSep
	if octave >= 0 && underbar == 0 {
		shift -= lo.StepBaselineShift
	}
	sx := absOctave + underbar
	sy := absOctave + underbar
	if hasAccidental {
		sx += 3
		sy++
	}
	recenter := 0.0
	if !svg.Near(pbbox.Y2(), sbbox.Y2()) {
		recenter = -pbbox.Y2()
	}

	return gg.Translate(-pbbox.X, shift).
		Multiply(gg.Scale(math.Pow(0.97, float64(sx)), math.Pow(0.95, float64(sy)))).
		Multiply(gg.Translate(0, recenter))
}

// Time returns the glyph of a time signature.
func (d *Defs) Time(t *score.Time) *Def {
	id := t.DefID()
	if def, ok := d.glyphs[id]; ok {
		return def
	}
	d.built[KindTime]++

	lo := d.lo
	size := lo.TimeFontSize
	ext := size * 0.1
	el := svg.NewGroup(id,
		svg.NewText(d.m, 0, -size, strconv.Itoa(t.Beats()), size, lo.TimeFontWeight, "middle"),
		svg.NewText(d.m, 0, 0, strconv.Itoa(t.BeatType()), size, lo.TimeFontWeight, "middle"),
	)
	el.FontSize = size
	el.FontWeight = lo.TimeFontWeight
	el.Anchor = "middle"

	bb := el.BBox()
	lineY := -0.85 * size
	el.Add(&svg.Line{X1: bb.X - ext, Y1: lineY, X2: bb.X2() + ext, Y2: lineY, StrokeWidth: lo.TypeStrokeWidth})
	el.SetTransform(gg.Scale(1, 0.8).Multiply(gg.Translate(ext-bb.X, 0)))
	bb = el.BBox()

	def := &Def{ID: id, El: el, Width: bb.Width, Height: -bb.Y}
	def.MinWidth, def.MaxWidth = def.Width, def.Width
	d.glyphs[id] = def
	d.register(el)
	return def
}

// Duration returns the glyph of a duration: tick marks for whole and half
// values, dots alone for dotted shorter values and an empty placeholder for
// undotted shorter values, which are drawn as underbars during layout.
func (d *Defs) Duration(du *score.Duration) *Def {
	id := du.DefID()
	if def, ok := d.durations[id]; ok {
		return def
	}
	d.built[KindDuration]++

	var def *Def
	switch {
	case du.Type() == 1:
		def = d.makeWholeDuration(id, du.Dot())
	case du.Type() == 2:
		def = d.makeHalfDuration(id, du.Dot())
	case du.Dot() > 0:
		def = d.makeDots(id, du.Dot(), du.Type())
	default:
		def = &Def{ID: id}
	}
	d.durations[id] = def
	d.register(def.El)
	return def
}

func (d *Defs) makeWholeDuration(id string, dot int) *Def {
	lo := d.lo
	el := svg.NewGroup(id)
	p := &svg.Path{StrokeWidth: lo.TypeStrokeWidth}
	x := lo.TypebarOffset
	for i := 0; i < 3; i++ {
		if i > 0 {
			x += lo.TypebarSep
		}
		p.MoveTo(x, 0).LineTo(x+lo.TypebarLength, 0)
		x += lo.TypebarLength
	}
	el.Add(p)
	return fixedWidth(id, el, d.addDot(el, x, dot, 1))
}

func (d *Defs) makeHalfDuration(id string, dot int) *Def {
	lo := d.lo
	el := svg.NewGroup(id)
	x := lo.TypebarOffset + lo.TypebarLength
	el.Add(&svg.Line{X1: lo.TypebarOffset, X2: x, StrokeWidth: lo.TypeStrokeWidth})
	return fixedWidth(id, el, d.addDot(el, x, dot, 2))
}

func (d *Defs) makeDots(id string, dot, typ int) *Def {
	el := svg.NewGroup(id)
	return fixedWidth(id, el, d.addDot(el, 0, dot, typ))
}

// addDot appends up to two dots after x and returns the glyph width. Whole
// notes space their dots further apart.
func (d *Defs) addDot(el *svg.Group, x float64, dot, typ int) float64 {
	lo := d.lo
	stretch := 1.0
	if typ == 1 {
		stretch = 1.2
	}
	if dot > 0 {
		x += lo.DotOffset * stretch
		el.Add(&svg.Circle{CX: x, R: lo.DotRadius})
	}
	if dot > 1 {
		x += lo.DotSep * stretch
		el.Add(&svg.Circle{CX: x, R: lo.DotRadius})
	}
	return x + lo.TypebarExt
}

func fixedWidth(id string, el *svg.Group, width float64) *Def {
	return &Def{ID: id, El: el, Width: width, MinWidth: width, MaxWidth: width}
}

// Note returns the glyph of a note: its pitch followed by its duration.
func (d *Defs) Note(n *score.Note) *NoteDef {
	id := n.DefID()
	if def, ok := d.notes[id]; ok {
		return def
	}
	d.built[KindNote]++
	head := d.Pitch(n.Pitch(), n.Duration().Underbar())
	def := compose(id, head, d.Duration(n.Duration()))
	d.notes[id] = def
	return def
}

// Rest returns the glyph of a rest: the label 0 followed by its duration.
func (d *Defs) Rest(r *score.Rest) *NoteDef {
	id := r.DefID()
	if def, ok := d.notes[id]; ok {
		return def
	}
	d.built[KindRest]++
	underbar := r.Duration().Underbar()
	head := d.pitch("r_u"+strconv.Itoa(underbar), "0", "", 0, underbar)
	def := compose(id, head, d.Duration(r.Duration()))
	d.notes[id] = def
	return def
}

// Chord returns the glyph of a chord: its pitches stacked upward from the
// first, followed by its duration. Duration dots align with the first pitch.
func (d *Defs) Chord(c *score.Chord) *NoteDef {
	id := c.DefID()
	if def, ok := d.notes[id]; ok {
		return def
	}
	d.built[KindChord]++

	underbar := c.Duration().Underbar()
	el := svg.NewGroup(id + "_head")
	var first *PitchDef
	y := 0.0
	for _, p := range c.Pitches() {
		pd := d.Pitch(p, underbar)
		el.Add(&svg.Use{Ref: pd.El, Y: y})
		if first == nil {
			first = pd
		}
		y -= pd.Height
	}

	head := &PitchDef{Def: Def{ID: el.ID}}
	if first != nil {
		box := el.BBox()
		head.El = el
		head.Width = box.Width
		head.Height = -box.Y
		head.StepY, head.StepCY, head.StepY2 = first.StepY, first.StepCY, first.StepY2
		d.register(el)
	}

	def := compose(id, head, d.Duration(c.Duration()))
	d.notes[id] = def
	return def
}

func compose(id string, head *PitchDef, dur *Def) *NoteDef {
	return &NoteDef{
		ID:       id,
		Head:     head,
		Duration: dur,
		Width:    head.Width + dur.Width,
		Height:   head.Height,
		MinWidth: head.Width + dur.MinWidth,
		MaxWidth: head.Width + dur.MaxWidth,
	}
}

// barParts lists the strokes of each barline from left to right.
var barParts = map[string][]string{
	"single":       {"thin"},
	"double":       {"thin", "thin"},
	"end":          {"thin", "thick"},
	"repeat-begin": {"thick", "thin", "dots"},
	"repeat-end":   {"dots", "thin", "thick"},
	"repeat-both":  {"dots", "thin", "thick", "thin", "dots"},
}

// Bar returns the glyph of a barline. Unknown values draw a single bar.
func (d *Defs) Bar(b *score.Bar) *Def {
	id := b.DefID()
	if def, ok := d.glyphs[id]; ok {
		return def
	}
	d.built[KindBar]++

	lo := d.lo
	parts, ok := barParts[b.Value()]
	if !ok {
		parts = barParts["single"]
	}

	el := svg.NewGroup(id)
	h := lo.BarHeight
	x := 0.0
	for i, part := range parts {
		if i > 0 {
			x += lo.BarSep
		}
		switch part {
		case "thin", "thick":
			w := lo.TypeStrokeWidth
			if part == "thick" {
				w = lo.BarThickWidth
			}
			x += w / 2
			el.Add(&svg.Line{X1: x, Y1: -h, X2: x, Y2: 0, StrokeWidth: w})
			x += w / 2
		case "dots":
			r := lo.RepeatDotRadius
			x += r
			el.Add(
				&svg.Circle{CX: x, CY: -h/2 - lo.RepeatDotSep/2, R: r},
				&svg.Circle{CX: x, CY: -h/2 + lo.RepeatDotSep/2, R: r},
			)
			x += r
		}
	}

	def := fixedWidth(id, el, x)
	def.Height = h
	d.glyphs[id] = def
	d.register(el)
	return def
}
