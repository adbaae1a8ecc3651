package defs

import (
	"testing"

	"github.com/specialistvlad/musjego/internal/layout"
	"github.com/specialistvlad/musjego/internal/score"
	"github.com/specialistvlad/musjego/internal/svg"
	"github.com/specialistvlad/musjego/internal/typeface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every character the same advance.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(s string, size float64, _ string) typeface.Extent {
	return typeface.Extent{Advance: float64(len([]rune(s))) * size * 0.5, Ascent: size * 0.8, Descent: size * 0.2}
}

func newDefs() (*Defs, *svg.Document) {
	doc := svg.New(100, 100)
	return New(doc, layout.Defaults(), fixedMeasurer{}), doc
}

func note(t *testing.T, step, octave int, accidental string, typ, dot int) *score.Note {
	t.Helper()
	n := score.NewNote()
	require.NoError(t, n.Pitch().SetStep(step))
	require.NoError(t, n.Pitch().SetOctave(octave))
	require.NoError(t, n.Pitch().SetAccidental(accidental))
	require.NoError(t, n.Duration().SetType(typ))
	require.NoError(t, n.Duration().SetDot(dot))
	return n
}

func TestNote_SharesDefinitions(t *testing.T) {
	// --- Arrange ---
	d, doc := newDefs()
	a := note(t, 1, 0, "", 4, 0)
	b := note(t, 1, 0, "", 4, 0)

	// --- Act ---
	first := d.Note(a)
	second := d.Note(b)

	// --- Assert ---
	assert.Same(t, first, second)
	assert.Equal(t, 1, d.Built(KindNote))
	assert.Equal(t, 1, d.Built(KindPitch))
	assert.Equal(t, 1, d.Built(KindDuration))
	require.Len(t, doc.Defs, 1, "an undotted quarter draws nothing and is not registered")
	assert.Equal(t, "p10_u0", doc.Defs[0].ID)
}

func TestPitch_OctaveMakesDistinctGlyphs(t *testing.T) {
	// --- Arrange ---
	d, doc := newDefs()

	// --- Act ---
	low := d.Note(note(t, 1, 0, "", 4, 0))
	high := d.Note(note(t, 1, 1, "", 4, 0))

	// --- Assert ---
	assert.NotSame(t, low.Head, high.Head)
	assert.Equal(t, 2, d.Built(KindPitch))
	assert.Len(t, doc.Defs, 2)
	assert.Len(t, high.Head.El.Children, 2, "step text and octave dots")
	assert.Greater(t, high.Head.Height, low.Head.Height)
}

func TestPitch_Geometry(t *testing.T) {
	d, _ := newDefs()

	p := d.Pitch(score.NewPitch(), 0)

	// The label is 11 wide and 22 tall, lifted by the step baseline shift.
	assert.InDelta(t, 11.0, p.Width, 1e-9)
	assert.InDelta(t, 20.6, p.Height, 1e-9)
	assert.InDelta(t, -20.6, p.StepY, 1e-9)
	assert.InDelta(t, -9.6, p.StepCY, 1e-9)
	assert.InDelta(t, 1.4, p.StepY2, 1e-9)

	sharp := score.NewPitch()
	require.NoError(t, sharp.SetAccidental("#"))
	withAccidental := d.Pitch(sharp, 0)
	assert.Greater(t, withAccidental.Width, p.Width)

	underbarred := d.Pitch(score.NewPitch(), 2)
	assert.NotSame(t, p, underbarred)
	assert.Less(t, underbarred.Width, p.Width, "underbars shrink the glyph")
}

func TestDuration_Widths(t *testing.T) {
	testCases := []struct {
		typ, dot int
		width    float64
		drawn    bool
	}{
		{1, 0, 52, true},
		{1, 1, 60.4, true},
		{2, 0, 20, true},
		{2, 2, 33, true},
		{4, 0, 0, false},
		{4, 1, 11, true},
		{8, 0, 0, false},
		{16, 2, 17, true},
	}

	for _, tc := range testCases {
		// --- Arrange ---
		d, _ := newDefs()
		du := score.NewDuration()
		require.NoError(t, du.SetType(tc.typ))
		require.NoError(t, du.SetDot(tc.dot))

		// --- Act ---
		def := d.Duration(du)

		// --- Assert ---
		assert.InDelta(t, tc.width, def.Width, 1e-9, "type %d dot %d", tc.typ, tc.dot)
		assert.Equal(t, def.Width, def.MinWidth)
		assert.Equal(t, def.Width, def.MaxWidth)
		assert.Equal(t, tc.drawn, def.El != nil, "type %d dot %d", tc.typ, tc.dot)
	}
}

func TestTime(t *testing.T) {
	d, doc := newDefs()
	tm := score.NewTime()
	require.NoError(t, tm.SetBeats(3))

	def := d.Time(tm)

	assert.Same(t, def, d.Time(tm))
	assert.Equal(t, "t3_4", def.ID)
	assert.InDelta(t, 14.0, def.Width, 1e-9, "labels plus the extended fraction line")
	assert.Greater(t, def.Height, 0.0)
	assert.NotNil(t, doc.Def("t3_4"))
}

func TestBar_Widths(t *testing.T) {
	testCases := map[string]float64{
		"single":       1.4,
		"double":       5.8,
		"end":          8.4,
		"repeat-begin": 15,
		"repeat-end":   15,
		"repeat-both":  26,
	}

	for value, width := range testCases {
		d, _ := newDefs()
		b := score.NewBar()
		require.NoError(t, b.SetValue(value))

		def := d.Bar(b)

		assert.InDelta(t, width, def.Width, 1e-9, value)
		assert.Equal(t, 24.0, def.Height)
	}
}

func TestRestAndChord(t *testing.T) {
	// --- Arrange ---
	d, _ := newDefs()
	r := score.NewRest()
	require.NoError(t, r.Duration().SetType(2))

	c := score.NewChord()
	low, high := score.NewPitch(), score.NewPitch()
	require.NoError(t, high.SetStep(3))
	c.SetPitches(score.Pitches{low, high})

	// --- Act ---
	rest := d.Rest(r)
	chord := d.Chord(c)

	// --- Assert ---
	assert.InDelta(t, 11+20.0, rest.Width, 1e-9)
	assert.Equal(t, 1, d.Built(KindRest))

	assert.Equal(t, 1, d.Built(KindChord))
	assert.Equal(t, 3, d.Built(KindPitch), "rest label and two chord pitches")
	assert.InDelta(t, 11.0, chord.Width, 1e-9)
	assert.InDelta(t, 2*20.6, chord.Height, 1e-9)
	assert.Equal(t, chord.Head.StepCY, d.Pitch(low, 0).StepCY)
}
