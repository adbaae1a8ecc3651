package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/musjego/internal/defs"
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

// unknownData is a music element the renderer has no placement for.
type unknownData struct {
	*score.Note
}

func note(t *testing.T, step, octave, typ int) *score.Note {
	t.Helper()
	n := score.NewNote()
	require.NoError(t, n.Pitch().SetStep(step))
	require.NoError(t, n.Pitch().SetOctave(octave))
	require.NoError(t, n.Duration().SetType(typ))
	return n
}

func newScore(measures ...score.Measure) *score.Score {
	s := score.NewScore()
	s.Head().SetTitle("Song")
	s.Head().SetComposer("Anon")
	part := score.NewPart()
	part.SetMeasures(measures)
	s.SetParts(score.Parts{part})
	return s
}

func render(t *testing.T, s *score.Score) (*Layout, *svg.Document) {
	t.Helper()
	doc := svg.New(0, 0)
	out, err := New(fixedMeasurer{}).Render(context.Background(), s, doc, layout.Defaults())
	require.NoError(t, err)
	return out, doc
}

func uses(g *svg.Group, id string) int {
	n := 0
	for _, c := range g.Children {
		if u, ok := c.(*svg.Use); ok && u.Ref.ID == id {
			n++
		}
	}
	return n
}

func TestRender_Frames(t *testing.T) {
	// --- Act ---
	out, doc := render(t, newScore())

	// --- Assert ---
	assert.Equal(t, 690.0, doc.Width)
	assert.Equal(t, 600.0, doc.Height)
	assert.Equal(t, svg.Rect{X: 30, Y: 25, Width: 630, Height: 550}, out.Body.Rect)
	assert.Equal(t, 660.0, out.Body.X2())

	// Title baseline at 24 (ascent 19.2), composer baseline at 36 (descent 2.8).
	assert.InDelta(t, 34.0, out.Header.Height, 1e-9)
	assert.InDelta(t, 44.0, out.Content.Y, 1e-9)
	assert.InDelta(t, 506.0, out.Content.Height, 1e-9)
	assert.Equal(t, 315.0, out.Header.CX())

	require.Len(t, doc.Children, 1)
	assert.Same(t, out.Body.El, doc.Children[0])
	assert.Len(t, out.Body.El.Children, 2)
	assert.Empty(t, out.Placements)
}

func TestRender_Placement(t *testing.T) {
	// --- Arrange ---
	tm := score.NewTime()
	require.NoError(t, tm.SetBeats(3))
	bar := score.NewBar()
	require.NoError(t, bar.SetValue("end"))
	s := newScore(score.Measure{tm, note(t, 1, 0, 4), note(t, 5, 0, 8)}, score.Measure{bar})

	// --- Act ---
	out, _ := render(t, s)

	// --- Assert ---
	require.Len(t, out.Placements, 4)
	want := []struct {
		tag string
		x   float64
	}{
		{score.TagTime, 0},
		{score.TagNote, 22},
		{score.TagNote, 41},
		{score.TagBar, 41 + 11*0.97 + 8},
	}
	for i, w := range want {
		p := out.Placements[i]
		assert.Equal(t, w.tag, p.Tag, "element %d", i)
		assert.InDelta(t, w.x, p.X, 1e-9, "element %d", i)
		assert.Equal(t, 30.0, p.Y)
	}
	assert.Equal(t, "np50d80", out.Placements[2].DefID)
}

func TestRender_Underbars(t *testing.T) {
	// --- Arrange ---
	s := newScore(score.Measure{note(t, 1, 0, 16)})

	// --- Act ---
	out, _ := render(t, s)

	// --- Assert ---
	var ys []float64
	for _, c := range out.Content.El.Children {
		if l, ok := c.(*svg.Line); ok && l.Class == "" {
			ys = append(ys, l.Y1)
			assert.Equal(t, 0.0, l.X1)
			assert.InDelta(t, 11*0.97*0.97, l.X2, 1e-9)
		}
	}
	assert.Equal(t, []float64{30, 27}, ys)
}

func TestRender_SharesGlyphs(t *testing.T) {
	// --- Arrange ---
	s := newScore(
		score.Measure{note(t, 3, 0, 2)},
		score.Measure{note(t, 3, 0, 2), note(t, 3, 1, 2)},
	)

	// --- Act ---
	out, doc := render(t, s)

	// --- Assert ---
	assert.Equal(t, 2, out.Defs.Built(defs.KindPitch), "octave makes a second pitch glyph")
	assert.Equal(t, 1, out.Defs.Built(defs.KindDuration))
	assert.Equal(t, 2, uses(out.Content.El, "p30_u0"))
	assert.Equal(t, 1, uses(out.Content.El, "p31_u0"))
	assert.Equal(t, 3, uses(out.Content.El, "d20"))
	assert.Len(t, doc.Defs, 3)
}

func TestRender_Deterministic(t *testing.T) {
	// --- Arrange ---
	rest := score.NewRest()
	chord := score.NewChord()
	chord.SetPitches(score.Pitches{score.NewPitch(), score.NewPitch()})
	s := newScore(score.Measure{note(t, 2, -1, 8), rest, chord, score.NewBar()})

	// --- Act ---
	first, firstDoc := render(t, s)
	second, secondDoc := render(t, s)

	// --- Assert ---
	if diff := cmp.Diff(first.Placements, second.Placements); diff != "" {
		t.Errorf("placements differ (-first +second):\n%s", diff)
	}
	var a, b bytes.Buffer
	_, err := firstDoc.WriteTo(&a)
	require.NoError(t, err)
	_, err = secondDoc.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestRender_SkipsUnknownElements(t *testing.T) {
	s := newScore(score.Measure{unknownData{score.NewNote()}, score.NewNote()})

	out, _ := render(t, s)

	require.Len(t, out.Placements, 1)
	assert.Equal(t, 0.0, out.Placements[0].X)
}

func TestRender_PartialOptions(t *testing.T) {
	// --- Arrange ---
	s := newScore(score.Measure{note(t, 1, 0, 4), note(t, 2, 0, 4)})
	doc := svg.New(0, 0)

	// --- Act ---
	out, err := New(fixedMeasurer{}).Render(context.Background(), s, doc, layout.Options{Width: 600, Height: 400})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 600.0, doc.Width)
	assert.Equal(t, 400.0, doc.Height)
	require.Len(t, out.Placements, 2)
	assert.Equal(t, 0.0, out.Placements[0].X)
	assert.InDelta(t, 11.0, out.Placements[0].Width, 1e-9, "omitted font sizes take their defaults")
	assert.InDelta(t, 19.0, out.Placements[1].X, 1e-9, "omitted separations take their defaults")
}

func TestRender_ZeroOptions(t *testing.T) {
	// --- Arrange ---
	lo := layout.Options{Zero: []string{"marginLeft", "headerSep"}}

	// --- Act ---
	out, err := New(fixedMeasurer{}).Render(context.Background(), newScore(), svg.New(0, 0), lo)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Body.X)
	assert.Equal(t, 25.0, out.Body.Y, "options not listed keep their defaults")
	assert.InDelta(t, out.Header.Height, out.Content.Y, 1e-9)
}

func TestRender_RejectsEmptySurface(t *testing.T) {
	lo := layout.Options{Zero: []string{"width"}}

	_, err := New(fixedMeasurer{}).Render(context.Background(), score.NewScore(), svg.New(0, 0), lo)

	assert.Error(t, err)
}
