package score

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/musjego/internal/hcl_adapter"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/specialistvlad/musjego/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	desc, err := hcl_adapter.NewLoader().Load(context.Background())
	require.NoError(t, err)
	reg, err := registry.Compile(context.Background(), desc)
	require.NoError(t, err)
	return NewLoader(validate.New(reg))
}

const sampleScore = `{
  "head": {"title": "Twinkle", "composer": "Mozart"},
  "parts": [{
    "measures": [
      [{"time": {"beats": 3, "beatType": 4}}, {"note": {"pitch": {"step": 5, "octave": 1, "accidental": "#"}, "duration": {"type": 8, "dot": 1}, "slur": ["begin"]}}],
      [{"rest": {"duration": {"type": 2}}}, {"chord": {"pitches": [{"step": 1}, {"step": 3, "octave": -1}], "duration": {"type": 4}}}, {"bar": "end"}]
    ]
  }]
}`

func TestDefaultMaterialization(t *testing.T) {
	note := NewNote()

	first := note.Pitch()
	second := note.Pitch()
	assert.Same(t, first, second, "get-or-create must be identity stable")
	assert.Equal(t, 1, first.Step())
	assert.Equal(t, 0, first.Octave())
	assert.Equal(t, "", first.Accidental())

	d := note.Duration()
	assert.Same(t, d, note.Duration())
	assert.Equal(t, BeatTypeDefault, d.Type())
	assert.Equal(t, 0, d.Dot())

	s := NewScore()
	assert.Same(t, s.Head(), s.Head())
	assert.Empty(t, s.Parts())
	assert.Equal(t, "single", NewBar().Value())
	assert.Equal(t, 4, NewTime().Beats())
}

func TestRoundTrip(t *testing.T) {
	// --- Arrange ---
	s, err := newLoader(t).Load(context.Background(), []byte(sampleScore), true)
	require.NoError(t, err)

	// --- Act ---
	again := ScoreFromTree(s.Tree())

	// --- Assert ---
	assert.True(t, s.Tree().RawEquals(again.Tree()), "trees differ:\n%#v\n%#v", s.Tree(), again.Tree())

	want, err := s.Stringify("  ")
	require.NoError(t, err)
	got, err := again.Stringify("  ")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip changed the score (-want +got):\n%s", diff)
	}

	measure := again.Parts()[0].Measures()[0]
	note := measure[1].(*Note)
	assert.Equal(t, s.Parts()[0].Measures()[0][1].(*Note).Pitch().MidiNumber(), note.Pitch().MidiNumber())
	assert.Equal(t, []string{"begin"}, note.Slur())
}

func TestPolymorphicDispatch(t *testing.T) {
	// --- Arrange ---
	val, err := validate.ParseJSON([]byte(`[{"time": {"beats": 3, "beatType": 4}}, {"note": {"pitch": {"step": 5}}}]`))
	require.NoError(t, err)

	// --- Act ---
	m := MeasureFromTree(val)

	// --- Assert ---
	require.Len(t, m, 2)
	require.Equal(t, TagTime, m[0].Tag())
	assert.Equal(t, 3, m[0].(*Time).Beats())

	require.Equal(t, TagNote, m[1].Tag())
	note := m[1].(*Note)
	assert.Equal(t, 5, note.Pitch().Step())
	assert.Equal(t, 0, note.Pitch().Octave())
	assert.Equal(t, "", note.Pitch().Accidental())
	assert.Equal(t, 4, note.Duration().Type())
	assert.Empty(t, note.Slur())
}

func TestMeasureFromTree_DropsUnknownVariants(t *testing.T) {
	val, err := validate.ParseJSON([]byte(`[{"tuplet": {}}, {"bar": "double"}, {"note": {}, "rest": {}}, 7]`))
	require.NoError(t, err)

	m := MeasureFromTree(val)

	require.Len(t, m, 1)
	assert.Equal(t, "||", m[0].String())
}

func TestNotation(t *testing.T) {
	testCases := []struct {
		name string
		tree string
		want string
	}{
		{"plain note", `{"note": {}}`, "1"},
		{"sharp with octaves", `{"note": {"pitch": {"step": 5, "octave": 2, "accidental": "#"}, "duration": {"type": 16, "dot": 1}}}`, "#5''=."},
		{"low flat", `{"note": {"pitch": {"step": 3, "octave": -1, "accidental": "b"}, "duration": {"type": 1}}}`, "b3, - - - "},
		{"half rest", `{"rest": {"duration": {"type": 2}}}`, "0 - "},
		{"chord", `{"chord": {"pitches": [{"step": 1}, {"step": 3}, {"step": 5}], "duration": {"type": 8}}}`, "<135>_"},
		{"time", `{"time": {"beats": 6, "beatType": 8}}`, "6/8"},
		{"repeat both", `{"bar": "repeat-both"}`, ":|:"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			val, err := validate.ParseJSON([]byte(tc.tree))
			require.NoError(t, err)

			// --- Act ---
			md, ok := MusicDataFromTree(val)

			// --- Assert ---
			require.True(t, ok)
			assert.Equal(t, tc.want, md.String())
		})
	}
}

func TestPartNotation(t *testing.T) {
	// --- Arrange ---
	val, err := validate.ParseJSON([]byte(`{"measures": [
  [{"note": {"pitch": {"step": 1, "octave": 0, "accidental": ""}, "duration": {"type": 4, "dot": 0}}}],
  [{"rest": {"duration": {"type": 2, "dot": 0}}}]
]}`))
	require.NoError(t, err)

	// --- Act ---
	part := PartFromTree(val)

	// --- Assert ---
	assert.Equal(t, "1 0 - ", part.String())
}

func TestScoreNotation(t *testing.T) {
	s, err := newLoader(t).Load(context.Background(), []byte(sampleScore), false)
	require.NoError(t, err)

	assert.Equal(t, "              <<<Twinkle>>>          Mozart\n3/4 #5'_. 0 -  <13,> |]", s.String())
}

func TestDerivedFields(t *testing.T) {
	a4 := NewPitch()
	assert.Equal(t, 69, a4.MidiNumber())
	assert.InDelta(t, 440.0, a4.Frequency(), 1e-9)

	p := NewPitch()
	require.NoError(t, p.SetOctave(1))
	require.NoError(t, p.SetAccidental("#"))
	assert.Equal(t, 82, p.MidiNumber())
	assert.InDelta(t, 440*1.0594630943592953*2, p.Frequency(), 1e-9)

	pitches := []struct {
		step, octave int
		accidental   string
		midi         int
	}{
		{5, 0, "", 76},
		{7, 0, "", 80},
		{3, -1, "b", 60},
		{1, -1, "bb", 55},
		{2, 2, "##", 97},
	}
	for _, tc := range pitches {
		p := NewPitch()
		require.NoError(t, p.SetStep(tc.step))
		require.NoError(t, p.SetOctave(tc.octave))
		require.NoError(t, p.SetAccidental(tc.accidental))
		assert.Equal(t, tc.midi, p.MidiNumber(), "%s", p)
	}

	testCases := []struct {
		typ, dot int
		seconds  float64
		underbar int
	}{
		{4, 0, 0.75, 0},
		{4, 1, 1.125, 0},
		{4, 2, 1.3125, 0},
		{1, 0, 3, 0},
		{8, 0, 0.375, 1},
		{16, 0, 0.1875, 2},
		{32, 0, 0.09375, 3},
		{512, 0, 0.005859375, 7},
	}
	for _, tc := range testCases {
		d := NewDuration()
		require.NoError(t, d.SetType(tc.typ))
		require.NoError(t, d.SetDot(tc.dot))
		assert.InDelta(t, tc.seconds, d.Seconds(), 1e-12, "type %d dot %d", tc.typ, tc.dot)
		assert.Equal(t, tc.underbar, d.Underbar(), "type %d", tc.typ)
	}
}

func TestSetters_RejectOutOfDomain(t *testing.T) {
	p := NewPitch()

	err := p.SetStep(8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfDomain))
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "pitch.step", de.Field)
	assert.Equal(t, 1, p.Step(), "a rejected value must not be stored")

	assert.ErrorIs(t, p.SetOctave(6), ErrOutOfDomain)
	assert.ErrorIs(t, p.SetAccidental("x"), ErrOutOfDomain)
	assert.ErrorIs(t, NewDuration().SetType(3), ErrOutOfDomain)
	assert.ErrorIs(t, NewTime().SetBeats(0), ErrOutOfDomain)
	assert.ErrorIs(t, NewBar().SetValue("dotted"), ErrOutOfDomain)
	assert.ErrorIs(t, NewNote().SetSlur([]string{"begin", "middle"}), ErrOutOfDomain)

	assert.NoError(t, NewTime().SetBeats(12))
	assert.NoError(t, NewBar().SetValue("repeat-end"))
}

func TestDefIDs(t *testing.T) {
	p := NewPitch()
	assert.Equal(t, "p10", p.DefID())

	require.NoError(t, p.SetAccidental("bb"))
	require.NoError(t, p.SetOctave(-2))
	assert.Equal(t, "p1ff-2", p.DefID())

	d := NewDuration()
	require.NoError(t, d.SetDot(1))
	assert.Equal(t, "d41", d.DefID())

	n := NewNote()
	assert.Equal(t, "np10d40", n.DefID())

	other := NewNote()
	require.NoError(t, other.Pitch().SetOctave(1))
	assert.NotEqual(t, n.DefID(), other.DefID())
}

func TestLoader(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()

	t.Run("validation rejects bad domains", func(t *testing.T) {
		_, err := l.Load(ctx, []byte(`{"parts": [{"measures": [[{"note": {"pitch": {"step": 8}}}]]}]}`), true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validate.ErrSchemaViolation))
		var sv *validate.SchemaViolationError
		require.True(t, errors.As(err, &sv))
		assert.Equal(t, "parts[0].measures[0][0].note.pitch.step", sv.Errors[0].Path)
	})

	t.Run("unvalidated input is trusted", func(t *testing.T) {
		s, err := l.Load(ctx, []byte(`{"parts": [{"measures": [[{"note": {"pitch": {"step": 8}}}]]}]}`), false)
		require.NoError(t, err)
		assert.Equal(t, 8, s.Parts()[0].Measures()[0][0].(*Note).Pitch().Step())
	})

	t.Run("malformed text", func(t *testing.T) {
		_, err := l.Load(ctx, []byte(`{"parts": [`), false)
		assert.True(t, errors.Is(err, validate.ErrMalformedInput))
	})

	t.Run("yaml", func(t *testing.T) {
		s, err := l.LoadYAML(ctx, []byte("head:\n  title: Song\nparts:\n  - measures:\n      - - bar: end\n"), true)
		require.NoError(t, err)
		assert.Equal(t, "Song", s.Head().Title())
		assert.Equal(t, "|]", s.Parts()[0].Measures()[0][0].String())
	})

	t.Run("validation without validator", func(t *testing.T) {
		_, err := NewLoader(nil).LoadTree(ctx, cty.EmptyObjectVal, true)
		assert.Error(t, err)
	})
}

func TestMarshalJSON(t *testing.T) {
	s := NewScore()
	s.Head().SetTitle("T")
	bar := NewBar()
	require.NoError(t, bar.SetValue("double"))
	part := NewPart()
	part.SetMeasures(Measures{{bar}})
	s.SetParts(Parts{part})

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"head": {"composer": "", "title": "T"}, "parts": [{"measures": [[{"bar": "double"}]]}]}`, string(data))
}
