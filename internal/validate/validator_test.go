package validate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/specialistvlad/musjego/internal/hcl_adapter"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	desc, err := hcl_adapter.NewLoader().Load(context.Background())
	require.NoError(t, err)
	reg, err := registry.Compile(context.Background(), desc)
	require.NoError(t, err)
	return New(reg)
}

func validateJSON(t *testing.T, v *Validator, src string) *Result {
	t.Helper()
	res, err := v.ValidateJSON(context.Background(), []byte(src))
	require.NoError(t, err)
	return res
}

const validScore = `{
  "head": {"title": "Twinkle", "composer": "Mozart"},
  "parts": [{
    "measures": [
      [{"time": {"beats": 3, "beatType": 4}}, {"note": {"pitch": {"step": 5, "octave": 1, "accidental": "#"}, "duration": {"type": 8, "dot": 1}, "slur": ["begin"]}}],
      [{"rest": {"duration": {"type": 2}}}, {"chord": {"pitches": [{"step": 1}, {"step": 3}], "duration": {"type": 4}}}, {"bar": "end"}]
    ]
  }]
}`

func TestValidate_ValidScore(t *testing.T) {
	v := newValidator(t)

	res := validateJSON(t, v, validScore)

	assert.True(t, res.Valid, "unexpected errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.NoError(t, res.Err())
}

func TestValidate_EmptyDocument(t *testing.T) {
	v := newValidator(t)
	res := validateJSON(t, v, `{}`)
	assert.True(t, res.Valid)
}

func TestValidate_PitchDomain(t *testing.T) {
	testCases := []struct {
		name     string
		pitch    string
		wantPath string
		wantCode Code
	}{
		{"step too high", `{"step": 8}`, "parts[0].measures[0][0].note.pitch.step", CodeOutOfRange},
		{"octave too high", `{"octave": 6}`, "parts[0].measures[0][0].note.pitch.octave", CodeOutOfRange},
		{"unknown accidental", `{"accidental": "x"}`, "parts[0].measures[0][0].note.pitch.accidental", CodeInvalidEnum},
		{"fractional step", `{"step": 1.5}`, "parts[0].measures[0][0].note.pitch.step", CodeTypeMismatch},
		{"step as string", `{"step": "1"}`, "parts[0].measures[0][0].note.pitch.step", CodeTypeMismatch},
		{"unknown field", `{"pitchClass": 1}`, "parts[0].measures[0][0].note.pitch.pitchClass", CodeUnknownField},
	}

	v := newValidator(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			src := `{"parts": [{"measures": [[{"note": {"pitch": ` + tc.pitch + `}}]]}]}`

			// --- Act ---
			res := validateJSON(t, v, src)

			// --- Assert ---
			require.False(t, res.Valid)
			require.Len(t, res.Errors, 1, "errors: %v", res.Errors)
			assert.Equal(t, tc.wantPath, res.Errors[0].Path)
			assert.Equal(t, tc.wantCode, res.Errors[0].Code)

			err := res.Err()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaViolation))
			var sv *SchemaViolationError
			require.True(t, errors.As(err, &sv))
			assert.Len(t, sv.Errors, 1)
		})
	}
}

func TestValidate_PolymorphicSlot(t *testing.T) {
	v := newValidator(t)

	t.Run("unknown tag", func(t *testing.T) {
		res := validateJSON(t, v, `{"parts": [{"measures": [[{"tuplet": {}}]]}]}`)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, CodeInvalidVariant, res.Errors[0].Code)
		assert.Equal(t, "parts[0].measures[0][0]", res.Errors[0].Path)
	})

	t.Run("two tags in one element", func(t *testing.T) {
		res := validateJSON(t, v, `{"parts": [{"measures": [[{"note": {}, "rest": {}}]]}]}`)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, CodeInvalidVariant, res.Errors[0].Code)
	})

	t.Run("bad bar value", func(t *testing.T) {
		res := validateJSON(t, v, `{"parts": [{"measures": [[{"bar": "dotted"}]]}]}`)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, CodeInvalidEnum, res.Errors[0].Code)
		assert.Equal(t, "parts[0].measures[0][0].bar", res.Errors[0].Path)
	})

	t.Run("measure is not an array", func(t *testing.T) {
		res := validateJSON(t, v, `{"parts": [{"measures": [{"note": {}}]}]}`)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, CodeTypeMismatch, res.Errors[0].Code)
		assert.Equal(t, "parts[0].measures[0]", res.Errors[0].Path)
	})
}

func TestValidate_CollectsEveryError(t *testing.T) {
	v := newValidator(t)

	res := validateJSON(t, v, `{
  "head": {"title": 3},
  "parts": [{"measures": [[
    {"time": {"beats": 0, "beatType": 3}},
    {"note": {"slur": ["begin", "middle"]}}
  ]]}],
  "tempo": 120
}`)

	require.False(t, res.Valid)
	var paths []string
	for _, e := range res.Errors {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{
		"head.title",
		"parts[0].measures[0][0].time.beats",
		"parts[0].measures[0][0].time.beatType",
		"parts[0].measures[0][1].note.slur[1]",
		"tempo",
	}, paths)
}

func TestValidate_RequiredFields(t *testing.T) {
	desc, err := hcl_adapter.NewLoader().LoadSource(context.Background(), "req.hcl", []byte(`
root "doc" {
  field "name" {
    type     = string
    required = true
  }
}
`))
	require.NoError(t, err)
	reg, err := registry.Compile(context.Background(), desc)
	require.NoError(t, err)

	res := New(reg).Validate(context.Background(), cty.EmptyObjectVal)

	require.False(t, res.Valid)
	assert.Equal(t, []string{"name"}, res.Missing)
	assert.Equal(t, CodeRequiredField, res.Errors[0].Code)
}

func TestValidateAs(t *testing.T) {
	v := newValidator(t)

	res := v.ValidateAs(context.Background(), cty.ObjectVal(map[string]cty.Value{
		"step": cty.NumberIntVal(7),
	}), "pitch")
	assert.True(t, res.Valid)

	res = v.ValidateAs(context.Background(), cty.EmptyObjectVal, "tuplet")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, CodeTypeNotFound, res.Errors[0].Code)
}

func TestValidateJSON_Malformed(t *testing.T) {
	v := newValidator(t)

	_, err := v.ValidateJSON(context.Background(), []byte(`{"head": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestParseYAML(t *testing.T) {
	val, err := ParseYAML([]byte("head:\n  title: Song\nparts: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "Song", val.GetAttr("head").GetAttr("title").AsString())

	_, err = ParseYAML([]byte("head: [unclosed"))
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestDocument(t *testing.T) {
	v := newValidator(t)

	doc := v.Document()
	assert.Equal(t, DraftSchema, doc["$schema"])
	assert.Equal(t, "object", doc["type"])

	// The document must be encodable and keep the grouped layout.
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	props := decoded["properties"].(map[string]any)
	assert.Equal(t, "#/objects/scoreHead", props["head"].(map[string]any)["$ref"])

	arrays := decoded["arrays"].(map[string]any)
	measure := arrays["measure"].(map[string]any)
	oneOf := measure["items"].(map[string]any)["oneOf"].([]any)
	assert.Len(t, oneOf, 5)

	pitch := decoded["objects"].(map[string]any)["pitch"].(map[string]any)
	step := pitch["properties"].(map[string]any)["step"].(map[string]any)
	assert.Equal(t, float64(1), step["minimum"])
	assert.Equal(t, float64(7), step["maximum"])

	beatType := decoded["integers"].(map[string]any)["beatType"].(map[string]any)
	assert.Equal(t, "integer", beatType["type"])
	assert.Len(t, beatType["enum"], 10)
}

func TestFormatPath(t *testing.T) {
	path := cty.Path{}.
		GetAttr("parts").Index(cty.NumberIntVal(0)).
		GetAttr("measures").Index(cty.NumberIntVal(1)).Index(cty.NumberIntVal(0)).
		GetAttr("note")
	assert.Equal(t, "parts[0].measures[1][0].note", FormatPath(path))
	assert.Equal(t, "", FormatPath(nil))
}
