package typeface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaces_Measure(t *testing.T) {
	faces, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = faces.Close() })

	small := faces.Measure("1", 10, "normal")
	large := faces.Measure("1", 20, "normal")
	assert.Greater(t, small.Advance, 0.0)
	assert.Greater(t, small.Ascent, 0.0)
	assert.Greater(t, small.Descent, 0.0)
	assert.Greater(t, large.Advance, small.Advance, "advance grows with size")

	twice := faces.Measure("11", 10, "normal")
	assert.InDelta(t, small.Advance*2, twice.Advance, 0.5)

	assert.Equal(t, small, faces.Measure("1", 10, "normal"), "measuring is deterministic")
	assert.Same(t, faces.Face(10, "bold"), faces.Face(10, "700"), "faces are cached by size and weight")
}

func TestIsBold(t *testing.T) {
	testCases := map[string]bool{
		"bold":   true,
		"Bold":   true,
		"bolder": true,
		"700":    true,
		"600":    true,
		"500":    false,
		"normal": false,
		"":       false,
		"heavy":  false,
	}
	for weight, want := range testCases {
		assert.Equal(t, want, IsBold(weight), "weight %q", weight)
	}
}
