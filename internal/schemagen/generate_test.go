package schemagen

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/musjego/internal/hcl_adapter"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *registry.Registry {
	t.Helper()
	loader := hcl_adapter.NewLoader()
	ctx := context.Background()

	var err error
	var reg *registry.Registry
	if src == "" {
		desc, loadErr := loader.Load(ctx)
		require.NoError(t, loadErr)
		reg, err = registry.Compile(ctx, desc)
	} else {
		desc, loadErr := loader.LoadSource(ctx, "test.hcl", []byte(src))
		require.NoError(t, loadErr)
		reg, err = registry.Compile(ctx, desc)
	}
	require.NoError(t, err)
	return reg
}

// The checked-in score records must be exactly what the generator emits for
// the embedded descriptor.
func TestGenerate_MatchesCheckedInScore(t *testing.T) {
	// --- Arrange ---
	reg := compile(t, "")
	want, err := os.ReadFile(filepath.Join("..", "score", "zz_generated.go"))
	require.NoError(t, err)

	// --- Act ---
	got, err := Generate(context.Background(), reg, "score")

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("zz_generated.go is stale, run go generate ./internal/score (-want +got):\n%s", diff)
	}
}

func TestGenerate_SmallDescriptor(t *testing.T) {
	// --- Arrange ---
	reg := compile(t, `
root "doc" {
  field "name" {
    type = string
  }
  field "ratio" {
    type    = number
    minimum = 0
    maximum = 1
    default = 0.5
  }
  field "flags" {
    type = list(bool)
  }
  field "items" {
    ref = arrays.items
  }
}

named_object "go" {
  field "func" {
    type = integer
  }
}

named_object "mark" {
  type = string
}

array "items" {
  one_of = [namedObjects.go, namedObjects.mark]
}
`)

	// --- Act ---
	src, err := Generate(context.Background(), reg, "sample")

	// --- Assert ---
	require.NoError(t, err)
	_, err = parser.ParseFile(token.NewFileSet(), "sample.go", src, parser.AllErrors)
	require.NoError(t, err, "generated source must parse:\n%s", src)

	code := string(src)
	assert.Contains(t, code, "// Code generated by musjegen. DO NOT EDIT.")
	assert.Contains(t, code, "package sample")
	assert.Contains(t, code, "ratio: 0.5,")
	assert.Contains(t, code, "docRatioDomain = numberDomain{min: 0, hasMin: true, max: 1, hasMax: true}")
	assert.Contains(t, code, "func (x *Doc) SetRatio(v float64) error {")
	assert.Contains(t, code, "func (x *Doc) SetFlags(v []bool) {")
	assert.Contains(t, code, `"flags": boolsVal(x.flags),`)
	assert.Contains(t, code, "func_ int", "Go keywords are escaped in storage names")
	assert.Contains(t, code, "func (x *Go) Func() int {")
	assert.Contains(t, code, "type ItemsItem interface {")
	assert.Contains(t, code, "case TagMark:\n\t\treturn MarkFromTree(body), true")
	assert.Contains(t, code, "x.value = stringValue(v, x.value)")
	assert.Contains(t, code, "func (x *Mark) SetValue(v string) {", "a named scalar without a domain has a plain setter")
}

func TestNames(t *testing.T) {
	assert.Equal(t, "ScoreHead", exported("scoreHead"))
	assert.Equal(t, "type_", unexported("type"))
	assert.Equal(t, "beatType", unexported("BeatType"))
	assert.Equal(t, "a, b or c", joinOr([]string{"a", "b", "c"}))
	assert.Equal(t, "a", joinOr([]string{"a"}))
}
