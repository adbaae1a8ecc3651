package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A descriptor with a syntax error makes app.NewApp panic while loading.
	invalidHCL := `
		root "score" {
			field "head" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	schemaPath := filepath.Join(tempDir, "broken.hcl")
	require.NoError(t, os.WriteFile(schemaPath, []byte(invalidHCL), 0600), "failed to set up test file")

	args := []string{"-schema", schemaPath, filepath.Join(tempDir, "song.json")}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, errOut, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to load schema descriptor")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-h"}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text on the error writer")
	require.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_RendersScore(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := filepath.Join(t.TempDir(), "song.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"parts": [{"measures": [[{"note": {"pitch": {"step": 3, "octave": 1}}}]]}]}`), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-f", "text", input})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "              <<<>>>          \n3'\n", out.String())
}
