package raster

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/specialistvlad/musjego/internal/layout"
	"github.com/specialistvlad/musjego/internal/render"
	"github.com/specialistvlad/musjego/internal/score"
	"github.com/specialistvlad/musjego/internal/svg"
	"github.com/specialistvlad/musjego/internal/typeface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePNG(t *testing.T) {
	// --- Arrange ---
	faces, err := typeface.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = faces.Close() })

	s := score.NewScore()
	s.Head().SetTitle("Song")
	part := score.NewPart()
	half := score.NewNote()
	require.NoError(t, half.Duration().SetType(2))
	part.SetMeasures(score.Measures{{score.NewTime(), half, score.NewRest(), score.NewBar()}})
	s.SetParts(score.Parts{part})

	lo := layout.Defaults()
	lo.Width, lo.Height = 200, 120
	doc := svg.New(0, 0)
	_, err = render.New(faces).Render(context.Background(), s, doc, lo)
	require.NoError(t, err)

	// --- Act ---
	var buf bytes.Buffer
	err = WritePNG(context.Background(), &buf, doc, faces, 2)

	// --- Assert ---
	require.NoError(t, err)
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	inked := false
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y && !inked; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "the rendered score must leave dark pixels")
}

func TestWritePNG_EmptySurface(t *testing.T) {
	err := WritePNG(context.Background(), &bytes.Buffer{}, svg.New(0, 10), nil, 1)

	assert.Error(t, err)
}
