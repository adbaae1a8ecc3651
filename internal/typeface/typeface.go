// Package typeface measures text with the embedded Go fonts.
package typeface

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Extent is the measured size of a run of text. Ascent and Descent are
// both positive distances from the baseline.
type Extent struct {
	Advance float64
	Ascent  float64
	Descent float64
}

// Measurer measures text.
type Measurer interface {
	Measure(s string, size float64, weight string) Extent
}

// Faces serves Go regular and bold faces and caches them by size. It is safe
// for concurrent use.
type Faces struct {
	regular *text.FontSource
	bold    *text.FontSource

	mu    sync.Mutex
	faces map[faceKey]text.Face
}

var _ Measurer = (*Faces)(nil)

type faceKey struct {
	size float64
	bold bool
}

// New loads the embedded fonts.
func New() (*Faces, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		regular.Close()
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return &Faces{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]text.Face),
	}, nil
}

// Face returns the face for size and a CSS font weight.
func (f *Faces) Face(size float64, weight string) text.Face {
	key := faceKey{size: size, bold: IsBold(weight)}

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	src := f.regular
	if key.bold {
		src = f.bold
	}
	face := src.Face(size)
	f.faces[key] = face
	return face
}

// Measure implements Measurer.
func (f *Faces) Measure(s string, size float64, weight string) Extent {
	face := f.Face(size, weight)
	m := face.Metrics()
	return Extent{
		Advance: face.Advance(s),
		Ascent:  m.Ascent,
		Descent: m.Descent,
	}
}

// Close releases both font sources.
func (f *Faces) Close() error {
	errR := f.regular.Close()
	errB := f.bold.Close()
	if errR != nil {
		return errR
	}
	return errB
}

// IsBold reports whether a CSS font weight selects the bold face.
func IsBold(weight string) bool {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "bold", "bolder":
		return true
	case "", "normal", "lighter":
		return false
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}
