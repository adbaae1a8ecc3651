// Package layout holds the options of the layout renderer: defaults, HCL
// option files and programmatic overrides.
package layout

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/imdario/mergo"
	"github.com/specialistvlad/musjego/internal/ctxlog"
)

// Options configures one render. Lengths are in user units of the output
// surface; weights are CSS font weights.
type Options struct {
	Width        float64 `hcl:"width,optional"`
	Height       float64 `hcl:"height,optional"`
	MarginTop    float64 `hcl:"marginTop,optional"`
	MarginRight  float64 `hcl:"marginRight,optional"`
	MarginBottom float64 `hcl:"marginBottom,optional"`
	MarginLeft   float64 `hcl:"marginLeft,optional"`

	TitleFontSize      float64 `hcl:"titleFontSize,optional"`
	TitleFontWeight    string  `hcl:"titleFontWeight,optional"`
	ComposerFontSize   float64 `hcl:"composerFontSize,optional"`
	ComposerFontWeight string  `hcl:"composerFontWeight,optional"`
	HeaderSep          float64 `hcl:"headerSep,optional"`
	MusicDataSep       float64 `hcl:"musicDataSep,optional"`
	Baseline           float64 `hcl:"baseline,optional"`

	// Pitch glyphs.
	AccidentalFontSize float64 `hcl:"accidentalFontSize,optional"`
	AccidentalShift    float64 `hcl:"accidentalShift,optional"`
	FontSize           float64 `hcl:"fontSize,optional"`
	StepBaselineShift  float64 `hcl:"stepBaselineShift,optional"`
	OctaveRadius       float64 `hcl:"octaveRadius,optional"`
	OctaveOffset       float64 `hcl:"octaveOffset,optional"`
	OctaveSep          float64 `hcl:"octaveSep,optional"`
	UnderbarSep        float64 `hcl:"underbarSep,optional"`

	// Duration glyphs.
	TypebarOffset   float64 `hcl:"typebarOffset,optional"`
	TypebarLength   float64 `hcl:"typebarLength,optional"`
	TypebarSep      float64 `hcl:"typebarSep,optional"`
	TypeStrokeWidth float64 `hcl:"typeStrokeWidth,optional"`
	DotOffset       float64 `hcl:"dotOffset,optional"`
	DotRadius       float64 `hcl:"dotRadius,optional"`
	DotSep          float64 `hcl:"dotSep,optional"`
	TypebarExt      float64 `hcl:"typebarExt,optional"`

	// Time signatures.
	TimeFontSize   float64 `hcl:"timeFontSize,optional"`
	TimeFontWeight string  `hcl:"timeFontWeight,optional"`

	// Barlines.
	BarHeight       float64 `hcl:"barHeight,optional"`
	BarSep          float64 `hcl:"barSep,optional"`
	BarThickWidth   float64 `hcl:"barThickWidth,optional"`
	RepeatDotRadius float64 `hcl:"repeatDotRadius,optional"`
	RepeatDotSep    float64 `hcl:"repeatDotSep,optional"`

	// Remain collects unrecognized attributes of an option file.
	Remain hcl.Body `hcl:",remain"`

	// Zero names options, by attribute name, that are set to their zero
	// value on purpose. Merge applies them after the non-zero overrides.
	Zero []string
}

// Defaults returns the base options every render starts from.
func Defaults() Options {
	return Options{
		Width:        690,
		Height:       600,
		MarginTop:    25,
		MarginRight:  30,
		MarginBottom: 25,
		MarginLeft:   30,

		TitleFontSize:      24,
		TitleFontWeight:    "bold",
		ComposerFontSize:   14,
		ComposerFontWeight: "bold",
		HeaderSep:          10,
		MusicDataSep:       8,
		Baseline:           30,

		AccidentalFontSize: 15,
		AccidentalShift:    5,
		FontSize:           22,
		StepBaselineShift:  3,
		OctaveRadius:       1.8,
		OctaveOffset:       -3,
		OctaveSep:          4,
		UnderbarSep:        3,

		TypebarOffset:   6,
		TypebarLength:   10,
		TypebarSep:      6,
		TypeStrokeWidth: 1.4,
		DotOffset:       7,
		DotRadius:       1.8,
		DotSep:          6,
		TypebarExt:      4,

		TimeFontSize:   20,
		TimeFontWeight: "bold",

		BarHeight:       24,
		BarSep:          3,
		BarThickWidth:   4,
		RepeatDotRadius: 1.8,
		RepeatDotSep:    6,
	}
}

// Merge returns base with every non-zero field of override applied, then
// every option named in override.Zero cleared.
func Merge(base, override Options) (Options, error) {
	out := base
	out.Zero = nil
	zero := override.Zero
	override.Zero = nil
	if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
		return Options{}, fmt.Errorf("failed to merge layout options: %w", err)
	}
	for _, name := range zero {
		f, ok := out.field(name)
		if !ok {
			return Options{}, fmt.Errorf("unknown layout option %q", name)
		}
		f.Set(reflect.Zero(f.Type()))
	}
	return out, nil
}

// WithDefaults merges o over Defaults.
func (o Options) WithDefaults() (Options, error) {
	return Merge(Defaults(), o)
}

// field returns the option whose attribute name is name.
func (o *Options) field(name string) (reflect.Value, bool) {
	v := reflect.ValueOf(o).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("hcl"), ",")
		if tag != "" && tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// LoadFile reads an HCL option file on top of base. Attributes are named
// like the options (marginTop = 20); unknown attributes are ignored.
func LoadFile(ctx context.Context, path string, base Options) (Options, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}
	return LoadSource(ctx, path, src, base)
}

// LoadSource is LoadFile for in-memory source.
func LoadSource(ctx context.Context, filename string, src []byte, base Options) (Options, error) {
	logger := ctxlog.FromContext(ctx)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Options{}, fmt.Errorf("failed to parse layout file %s: %w", filename, diags)
	}

	out := base
	if diags := gohcl.DecodeBody(file.Body, nil, &out); diags.HasErrors() {
		return Options{}, fmt.Errorf("failed to decode layout file %s: %w", filename, diags)
	}
	out.Zero = append(append([]string(nil), base.Zero...), zeroed(file.Body, &out)...)
	if out.Remain != nil {
		if attrs, _ := out.Remain.JustAttributes(); len(attrs) > 0 {
			names := make([]string, 0, len(attrs))
			for name := range attrs {
				names = append(names, name)
			}
			logger.Debug("Ignoring unknown layout options.", "file", filename, "names", names)
		}
	}
	out.Remain = nil

	logger.Debug("Layout options loaded.", "file", filename, "zero", out.Zero)
	return out, nil
}

// zeroed lists the options the file sets to their zero value, so that a
// later merge over the defaults keeps them.
func zeroed(body hcl.Body, o *Options) []string {
	attrs, _ := body.JustAttributes()
	var names []string
	for name := range attrs {
		if f, ok := o.field(name); ok && f.IsZero() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
