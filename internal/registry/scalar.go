package registry

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Errors returned by Scalar.Admits. Callers match them with errors.Is.
var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrOutOfRange   = errors.New("out of range")
	ErrNotInEnum    = errors.New("not an allowed value")
)

// Admits checks a single element value against the domain of s. The value
// must already have the element type; no conversion is attempted.
func (s *Scalar) Admits(v cty.Value) error {
	if v.IsNull() || !v.IsKnown() {
		return fmt.Errorf("%w: expected %s, got null", ErrTypeMismatch, s.Kind)
	}
	if !v.Type().Equals(s.CtyType()) {
		return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, s.Kind, v.Type().FriendlyName())
	}

	if s.Kind == schema.ScalarInteger && !v.AsBigFloat().IsInt() {
		return fmt.Errorf("%w: expected integer, got %s", ErrTypeMismatch, v.AsBigFloat().Text('g', -1))
	}

	if s.Kind == schema.ScalarInteger || s.Kind == schema.ScalarNumber {
		f := v.AsBigFloat()
		if s.HasMin && f.Cmp(new(big.Float).SetInt64(s.Min)) < 0 {
			return fmt.Errorf("%w: %s is less than the minimum %d", ErrOutOfRange, f.Text('g', -1), s.Min)
		}
		if s.HasMax && f.Cmp(new(big.Float).SetInt64(s.Max)) > 0 {
			return fmt.Errorf("%w: %s is greater than the maximum %d", ErrOutOfRange, f.Text('g', -1), s.Max)
		}
	}

	if len(s.Enum) > 0 {
		for _, e := range s.Enum {
			if v.Equals(e).True() {
				return nil
			}
		}
		return fmt.Errorf("%w: %s is not one of [%s]", ErrNotInEnum, FormatValue(v), s.EnumString())
	}
	return nil
}

// EnumString lists the enumeration as it would be written in a descriptor.
func (s *Scalar) EnumString() string {
	parts := make([]string, len(s.Enum))
	for i, e := range s.Enum {
		parts[i] = FormatValue(e)
	}
	return strings.Join(parts, ", ")
}

// FormatValue renders a known scalar for messages.
func FormatValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsKnown() {
		return "(unknown)"
	}
	switch {
	case v.Type().Equals(cty.String):
		return fmt.Sprintf("%q", v.AsString())
	case v.Type().Equals(cty.Number):
		return v.AsBigFloat().Text('g', -1)
	case v.Type().Equals(cty.Bool):
		if v.True() {
			return "true"
		}
		return "false"
	}
	return v.Type().FriendlyName()
}
