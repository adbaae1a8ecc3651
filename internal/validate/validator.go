package validate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Result is the outcome of one validation.
type Result struct {
	Valid  bool
	Errors []ValidationError
	// Missing lists the paths of required members that were absent.
	Missing []string
}

// Err returns nil for a valid result and a *SchemaViolationError otherwise.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	return &SchemaViolationError{Errors: r.Errors}
}

// Validator checks trees against a registry. It holds no per-call state and
// is safe for concurrent use.
type Validator struct {
	reg *registry.Registry
}

// New creates a validator for reg.
func New(reg *registry.Registry) *Validator {
	return &Validator{reg: reg}
}

// Registry returns the registry the validator checks against.
func (v *Validator) Registry() *registry.Registry {
	return v.reg
}

// Validate checks a tree against the root type.
func (v *Validator) Validate(ctx context.Context, val cty.Value) *Result {
	return v.ValidateAs(ctx, val, v.reg.Root().Name)
}

// ValidateAs checks a tree against the named type. Named objects are
// checked without their envelope.
func (v *Validator) ValidateAs(ctx context.Context, val cty.Value, typeName string) *Result {
	logger := ctxlog.FromContext(ctx)

	r := &run{reg: v.reg}
	t, err := v.reg.Type(typeName)
	if err != nil {
		r.add(nil, CodeTypeNotFound, "unknown type: %s", typeName)
	} else {
		r.checkType(cty.Path{}, t, val)
	}

	res := &Result{Valid: len(r.errors) == 0, Errors: r.errors, Missing: r.missing}
	logger.Debug("Validated tree.", "type", typeName, "valid", res.Valid, "errors", len(res.Errors))
	return res
}

// run collects the failures of one validation.
type run struct {
	reg     *registry.Registry
	errors  []ValidationError
	missing []string
}

func (r *run) add(path cty.Path, code Code, format string, args ...any) {
	r.errors = append(r.errors, ValidationError{
		Path:    FormatPath(path),
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *run) checkType(path cty.Path, t *registry.Type, val cty.Value) {
	switch t.Kind {
	case registry.KindObject, registry.KindNamedObject:
		r.checkObject(path, t, val)
	case registry.KindNamedScalar:
		r.checkScalar(path, t.Scalar, val)
	case registry.KindArray:
		elems, ok := sequence(val)
		if !ok {
			r.add(path, CodeTypeMismatch, "expected array %s, got %s", t.Name, describe(val))
			return
		}
		items, err := r.reg.Type(t.Items)
		if err != nil {
			r.add(path, CodeTypeNotFound, "%s", err)
			return
		}
		for i, elem := range elems {
			r.checkType(path.Index(cty.NumberIntVal(int64(i))), items, elem)
		}
	case registry.KindUnionArray:
		elems, ok := sequence(val)
		if !ok {
			r.add(path, CodeTypeMismatch, "expected array %s, got %s", t.Name, describe(val))
			return
		}
		for i, elem := range elems {
			r.checkVariant(path.Index(cty.NumberIntVal(int64(i))), t, elem)
		}
	}
}

func (r *run) checkObject(path cty.Path, t *registry.Type, val cty.Value) {
	attrs, ok := attributes(val)
	if !ok {
		r.add(path, CodeTypeMismatch, "expected object %s, got %s", t.Name, describe(val))
		return
	}

	for _, f := range t.Fields {
		fieldPath := path.GetAttr(f.Name)
		fieldVal, exists := attrs[f.Name]
		if !exists {
			if f.Required {
				r.add(fieldPath, CodeRequiredField, "required field missing: %s", f.Name)
				r.missing = append(r.missing, FormatPath(fieldPath))
			}
			continue
		}

		if f.Scalar != nil {
			r.checkScalar(fieldPath, f.Scalar, fieldVal)
			continue
		}
		ref, err := r.reg.Type(f.Ref)
		if err != nil {
			r.add(fieldPath, CodeTypeNotFound, "%s", err)
			continue
		}
		r.checkType(fieldPath, ref, fieldVal)
	}

	var unknown []string
	for name := range attrs {
		if t.Field(name) == nil {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		r.add(path.GetAttr(name), CodeUnknownField, "unknown field: %s (type %s)", name, t.Name)
	}
}

// checkVariant checks one element of a union array: an object with exactly
// one key naming a variant, whose value is the variant body.
func (r *run) checkVariant(path cty.Path, t *registry.Type, val cty.Value) {
	attrs, ok := attributes(val)
	if !ok || len(attrs) != 1 {
		r.add(path, CodeInvalidVariant, "expected an object with exactly one of %s, got %s", variantList(t), describe(val))
		return
	}

	var tag string
	var body cty.Value
	for k, v := range attrs {
		tag, body = k, v
	}

	for _, variant := range t.Variants {
		if variant != tag {
			continue
		}
		vt, err := r.reg.Type(variant)
		if err != nil {
			r.add(path, CodeTypeNotFound, "%s", err)
			return
		}
		r.checkType(path.GetAttr(tag), vt, body)
		return
	}
	r.add(path, CodeInvalidVariant, "unknown variant %s, expected one of: %s", tag, variantList(t))
}

func (r *run) checkScalar(path cty.Path, s *registry.Scalar, val cty.Value) {
	if !s.List {
		r.checkElement(path, s, val)
		return
	}
	elems, ok := sequence(val)
	if !ok {
		r.add(path, CodeTypeMismatch, "expected list(%s), got %s", s.Kind, describe(val))
		return
	}
	for i, elem := range elems {
		r.checkElement(path.Index(cty.NumberIntVal(int64(i))), s, elem)
	}
}

func (r *run) checkElement(path cty.Path, s *registry.Scalar, val cty.Value) {
	err := s.Admits(val)
	switch {
	case err == nil:
	case errors.Is(err, registry.ErrOutOfRange):
		r.add(path, CodeOutOfRange, "%s", err)
	case errors.Is(err, registry.ErrNotInEnum):
		r.add(path, CodeInvalidEnum, "%s", err)
	default:
		r.add(path, CodeTypeMismatch, "%s", err)
	}
}

// attributes returns the members of an object-like value.
func attributes(val cty.Value) (map[string]cty.Value, bool) {
	if val.IsNull() || !val.IsKnown() {
		return nil, false
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, false
	}
	m := val.AsValueMap()
	if m == nil {
		m = map[string]cty.Value{}
	}
	return m, true
}

// sequence returns the elements of an array-like value.
func sequence(val cty.Value) ([]cty.Value, bool) {
	if val.IsNull() || !val.IsKnown() {
		return nil, false
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, false
	}
	return val.AsValueSlice(), true
}

func describe(val cty.Value) string {
	switch {
	case val.IsNull():
		return "null"
	case !val.IsKnown():
		return "unknown value"
	case val.Type().IsObjectType() || val.Type().IsMapType():
		return "object"
	case val.Type().IsTupleType() || val.Type().IsListType():
		return "array"
	}
	return val.Type().FriendlyName()
}

func variantList(t *registry.Type) string {
	return strings.Join(t.Variants, ", ")
}

// FormatPath renders a path as parts[0].measures[1][0].note.pitch.step.
func FormatPath(path cty.Path) string {
	var b strings.Builder
	for _, step := range path {
		switch s := step.(type) {
		case cty.GetAttrStep:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Name)
		case cty.IndexStep:
			if s.Key.Type().Equals(cty.Number) {
				i, _ := s.Key.AsBigFloat().Int64()
				fmt.Fprintf(&b, "[%d]", i)
			} else if s.Key.Type().Equals(cty.String) {
				if b.Len() > 0 {
					b.WriteByte('.')
				}
				b.WriteString(s.Key.AsString())
			}
		}
	}
	return b.String()
}
