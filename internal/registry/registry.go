package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownType is returned when a type is referenced or looked up but was
// never declared.
var ErrUnknownType = errors.New("unknown type")

// Kind classifies a compiled type.
type Kind int

const (
	// KindObject is a plain object, serialized flat.
	KindObject Kind = iota
	// KindNamedObject is a union member with fields, serialized inside an
	// envelope keyed by its tag.
	KindNamedObject
	// KindNamedScalar is a union member carrying a single scalar value.
	KindNamedScalar
	// KindArray is a homogeneous array.
	KindArray
	// KindUnionArray is an array whose elements are named objects selected
	// by tag.
	KindUnionArray
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindNamedObject:
		return "named object"
	case KindNamedScalar:
		return "named scalar"
	case KindArray:
		return "array"
	case KindUnionArray:
		return "union array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Named reports whether values of this kind carry a tag.
func (k Kind) Named() bool {
	return k == KindNamedObject || k == KindNamedScalar
}

// Scalar is a normalized scalar domain. Enum and Default hold values of
// CtyType().
type Scalar struct {
	// Family is the integer family the scalar was declared through, if any.
	Family      string
	Description string
	Kind        schema.ScalarKind
	List        bool
	Min         int64
	HasMin      bool
	Max         int64
	HasMax      bool
	Enum        []cty.Value
	Default     cty.Value
	HasDefault  bool
}

// CtyType returns the cty type of a single element.
func (s *Scalar) CtyType() cty.Type {
	switch s.Kind {
	case schema.ScalarString:
		return cty.String
	case schema.ScalarBool:
		return cty.Bool
	default:
		return cty.Number
	}
}

// HasDomain reports whether values of s are restricted by bounds or an
// enumeration.
func (s *Scalar) HasDomain() bool {
	return s.HasMin || s.HasMax || len(s.Enum) > 0
}

// ZeroValue is the value a field takes when nothing was declared or given.
func (s *Scalar) ZeroValue() cty.Value {
	if s.List {
		return cty.EmptyTupleVal
	}
	if s.HasDefault {
		return s.Default
	}
	switch s.Kind {
	case schema.ScalarString:
		return cty.StringVal("")
	case schema.ScalarBool:
		return cty.False
	default:
		return cty.Zero
	}
}

// Field is a compiled object field. Exactly one of Scalar and Ref is set.
type Field struct {
	Name        string
	Description string
	Required    bool
	Scalar      *Scalar
	// Ref names the referenced object, named object or array type.
	Ref string
}

// Type is a compiled type.
type Type struct {
	Name        string
	Description string
	Kind        Kind
	// Root marks the descriptor's root object.
	Root bool
	// Fields of an object or named object, in declaration order.
	Fields []*Field
	// Scalar is the value of a named scalar.
	Scalar *Scalar
	// Items names the element type of a homogeneous array.
	Items string
	// Variants names the members of a union array, in declaration order.
	Variants []string
	// Union is the name of the closed union of a union array.
	Union string
}

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Registry holds the compiled types of one descriptor.
type Registry struct {
	title       string
	description string
	root        *Type
	types       map[string]*Type
	order       []*Type
	families    map[string]*Scalar
	familyOrder []string
}

// Title is the descriptor title.
func (r *Registry) Title() string { return r.title }

// Description is the descriptor description.
func (r *Registry) Description() string { return r.description }

// Root returns the root type.
func (r *Registry) Root() *Type { return r.root }

// Type looks up a compiled type by name.
func (r *Registry) Type(name string) (*Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Types returns every compiled type in declaration order: the root first,
// then objects, named objects and arrays.
func (r *Registry) Types() []*Type {
	out := make([]*Type, len(r.order))
	copy(out, r.order)
	return out
}

// Family returns the integer family with the given name.
func (r *Registry) Family(name string) (*Scalar, error) {
	s, ok := r.families[name]
	if !ok {
		return nil, fmt.Errorf("%w: integer family %q", ErrUnknownType, name)
	}
	return s, nil
}

// Families returns the integer family names in declaration order.
func (r *Registry) Families() []string {
	out := make([]string, len(r.familyOrder))
	copy(out, r.familyOrder)
	return out
}

// Unions returns every union array type in declaration order.
func (r *Registry) Unions() []*Type {
	var out []*Type
	for _, t := range r.order {
		if t.Kind == KindUnionArray {
			out = append(out, t)
		}
	}
	return out
}
