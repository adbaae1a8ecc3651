package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// DefaultSource is the descriptor of the score model shipped with the module.
//
//go:embed musje.hcl
var DefaultSource []byte

// DefaultFilename is the name reported in diagnostics for DefaultSource.
const DefaultFilename = "musje.hcl"

// Loader is the interface for a format-specific descriptor loader.
type Loader interface {
	// Load reads descriptor files from the given paths (files or
	// directories) and merges them into one Descriptor. With no paths the
	// embedded DefaultSource is loaded.
	Load(ctx context.Context, paths ...string) (*Descriptor, error)
}

// Group names a type family of the descriptor. References are written as
// <group>.<name>.
type Group string

const (
	GroupIntegers     Group = "integers"
	GroupObjects      Group = "objects"
	GroupNamedObjects Group = "namedObjects"
	GroupArrays       Group = "arrays"
	GroupRoot         Group = "root"
)

// Valid reports whether g is one of the known groups.
func (g Group) Valid() bool {
	switch g {
	case GroupIntegers, GroupObjects, GroupNamedObjects, GroupArrays, GroupRoot:
		return true
	}
	return false
}

// ScalarKind is the primitive kind of a scalar field.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarInteger
	ScalarNumber
	ScalarBool
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarInteger:
		return "integer"
	case ScalarNumber:
		return "number"
	case ScalarBool:
		return "bool"
	}
	return fmt.Sprintf("ScalarKind(%d)", int(k))
}

// TypeExpr is a parsed `type = ...` attribute: a scalar kind, optionally
// wrapped in list().
type TypeExpr struct {
	Kind ScalarKind
	List bool
}

func (t TypeExpr) String() string {
	if t.List {
		return "list(" + t.Kind.String() + ")"
	}
	return t.Kind.String()
}

// Ref is a reference to another declared type.
type Ref struct {
	Group Group
	Name  string
}

func (r Ref) String() string {
	return string(r.Group) + "." + r.Name
}

// Constraints holds the domain of a scalar: bounds, an enumeration and a
// default. Nil pointers mean "not declared".
type Constraints struct {
	Minimum *int64
	Maximum *int64
	Enum    []cty.Value
	Default *cty.Value
}

// FieldDefinition is a single field of an object. Exactly one of Type and
// Ref is set.
type FieldDefinition struct {
	Name        string
	Description string
	Type        *TypeExpr
	Ref         *Ref
	Required    bool
	Constraints
}

// ObjectDefinition describes an object, a named object or the root.
// A named object without fields carries a single scalar in Scalar.
type ObjectDefinition struct {
	Name        string
	Description string
	Fields      []*FieldDefinition
	Scalar      *FieldDefinition
}

// IntegerDefinition describes a reusable integer family.
type IntegerDefinition struct {
	Name        string
	Description string
	Constraints
}

// ArrayDefinition describes an array. Items is set for homogeneous arrays;
// OneOf lists the named objects of a polymorphic array, whose closed union
// is called Union.
type ArrayDefinition struct {
	Name        string
	Description string
	Items       *Ref
	OneOf       []Ref
	Union       string
}

// Descriptor is the unified, format-agnostic Schema Descriptor. Slices keep
// declaration order, which the compiled output follows.
type Descriptor struct {
	Title        string
	Description  string
	Root         *ObjectDefinition
	Integers     []*IntegerDefinition
	Objects      []*ObjectDefinition
	NamedObjects []*ObjectDefinition
	Arrays       []*ArrayDefinition
}

// Merge appends the definitions of other into d. Title and description are
// taken from other when d has none.
func (d *Descriptor) Merge(other *Descriptor) error {
	if other == nil {
		return nil
	}
	if d.Title == "" {
		d.Title = other.Title
	}
	if d.Description == "" {
		d.Description = other.Description
	}
	if other.Root != nil {
		if d.Root != nil {
			return fmt.Errorf("root %q already declared, cannot add root %q", d.Root.Name, other.Root.Name)
		}
		d.Root = other.Root
	}
	d.Integers = append(d.Integers, other.Integers...)
	d.Objects = append(d.Objects, other.Objects...)
	d.NamedObjects = append(d.NamedObjects, other.NamedObjects...)
	d.Arrays = append(d.Arrays, other.Arrays...)
	return nil
}
