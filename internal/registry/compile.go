package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/zclconf/go-cty/cty/convert"
)

// Compile resolves a descriptor into a Registry. Every problem found is
// reported; the returned error is a *multierror.Error.
func Compile(ctx context.Context, desc *schema.Descriptor) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling schema descriptor.", "title", desc.Title)

	c := &compiler{
		reg: &Registry{
			title:       desc.Title,
			description: desc.Description,
			types:       make(map[string]*Type),
			families:    make(map[string]*Scalar),
		},
		declared: make(map[string]schema.Group),
	}

	if desc.Root == nil {
		c.fail(errors.New("descriptor declares no root"))
	}

	// Declaration pass: names are unique across every group.
	for _, def := range desc.Integers {
		if c.declare(def.Name, schema.GroupIntegers) {
			c.declareFamily(def)
		}
	}
	if desc.Root != nil && c.declare(desc.Root.Name, schema.GroupRoot) {
		c.reg.root = c.declareObject(desc.Root, KindObject)
		c.reg.root.Root = true
	}
	for _, def := range desc.Objects {
		if c.declare(def.Name, schema.GroupObjects) {
			c.declareObject(def, KindObject)
		}
	}
	for _, def := range desc.NamedObjects {
		if !c.declare(def.Name, schema.GroupNamedObjects) {
			continue
		}
		if def.Scalar != nil {
			c.declareObject(def, KindNamedScalar)
		} else {
			c.declareObject(def, KindNamedObject)
		}
	}
	for _, def := range desc.Arrays {
		if c.declare(def.Name, schema.GroupArrays) {
			c.declareArray(def)
		}
	}

	// Resolution pass.
	c.resolveObjects(desc)
	c.resolveArrays(desc)
	c.checkUnions()

	if err := c.errs.ErrorOrNil(); err != nil {
		logger.Debug("Schema descriptor compilation failed.", "error_count", len(c.errs.Errors))
		return nil, err
	}

	logger.Debug("Schema descriptor compiled.", "types", len(c.reg.order), "families", len(c.reg.familyOrder))
	return c.reg, nil
}

type compiler struct {
	reg      *Registry
	declared map[string]schema.Group
	errs     *multierror.Error
}

func (c *compiler) fail(err error) {
	c.errs = multierror.Append(c.errs, err)
}

func (c *compiler) declare(name string, group schema.Group) bool {
	if name == "" {
		c.fail(fmt.Errorf("%s: empty type name", group))
		return false
	}
	if prev, dup := c.declared[name]; dup {
		c.fail(fmt.Errorf("type %q declared in %s is already declared in %s", name, group, prev))
		return false
	}
	c.declared[name] = group
	return true
}

func (c *compiler) declareFamily(def *schema.IntegerDefinition) {
	s, err := newScalar(schema.TypeExpr{Kind: schema.ScalarInteger}, def.Description, def.Constraints)
	if err != nil {
		c.fail(fmt.Errorf("integer %q: %w", def.Name, err))
		return
	}
	s.Family = def.Name
	c.reg.families[def.Name] = s
	c.reg.familyOrder = append(c.reg.familyOrder, def.Name)
}

func (c *compiler) declareObject(def *schema.ObjectDefinition, kind Kind) *Type {
	t := &Type{Name: def.Name, Description: def.Description, Kind: kind}
	if kind == KindNamedScalar {
		s, err := newScalar(*def.Scalar.Type, def.Scalar.Description, def.Scalar.Constraints)
		if err != nil {
			c.fail(fmt.Errorf("named object %q: %w", def.Name, err))
		}
		t.Scalar = s
	}
	c.reg.types[def.Name] = t
	c.reg.order = append(c.reg.order, t)
	return t
}

func (c *compiler) declareArray(def *schema.ArrayDefinition) {
	t := &Type{Name: def.Name, Description: def.Description, Kind: KindArray}
	if len(def.OneOf) > 0 {
		t.Kind = KindUnionArray
		t.Union = def.Union
	}
	c.reg.types[def.Name] = t
	c.reg.order = append(c.reg.order, t)
}

func (c *compiler) resolveObjects(desc *schema.Descriptor) {
	var defs []*schema.ObjectDefinition
	if desc.Root != nil {
		defs = append(defs, desc.Root)
	}
	defs = append(defs, desc.Objects...)
	defs = append(defs, desc.NamedObjects...)

	for _, def := range defs {
		t, ok := c.reg.types[def.Name]
		if !ok || t.Kind == KindNamedScalar {
			continue
		}
		seen := make(map[string]struct{}, len(def.Fields))
		for _, fd := range def.Fields {
			if _, dup := seen[fd.Name]; dup {
				c.fail(fmt.Errorf("%s %q: duplicate field %q", t.Kind, t.Name, fd.Name))
				continue
			}
			seen[fd.Name] = struct{}{}

			f, err := c.resolveField(fd)
			if err != nil {
				c.fail(fmt.Errorf("%s %q, field %q: %w", t.Kind, t.Name, fd.Name, err))
				continue
			}
			t.Fields = append(t.Fields, f)
		}
	}
}

func (c *compiler) resolveField(fd *schema.FieldDefinition) (*Field, error) {
	f := &Field{Name: fd.Name, Description: fd.Description, Required: fd.Required}

	if fd.Type != nil {
		s, err := newScalar(*fd.Type, fd.Description, fd.Constraints)
		if err != nil {
			return nil, err
		}
		f.Scalar = s
		return f, nil
	}

	if fd.Ref == nil {
		return nil, errors.New("field declares neither a type nor a reference")
	}
	target, err := c.lookup(*fd.Ref)
	if err != nil {
		return nil, err
	}
	if fd.Ref.Group == schema.GroupIntegers {
		family := *c.reg.families[target]
		if f.Description == "" {
			f.Description = family.Description
		}
		f.Scalar = &family
		return f, nil
	}
	f.Ref = target
	return f, nil
}

// lookup resolves a reference, checking that the target lives in the
// referenced group.
func (c *compiler) lookup(ref schema.Ref) (string, error) {
	group, ok := c.declared[ref.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, ref)
	}
	if group != ref.Group {
		return "", fmt.Errorf("%w: %s (%q is declared in %s)", ErrUnknownType, ref, ref.Name, group)
	}
	if group == schema.GroupRoot {
		return "", fmt.Errorf("the root %q cannot be referenced", ref.Name)
	}
	if group == schema.GroupIntegers {
		if _, ok := c.reg.families[ref.Name]; !ok {
			return "", fmt.Errorf("integer family %q is invalid", ref.Name)
		}
	}
	return ref.Name, nil
}

func (c *compiler) resolveArrays(desc *schema.Descriptor) {
	for _, def := range desc.Arrays {
		t, ok := c.reg.types[def.Name]
		if !ok || c.declared[def.Name] != schema.GroupArrays {
			continue
		}

		if t.Kind == KindArray {
			if def.Items == nil {
				c.fail(fmt.Errorf("array %q: no item type", def.Name))
				continue
			}
			if def.Items.Group == schema.GroupIntegers {
				c.fail(fmt.Errorf("array %q: integer items must be declared as a list(integer) field", def.Name))
				continue
			}
			items, err := c.lookup(*def.Items)
			if err != nil {
				c.fail(fmt.Errorf("array %q: %w", def.Name, err))
				continue
			}
			if items == def.Name {
				c.fail(fmt.Errorf("array %q: an array cannot contain itself", def.Name))
				continue
			}
			t.Items = items
			continue
		}

		for _, ref := range def.OneOf {
			variant, err := c.lookup(ref)
			if err != nil {
				c.fail(fmt.Errorf("array %q: %w", def.Name, err))
				continue
			}
			if !c.reg.types[variant].Kind.Named() {
				c.fail(fmt.Errorf("array %q: variant %q is not a named object", def.Name, variant))
				continue
			}
			t.Variants = append(t.Variants, variant)
		}
	}
}

// checkUnions makes sure union names are unique and do not shadow type
// names, since both share one namespace in generated code.
func (c *compiler) checkUnions() {
	unions := make(map[string]string)
	for _, t := range c.reg.Unions() {
		if t.Union == "" {
			c.fail(fmt.Errorf("array %q: union name is empty", t.Name))
			continue
		}
		if group, clash := c.declared[t.Union]; clash {
			c.fail(fmt.Errorf("array %q: union name %q is already declared in %s", t.Name, t.Union, group))
			continue
		}
		if prev, dup := unions[t.Union]; dup {
			c.fail(fmt.Errorf("array %q: union name %q is already used by array %q", t.Name, t.Union, prev))
			continue
		}
		unions[t.Union] = t.Name
	}
}

// newScalar normalizes the constraints of a scalar declaration: enum and
// default values are converted to the scalar's type and the default must
// satisfy the domain.
func newScalar(typ schema.TypeExpr, description string, cons schema.Constraints) (*Scalar, error) {
	s := &Scalar{Description: description, Kind: typ.Kind, List: typ.List}
	if cons.Minimum != nil {
		s.Min, s.HasMin = *cons.Minimum, true
	}
	if cons.Maximum != nil {
		s.Max, s.HasMax = *cons.Maximum, true
	}
	if s.HasMin && s.HasMax && s.Min > s.Max {
		return nil, fmt.Errorf("minimum %d is greater than maximum %d", s.Min, s.Max)
	}

	ty := s.CtyType()
	for _, e := range cons.Enum {
		v, err := convert.Convert(e, ty)
		if err != nil {
			return nil, fmt.Errorf("enum value %s is not a %s: %w", FormatValue(e), typ.Kind, err)
		}
		s.Enum = append(s.Enum, v)
	}
	bare := *s
	bare.Enum = nil
	for _, e := range s.Enum {
		if err := bare.Admits(e); err != nil {
			return nil, fmt.Errorf("enum value: %w", err)
		}
	}

	if cons.Default != nil {
		if s.List {
			return nil, errors.New("list fields cannot declare a default")
		}
		v, err := convert.Convert(*cons.Default, ty)
		if err != nil {
			return nil, fmt.Errorf("default value %s is not a %s: %w", FormatValue(*cons.Default), typ.Kind, err)
		}
		if err := s.Admits(v); err != nil {
			return nil, fmt.Errorf("default value: %w", err)
		}
		s.Default, s.HasDefault = v, true
	}
	return s, nil
}
