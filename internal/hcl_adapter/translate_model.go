// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic schema.Descriptor.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/hclutil"
	"github.com/specialistvlad/musjego/internal/schema"
)

// translateFile converts all blocks of one decoded file.
func (l *Loader) translateFile(ctx context.Context, root *fileRoot) (*schema.Descriptor, error) {
	desc := &schema.Descriptor{
		Title:       root.Title,
		Description: root.Description,
	}

	if len(root.Roots) > 1 {
		return nil, fmt.Errorf("only one root block is allowed per descriptor, found %d", len(root.Roots))
	}
	for _, r := range root.Roots {
		def, err := l.translateObject(ctx, "root", r)
		if err != nil {
			return nil, err
		}
		if def.Scalar != nil {
			return nil, fmt.Errorf("root %q must declare fields, not a scalar type", r.Name)
		}
		desc.Root = def
	}

	for _, b := range root.Integers {
		def, err := l.translateInteger(ctx, b)
		if err != nil {
			return nil, err
		}
		desc.Integers = append(desc.Integers, def)
	}
	for _, b := range root.Objects {
		def, err := l.translateObject(ctx, "object", b)
		if err != nil {
			return nil, err
		}
		if def.Scalar != nil {
			return nil, fmt.Errorf("object %q must declare fields, only named objects may be scalar", b.Name)
		}
		desc.Objects = append(desc.Objects, def)
	}
	for _, b := range root.NamedObjects {
		def, err := l.translateObject(ctx, "named_object", b)
		if err != nil {
			return nil, err
		}
		desc.NamedObjects = append(desc.NamedObjects, def)
	}
	for _, b := range root.Arrays {
		def, err := l.translateArray(ctx, b)
		if err != nil {
			return nil, err
		}
		desc.Arrays = append(desc.Arrays, def)
	}

	return desc, nil
}

// translateObject converts a root, object or named_object block. A body
// without field blocks but with a `type` attribute is a scalar named object.
func (l *Loader) translateObject(ctx context.Context, kind string, b *objectBlock) (*schema.ObjectDefinition, error) {
	logger := ctxlog.FromContext(ctx).With(kind, b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL object block.")

	content, diags := b.Body.Content(objectBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("in %s %q: %w", kind, b.Name, diags)
	}
	if diags := hclutil.CheckUniqueLabels(content.Blocks, "field"); diags.HasErrors() {
		return nil, fmt.Errorf("in %s %q: %w", kind, b.Name, diags)
	}

	def := &schema.ObjectDefinition{Name: b.Name}
	def.Description, diags = decodeString(content.Attributes, "description")
	if diags.HasErrors() {
		return nil, fmt.Errorf("in %s %q: %w", kind, b.Name, diags)
	}

	_, hasType := content.Attributes["type"]
	if hasType {
		if len(content.Blocks) > 0 {
			return nil, fmt.Errorf("in %s %q: a scalar type cannot be combined with field blocks", kind, b.Name)
		}
		logger.Debug("Object declares a scalar type.")
		field, err := translateScalarAttributes(ctx, b.Name, content.Attributes)
		if err != nil {
			return nil, fmt.Errorf("in %s %q: %w", kind, b.Name, err)
		}
		def.Scalar = field
		return def, nil
	}
	for attrName := range content.Attributes {
		if attrName != "description" {
			return nil, fmt.Errorf("in %s %q: `%s` requires a `type` attribute", kind, b.Name, attrName)
		}
	}

	for _, block := range content.Blocks {
		field, err := l.translateField(ctx, block)
		if err != nil {
			return nil, fmt.Errorf("in %s %q: %w", kind, b.Name, err)
		}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

// translateField converts a `field` block. Exactly one of `type` and `ref`
// must be present.
func (l *Loader) translateField(ctx context.Context, block *hcl.Block) (*schema.FieldDefinition, error) {
	name := block.Labels[0]
	content, diags := block.Body.Content(fieldBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("field %q: %w", name, diags)
	}

	refAttr, hasRef := content.Attributes["ref"]
	_, hasType := content.Attributes["type"]
	switch {
	case hasRef && hasType:
		return nil, fmt.Errorf("field %q: `type` and `ref` are mutually exclusive", name)
	case !hasRef && !hasType:
		return nil, fmt.Errorf("field %q: one of `type` or `ref` is required", name)
	}

	var field *schema.FieldDefinition
	if hasRef {
		group, target, refDiags := hclutil.SplitRef(refAttr.Expr)
		if refDiags.HasErrors() {
			return nil, fmt.Errorf("field %q: %w", name, refDiags)
		}
		ref := &schema.Ref{Group: schema.Group(group), Name: target}
		if !ref.Group.Valid() || ref.Group == schema.GroupRoot {
			return nil, fmt.Errorf("field %q: unknown reference group %q", name, group)
		}
		field = &schema.FieldDefinition{Name: name, Ref: ref}
		field.Description, diags = decodeString(content.Attributes, "description")
		if diags.HasErrors() {
			return nil, fmt.Errorf("field %q: %w", name, diags)
		}
		for _, attr := range []string{"minimum", "maximum", "enum", "default"} {
			if _, ok := content.Attributes[attr]; ok {
				return nil, fmt.Errorf("field %q: `%s` cannot be used with `ref`", name, attr)
			}
		}
	} else {
		var err error
		field, err = translateScalarAttributes(ctx, name, content.Attributes)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}

	field.Required, diags = decodeBool(content.Attributes, "required")
	if diags.HasErrors() {
		return nil, fmt.Errorf("field %q: %w", name, diags)
	}
	return field, nil
}

// translateScalarAttributes converts the `type` attribute and its
// constraints.
func translateScalarAttributes(ctx context.Context, name string, attrs hcl.Attributes) (*schema.FieldDefinition, error) {
	typ, err := typeExprToScalar(ctx, attrs["type"].Expr)
	if err != nil {
		return nil, err
	}
	field := &schema.FieldDefinition{Name: name, Type: &typ}

	var diags hcl.Diagnostics
	field.Description, diags = decodeString(attrs, "description")
	if diags.HasErrors() {
		return nil, diags
	}
	field.Constraints, diags = decodeConstraints(attrs)
	if diags.HasErrors() {
		return nil, diags
	}
	if (field.Minimum != nil || field.Maximum != nil) && typ.Kind != schema.ScalarInteger && typ.Kind != schema.ScalarNumber {
		return nil, fmt.Errorf("bounds are only allowed on integer and number types, got %s", typ)
	}
	return field, nil
}

// translateInteger converts an `integer` family block.
func (l *Loader) translateInteger(ctx context.Context, b *integerBlock) (*schema.IntegerDefinition, error) {
	ctxlog.FromContext(ctx).Debug("Translating HCL integer block.", "integer", b.Name)

	content, diags := b.Body.Content(integerBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("in integer %q: %w", b.Name, diags)
	}

	def := &schema.IntegerDefinition{Name: b.Name}
	def.Description, diags = decodeString(content.Attributes, "description")
	if diags.HasErrors() {
		return nil, fmt.Errorf("in integer %q: %w", b.Name, diags)
	}
	def.Constraints, diags = decodeConstraints(content.Attributes)
	if diags.HasErrors() {
		return nil, fmt.Errorf("in integer %q: %w", b.Name, diags)
	}
	return def, nil
}

// translateArray converts an `array` block. Exactly one of `items` and
// `one_of` must be present.
func (l *Loader) translateArray(ctx context.Context, b *arrayBlock) (*schema.ArrayDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("array", b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL array block.")

	hasItems := isExprDefined(ctx, b.Items, "items")
	hasOneOf := isExprDefined(ctx, b.OneOf, "one_of")
	switch {
	case hasItems && hasOneOf:
		return nil, fmt.Errorf("in array %q: `items` and `one_of` are mutually exclusive", b.Name)
	case !hasItems && !hasOneOf:
		return nil, fmt.Errorf("in array %q: one of `items` or `one_of` is required", b.Name)
	}

	def := &schema.ArrayDefinition{Name: b.Name, Description: b.Description}

	if hasItems {
		group, target, diags := hclutil.SplitRef(b.Items)
		if diags.HasErrors() {
			return nil, fmt.Errorf("in array %q: %w", b.Name, diags)
		}
		ref := &schema.Ref{Group: schema.Group(group), Name: target}
		if !ref.Group.Valid() || ref.Group == schema.GroupRoot {
			return nil, fmt.Errorf("in array %q: unknown reference group %q", b.Name, group)
		}
		if b.Union != "" {
			return nil, fmt.Errorf("in array %q: `union` requires `one_of`", b.Name)
		}
		def.Items = ref
		return def, nil
	}

	exprs, diags := hcl.ExprList(b.OneOf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("in array %q: %w", b.Name, diags)
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("in array %q: `one_of` must list at least one named object", b.Name)
	}
	seen := make(map[string]struct{}, len(exprs))
	for _, expr := range exprs {
		group, target, diags := hclutil.SplitRef(expr)
		if diags.HasErrors() {
			return nil, fmt.Errorf("in array %q: %w", b.Name, diags)
		}
		if schema.Group(group) != schema.GroupNamedObjects {
			return nil, fmt.Errorf("in array %q: `one_of` may only reference namedObjects, got %s.%s", b.Name, group, target)
		}
		if _, dup := seen[target]; dup {
			return nil, fmt.Errorf("in array %q: variant %q listed twice", b.Name, target)
		}
		seen[target] = struct{}{}
		def.OneOf = append(def.OneOf, schema.Ref{Group: schema.GroupNamedObjects, Name: target})
	}

	def.Union = b.Union
	if def.Union == "" {
		def.Union = b.Name + "Item"
	}
	logger.Debug("Array is polymorphic.", "variants", len(def.OneOf), "union", def.Union)
	return def, nil
}
