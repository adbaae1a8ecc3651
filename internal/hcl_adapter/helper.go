package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// non-nil, zero-width expression objects, so a simple nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	// A real attribute occupies bytes in the file, while a placeholder for an
	// omitted optional attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)

	return isDefined
}

// staticValue evaluates an attribute without any variables or functions.
func staticValue(attr *hcl.Attribute) (cty.Value, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   fmt.Sprintf("The %q attribute must be a constant value.", attr.Name),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return val, nil
}

// decodeString decodes an optional string attribute.
func decodeString(attrs hcl.Attributes, name string) (string, hcl.Diagnostics) {
	attr, exists := attrs[name]
	if !exists {
		return "", nil
	}
	val, diags := staticValue(attr)
	if diags.HasErrors() {
		return "", diags
	}
	var out string
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   fmt.Sprintf("The %q attribute must be a string: %s.", name, err),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return out, nil
}

// decodeBool decodes an optional bool attribute.
func decodeBool(attrs hcl.Attributes, name string) (bool, hcl.Diagnostics) {
	attr, exists := attrs[name]
	if !exists {
		return false, nil
	}
	val, diags := staticValue(attr)
	if diags.HasErrors() {
		return false, diags
	}
	var out bool
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return false, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   fmt.Sprintf("The %q attribute must be a bool: %s.", name, err),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return out, nil
}

// decodeBound decodes an optional integer bound such as `minimum = -5`.
func decodeBound(attrs hcl.Attributes, name string) (*int64, hcl.Diagnostics) {
	attr, exists := attrs[name]
	if !exists {
		return nil, nil
	}
	val, diags := staticValue(attr)
	if diags.HasErrors() {
		return nil, diags
	}
	var out int64
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid bound",
			Detail:   fmt.Sprintf("The %q attribute must be a whole number: %s.", name, err),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return &out, nil
}

// decodeConstraints reads the minimum, maximum, enum and default attributes.
func decodeConstraints(attrs hcl.Attributes) (schema.Constraints, hcl.Diagnostics) {
	var c schema.Constraints
	var diags hcl.Diagnostics
	var d hcl.Diagnostics

	c.Minimum, d = decodeBound(attrs, "minimum")
	diags = append(diags, d...)
	c.Maximum, d = decodeBound(attrs, "maximum")
	diags = append(diags, d...)

	if attr, exists := attrs["enum"]; exists {
		val, valDiags := staticValue(attr)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			if !val.CanIterateElements() || val.IsNull() {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid enum",
					Detail:   "The \"enum\" attribute must be a list of allowed values.",
					Subject:  attr.Expr.Range().Ptr(),
				})
			} else {
				c.Enum = val.AsValueSlice()
			}
		}
	}

	if attr, exists := attrs["default"]; exists {
		val, valDiags := staticValue(attr)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() && !val.IsNull() {
			c.Default = &val
		}
	}

	return c, diags
}
