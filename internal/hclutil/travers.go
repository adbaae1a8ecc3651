package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an hcl.Traversal,
// suitable for use as a map key and in messages.
func TraversalKey(t hcl.Traversal) string {
	// e.g., objects.pitch
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// SplitRef decodes a two-part reference such as `objects.pitch` into its
// root and attribute names.
func SplitRef(expr hcl.Expression) (root, name string, diags hcl.Diagnostics) {
	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   "A reference must be written as <group>.<name>, for example objects.pitch.",
			Subject:  expr.Range().Ptr(),
		})
		return "", "", diags
	}

	if len(traversal) != 2 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   fmt.Sprintf("The reference %q must have exactly two parts, <group>.<name>.", TraversalKey(traversal)),
			Subject:  expr.Range().Ptr(),
		})
		return "", "", diags
	}

	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   fmt.Sprintf("The reference %q must not use an index.", TraversalKey(traversal)),
			Subject:  expr.Range().Ptr(),
		})
		return "", "", diags
	}

	return traversal.RootName(), attr.Name, nil
}
