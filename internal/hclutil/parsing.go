package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// CheckUniqueLabels reports a diagnostic for every block of the given type
// whose first label repeats an earlier one.
func CheckUniqueLabels(blocks hcl.Blocks, blockType string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	seen := make(map[string]*hcl.Block)

	for _, block := range blocks {
		if block.Type != blockType || len(block.Labels) == 0 {
			continue
		}
		label := block.Labels[0]
		if first, dup := seen[label]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "A " + blockType + " named \"" + label + "\" was already declared at " + first.DefRange.String() + ".",
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[label] = block
	}

	return diags
}
