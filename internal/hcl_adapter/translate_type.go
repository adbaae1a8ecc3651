// This file contains the logic for parsing HCL type expressions (e.g., `string`,
// `list(string)`) into their corresponding schema.TypeExpr values.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/schema"
)

// typeExprToScalar converts an HCL type expression into its schema.TypeExpr equivalent.
func typeExprToScalar(ctx context.Context, expr hcl.Expression) (schema.TypeExpr, error) {
	logger := ctxlog.FromContext(ctx)

	// Using a type switch is the correct way to handle the various concrete
	// expression types that implement the hcl.Expression interface.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a function call.", "call", v.Name)

		if v.Name != "list" {
			return schema.TypeExpr{}, fmt.Errorf("unknown type constructor function %q, only list() is supported", v.Name)
		}
		if len(v.Args) != 1 {
			return schema.TypeExpr{}, fmt.Errorf("the list() type constructor requires exactly one argument, got %d", len(v.Args))
		}

		elem, err := typeExprToScalar(ctx, v.Args[0])
		if err != nil {
			return schema.TypeExpr{}, err
		}
		if elem.List {
			return schema.TypeExpr{}, fmt.Errorf("nested lists are not supported, declare an array and reference it instead")
		}
		logger.Debug("Parsed list element type.", "type", elem.Kind.String())
		return schema.TypeExpr{Kind: elem.Kind, List: true}, nil

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return schema.TypeExpr{}, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a primitive.", "keyword", rootName)
		switch rootName {
		case "string":
			return schema.TypeExpr{Kind: schema.ScalarString}, nil
		case "integer":
			return schema.TypeExpr{Kind: schema.ScalarInteger}, nil
		case "number":
			return schema.TypeExpr{Kind: schema.ScalarNumber}, nil
		case "bool":
			return schema.TypeExpr{Kind: schema.ScalarBool}, nil
		default:
			return schema.TypeExpr{}, fmt.Errorf("unknown primitive type %q", rootName)
		}

	default:
		return schema.TypeExpr{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
