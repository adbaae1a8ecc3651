package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Title        string          `hcl:"title,optional"`
	Description  string          `hcl:"description,optional"`
	Roots        []*objectBlock  `hcl:"root,block"`
	Integers     []*integerBlock `hcl:"integer,block"`
	Objects      []*objectBlock  `hcl:"object,block"`
	NamedObjects []*objectBlock  `hcl:"named_object,block"`
	Arrays       []*arrayBlock   `hcl:"array,block"`
}

// objectBlock is a `root`, `object` or `named_object` block. Its body holds
// `field` blocks, or for a scalar named object, scalar attributes.
type objectBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// integerBlock is an `integer` family block.
type integerBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// arrayBlock is an `array` block.
type arrayBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Items       hcl.Expression `hcl:"items,optional"`
	OneOf       hcl.Expression `hcl:"one_of,optional"`
	Union       string         `hcl:"union,optional"`
}

// scalarAttributes are the attributes shared by fields, integer families
// and scalar named objects.
var scalarAttributes = []hcl.AttributeSchema{
	{Name: "description"},
	{Name: "type"},
	{Name: "minimum"},
	{Name: "maximum"},
	{Name: "enum"},
	{Name: "default"},
}

// objectBodySchema is the HCL schema for the body of an object-like block.
var objectBodySchema = &hcl.BodySchema{
	Attributes: scalarAttributes,
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "field", LabelNames: []string{"name"}},
	},
}

// fieldBodySchema is the HCL schema for the body of a `field` block.
var fieldBodySchema = &hcl.BodySchema{
	Attributes: append([]hcl.AttributeSchema{
		{Name: "ref"},
		{Name: "required"},
	}, scalarAttributes...),
}

// integerBodySchema is the HCL schema for the body of an `integer` block.
var integerBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "minimum"},
		{Name: "maximum"},
		{Name: "enum"},
		{Name: "default"},
	},
}
