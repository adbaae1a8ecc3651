package validate

import (
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// DraftSchema is the JSON Schema dialect of Document.
const DraftSchema = "http://json-schema.org/draft-04/schema#"

// Document exports the compiled checks as a JSON Schema (draft-04)
// document. Types are grouped like the descriptor and referenced as
// #/<group>/<name>. The result is ready for encoding/json.
func (v *Validator) Document() map[string]any {
	doc := map[string]any{
		"$schema": DraftSchema,
	}
	if v.reg.Title() != "" {
		doc["title"] = v.reg.Title()
	}
	if v.reg.Description() != "" {
		doc["description"] = v.reg.Description()
	}

	integers := map[string]any{}
	for _, name := range v.reg.Families() {
		s, err := v.reg.Family(name)
		if err != nil {
			continue
		}
		family := scalarSchema(s)
		if s.Description != "" {
			family["description"] = s.Description
		}
		integers[name] = family
	}
	if len(integers) > 0 {
		doc["integers"] = integers
	}

	objects := map[string]any{}
	namedObjects := map[string]any{}
	arrays := map[string]any{}
	for _, t := range v.reg.Types() {
		switch t.Kind {
		case registry.KindObject:
			if t.Root {
				for k, val := range v.objectSchema(t) {
					doc[k] = val
				}
				continue
			}
			objects[t.Name] = v.objectSchema(t)
		case registry.KindNamedObject:
			namedObjects[t.Name] = envelopeSchema(t.Name, v.objectSchema(t))
		case registry.KindNamedScalar:
			namedObjects[t.Name] = envelopeSchema(t.Name, scalarSchema(t.Scalar))
		case registry.KindArray:
			arrays[t.Name] = map[string]any{
				"type":            "array",
				"items":           v.ref(t.Items),
				"additionalItems": false,
			}
		case registry.KindUnionArray:
			oneOf := make([]any, len(t.Variants))
			for i, variant := range t.Variants {
				oneOf[i] = v.ref(variant)
			}
			arrays[t.Name] = map[string]any{
				"type":            "array",
				"items":           map[string]any{"oneOf": oneOf},
				"additionalItems": false,
			}
		}
	}
	for group, defs := range map[string]map[string]any{
		"objects":      objects,
		"namedObjects": namedObjects,
		"arrays":       arrays,
	} {
		if len(defs) > 0 {
			doc[group] = defs
		}
	}
	return doc
}

func (v *Validator) objectSchema(t *registry.Type) map[string]any {
	props := map[string]any{}
	var required []any
	for _, f := range t.Fields {
		var prop map[string]any
		switch {
		case f.Scalar != nil && f.Scalar.Family != "":
			prop = map[string]any{"$ref": "#/integers/" + f.Scalar.Family}
		case f.Scalar != nil:
			prop = scalarSchema(f.Scalar)
		default:
			prop = v.ref(f.Ref)
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		props[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	out := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if t.Description != "" {
		out["description"] = t.Description
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func envelopeSchema(tag string, body map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{tag: body},
		"required":             []any{tag},
		"additionalProperties": false,
	}
}

func (v *Validator) ref(name string) map[string]any {
	t, err := v.reg.Type(name)
	if err != nil {
		return map[string]any{}
	}
	group := "objects"
	switch t.Kind {
	case registry.KindNamedObject, registry.KindNamedScalar:
		group = "namedObjects"
	case registry.KindArray, registry.KindUnionArray:
		group = "arrays"
	}
	return map[string]any{"$ref": "#/" + group + "/" + name}
}

func scalarSchema(s *registry.Scalar) map[string]any {
	elem := map[string]any{"type": s.Kind.String()}
	if s.Kind == schema.ScalarBool {
		elem["type"] = "boolean"
	}
	if s.HasMin {
		elem["minimum"] = s.Min
	}
	if s.HasMax {
		elem["maximum"] = s.Max
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, e := range s.Enum {
			enum[i] = plain(e)
		}
		elem["enum"] = enum
	}
	if s.Description != "" && s.Family == "" {
		elem["description"] = s.Description
	}

	if s.List {
		return map[string]any{"type": "array", "items": elem}
	}
	if s.HasDefault {
		elem["default"] = plain(s.Default)
	}
	return elem
}

// plain converts a known scalar to the Go value encoding/json expects.
func plain(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	switch {
	case v.Type().Equals(cty.String):
		return v.AsString()
	case v.Type().Equals(cty.Bool):
		return v.True()
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return i
		}
		f, _ := bf.Float64()
		return f
	}
	return nil
}
