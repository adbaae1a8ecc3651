// Package schemagen turns a compiled registry into Go source: one record
// type per declared object, named object and array, plus one sealed
// interface per union.
//
// The generated code depends on a small set of helpers that the target
// package must provide (attr, elements, envelope, tupleVal, the *Attr,
// *Value and *Val scalar converters and the intDomain, numberDomain and
// stringDomain types). Union variants must also implement fmt.Stringer in
// hand-written code.
package schemagen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Generator is the name written into the generated file header.
const Generator = "musjegen"

// Generate emits the formatted Go source for every type in reg.
func Generate(ctx context.Context, reg *registry.Registry, pkg string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	g := &generator{reg: reg}
	g.p("// Code generated by %s. DO NOT EDIT.", Generator)
	g.p("")
	g.p("package %s", pkg)
	g.p("")
	g.p("import (")
	g.p("\t%q", "github.com/zclconf/go-cty/cty")
	g.p(")")

	for _, name := range reg.Families() {
		s, err := reg.Family(name)
		if err != nil {
			return nil, err
		}
		g.family(name, s)
	}

	for _, t := range reg.Types() {
		switch t.Kind {
		case registry.KindObject, registry.KindNamedObject:
			if err := g.object(t); err != nil {
				return nil, err
			}
		case registry.KindNamedScalar:
			g.namedScalar(t)
		case registry.KindArray:
			if err := g.array(t); err != nil {
				return nil, err
			}
		case registry.KindUnionArray:
			g.unionArray(t)
		}
	}

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	logger.Debug("Generated Go source.", "package", pkg, "types", len(reg.Types()), "bytes", len(src))
	return src, nil
}

type generator struct {
	reg *registry.Registry
	buf bytes.Buffer
}

func (g *generator) p(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

func (g *generator) family(name string, s *registry.Scalar) {
	if s.HasDefault {
		g.p("")
		g.p("// %sDefault is the default value of the %s integer family.", exported(name), name)
		g.p("const %sDefault = %s", exported(name), literal(s, s.Default))
	}
	if s.HasDomain() {
		g.p("")
		g.p("// %s is the domain of the %s integer family.", domainVar("", name, s), name)
		g.p("var %s = %s", domainVar("", name, s), domainLiteral(s))
	}
}

func (g *generator) object(t *registry.Type) error {
	name := exported(t.Name)
	named := t.Kind == registry.KindNamedObject

	if named {
		g.p("")
		g.p("// Tag%s is the tag of %s in tagged envelopes.", name, name)
		g.p("const Tag%s = %q", name, t.Name)
	}

	g.p("")
	switch {
	case t.Root:
		g.p("// %s is the %s root object.", name, t.Name)
	case named:
		g.p("// %s is the %s named object.", name, t.Name)
	default:
		g.p("// %s is the %s object.", name, t.Name)
	}
	if t.Description != "" {
		g.p("//")
		g.p("// %s", t.Description)
	}
	g.p("type %s struct {", name)
	for _, f := range t.Fields {
		typ, err := g.fieldType(f)
		if err != nil {
			return fmt.Errorf("type %q: %w", t.Name, err)
		}
		g.p("\t%s %s", storage(f.Name), typ)
	}
	g.p("}")

	var domains []*registry.Field
	for _, f := range t.Fields {
		if f.Scalar != nil && f.Scalar.Family == "" && f.Scalar.HasDomain() {
			domains = append(domains, f)
		}
	}
	if len(domains) > 0 {
		g.p("")
		g.p("var (")
		for _, f := range domains {
			g.p("\t%s = %s", domainVar(t.Name, f.Name, f.Scalar), domainLiteral(f.Scalar))
		}
		g.p(")")
	}

	// Constructor.
	g.p("")
	g.p("// New%s returns a %s with every field at its default.", name, name)
	g.p("func New%s() *%s {", name, name)
	var defaults []*registry.Field
	for _, f := range t.Fields {
		if f.Scalar != nil && !f.Scalar.List {
			defaults = append(defaults, f)
		}
	}
	if len(defaults) == 0 {
		g.p("\treturn &%s{}", name)
	} else {
		g.p("\treturn &%s{", name)
		for _, f := range defaults {
			g.p("\t\t%s: %s,", storage(f.Name), defaultExpr(f.Scalar))
		}
		g.p("\t}")
	}
	g.p("}")

	// Tree constructor.
	g.p("")
	if named {
		g.p("// %sFromTree builds a %s from the body of its envelope. Absent", name, name)
	} else {
		g.p("// %sFromTree builds a %s from a plain tree. Absent", name, name)
	}
	g.p("// members keep their defaults; values are not checked against their")
	g.p("// domains.")
	g.p("func %sFromTree(v cty.Value) *%s {", name, name)
	g.p("\tx := New%s()", name)
	for _, f := range t.Fields {
		st := storage(f.Name)
		if f.Scalar != nil {
			g.p("\tx.%s = %s(v, %q, x.%s)", st, reader(f.Scalar, "Attr"), f.Name, st)
			continue
		}
		g.p("\tif a, ok := attr(v, %q); ok {", f.Name)
		g.p("\t\tx.%s = %sFromTree(a)", st, exported(f.Ref))
		g.p("\t}")
	}
	g.p("\treturn x")
	g.p("}")

	// Accessors.
	for _, f := range t.Fields {
		g.accessors(t, f)
	}

	if named {
		g.p("")
		g.p("// Tag returns Tag%s.", name)
		g.p("func (x *%s) Tag() string {", name)
		g.p("\treturn Tag%s", name)
		g.p("}")
		g.p("")
		g.p("// Tree returns the canonical plain tree of x inside its tagged envelope.")
		g.p("func (x *%s) Tree() cty.Value {", name)
		g.p("\treturn cty.ObjectVal(map[string]cty.Value{")
		g.p("\t\tTag%s: x.Body(),", name)
		g.p("\t})")
		g.p("}")
		g.p("")
		g.p("// Body returns the canonical plain tree of x without its envelope.")
		g.p("func (x *%s) Body() cty.Value {", name)
	} else {
		g.p("")
		g.p("// Tree returns the canonical plain tree of x.")
		g.p("func (x *%s) Tree() cty.Value {", name)
	}
	if len(t.Fields) == 0 {
		g.p("\treturn cty.EmptyObjectVal")
	} else {
		g.p("\treturn cty.ObjectVal(map[string]cty.Value{")
		for _, f := range t.Fields {
			g.p("\t\t%q: %s,", f.Name, g.treeExpr(f))
		}
		g.p("\t})")
	}
	g.p("}")
	return nil
}

func (g *generator) accessors(t *registry.Type, f *registry.Field) {
	recv := exported(t.Name)
	method := exported(f.Name)
	st := storage(f.Name)

	if f.Scalar != nil {
		typ := goType(f.Scalar)
		g.p("")
		g.p("// %s returns the %s field.", method, f.Name)
		g.p("func (x *%s) %s() %s {", recv, method, typ)
		g.p("\treturn x.%s", st)
		g.p("}")

		g.p("")
		if !f.Scalar.HasDomain() {
			g.p("// Set%s sets the %s field.", method, f.Name)
			g.p("func (x *%s) Set%s(v %s) {", recv, method, typ)
			g.p("\tx.%s = v", st)
			g.p("}")
			return
		}
		dv := domainVar(t.Name, f.Name, f.Scalar)
		label := t.Name + "." + f.Name
		g.p("// Set%s sets the %s field. A value outside the field's domain is", method, f.Name)
		g.p("// rejected with a *DomainError.")
		g.p("func (x *%s) Set%s(v %s) error {", recv, method, typ)
		if f.Scalar.List {
			g.p("\tfor _, e := range v {")
			g.p("\t\tif err := %s.check(%q, e); err != nil {", dv, label)
			g.p("\t\t\treturn err")
			g.p("\t\t}")
			g.p("\t}")
		} else {
			g.p("\tif err := %s.check(%q, v); err != nil {", dv, label)
			g.p("\t\treturn err")
			g.p("\t}")
		}
		g.p("\tx.%s = v", st)
		g.p("\treturn nil")
		g.p("}")
		return
	}

	ref, _ := g.reg.Type(f.Ref)
	refName := exported(f.Ref)
	g.p("")
	if ref != nil && (ref.Kind == registry.KindArray || ref.Kind == registry.KindUnionArray) {
		g.p("// %s returns the %s field, creating an empty %s on first access.", method, f.Name, refName)
		g.p("func (x *%s) %s() %s {", recv, method, refName)
		g.p("\tif x.%s == nil {", st)
		g.p("\t\tx.%s = %s{}", st, refName)
		g.p("\t}")
		g.p("\treturn x.%s", st)
		g.p("}")
		g.p("")
		g.p("// Set%s sets the %s field.", method, f.Name)
		g.p("func (x *%s) Set%s(v %s) {", recv, method, refName)
		g.p("\tx.%s = v", st)
		g.p("}")
		return
	}
	g.p("// %s returns the %s field, creating a default %s on first access.", method, f.Name, refName)
	g.p("func (x *%s) %s() *%s {", recv, method, refName)
	g.p("\tif x.%s == nil {", st)
	g.p("\t\tx.%s = New%s()", st, refName)
	g.p("\t}")
	g.p("\treturn x.%s", st)
	g.p("}")
	g.p("")
	g.p("// Set%s sets the %s field.", method, f.Name)
	g.p("func (x *%s) Set%s(v *%s) {", recv, method, refName)
	g.p("\tx.%s = v", st)
	g.p("}")
}

func (g *generator) namedScalar(t *registry.Type) {
	name := exported(t.Name)
	s := t.Scalar
	typ := goType(s)

	g.p("")
	g.p("// Tag%s is the tag of %s in tagged envelopes.", name, name)
	g.p("const Tag%s = %q", name, t.Name)
	g.p("")
	g.p("// %s is the %s named object. It carries a single %s value.", name, t.Name, s.Kind)
	if t.Description != "" {
		g.p("//")
		g.p("// %s", t.Description)
	}
	g.p("type %s struct {", name)
	g.p("\tvalue %s", typ)
	g.p("}")

	if s.HasDomain() {
		g.p("")
		g.p("var %s = %s", domainVar(t.Name, "value", s), domainLiteral(s))
	}

	g.p("")
	g.p("// New%s returns a %s holding its default value.", name, name)
	g.p("func New%s() *%s {", name, name)
	if s.List {
		g.p("\treturn &%s{}", name)
	} else {
		g.p("\treturn &%s{", name)
		g.p("\t\tvalue: %s,", defaultExpr(s))
		g.p("\t}")
	}
	g.p("}")

	g.p("")
	g.p("// %sFromTree builds a %s from the body of its envelope. The value is", name, name)
	g.p("// not checked against its domain.")
	g.p("func %sFromTree(v cty.Value) *%s {", name, name)
	g.p("\tx := New%s()", name)
	g.p("\tx.value = %s(v, x.value)", reader(s, "Value"))
	g.p("\treturn x")
	g.p("}")

	g.p("")
	g.p("// Value returns the value of x.")
	g.p("func (x *%s) Value() %s {", name, typ)
	g.p("\treturn x.value")
	g.p("}")
	g.p("")
	if s.HasDomain() {
		g.p("// SetValue sets the value of x. A value outside its domain is rejected")
		g.p("// with a *DomainError.")
		g.p("func (x *%s) SetValue(v %s) error {", name, typ)
		if s.List {
			g.p("\tfor _, e := range v {")
			g.p("\t\tif err := %s.check(%q, e); err != nil {", domainVar(t.Name, "value", s), t.Name)
			g.p("\t\t\treturn err")
			g.p("\t\t}")
			g.p("\t}")
		} else {
			g.p("\tif err := %s.check(%q, v); err != nil {", domainVar(t.Name, "value", s), t.Name)
			g.p("\t\treturn err")
			g.p("\t}")
		}
		g.p("\tx.value = v")
		g.p("\treturn nil")
		g.p("}")
	} else {
		g.p("// SetValue sets the value of x.")
		g.p("func (x *%s) SetValue(v %s) {", name, typ)
		g.p("\tx.value = v")
		g.p("}")
	}

	g.p("")
	g.p("// Tag returns Tag%s.", name)
	g.p("func (x *%s) Tag() string {", name)
	g.p("\treturn Tag%s", name)
	g.p("}")
	g.p("")
	g.p("// Tree returns the canonical plain tree of x inside its tagged envelope.")
	g.p("func (x *%s) Tree() cty.Value {", name)
	g.p("\treturn cty.ObjectVal(map[string]cty.Value{")
	g.p("\t\tTag%s: x.Body(),", name)
	g.p("\t})")
	g.p("}")
	g.p("")
	g.p("// Body returns the value of x as a plain tree.")
	g.p("func (x *%s) Body() cty.Value {", name)
	g.p("\treturn %s", valueExpr(s, "x.value"))
	g.p("}")
}

func (g *generator) array(t *registry.Type) error {
	name := exported(t.Name)
	items, err := g.reg.Type(t.Items)
	if err != nil {
		return fmt.Errorf("array %q: %w", t.Name, err)
	}
	itemName := exported(items.Name)
	elem := itemName
	if items.Kind != registry.KindArray && items.Kind != registry.KindUnionArray {
		elem = "*" + itemName
	}

	g.p("")
	g.p("// %s is the %s array.", name, t.Name)
	if t.Description != "" {
		g.p("//")
		g.p("// %s", t.Description)
	}
	g.p("type %s []%s", name, elem)
	g.p("")
	g.p("// %sFromTree builds a %s from a plain array tree.", name, name)
	g.p("func %sFromTree(v cty.Value) %s {", name, name)
	g.p("\telems := elements(v)")
	g.p("\tout := make(%s, 0, len(elems))", name)
	g.p("\tfor _, e := range elems {")
	if items.Kind.Named() {
		g.p("\t\tif tag, body, ok := envelope(e); ok && tag == Tag%s {", itemName)
		g.p("\t\t\tout = append(out, %sFromTree(body))", itemName)
		g.p("\t\t}")
	} else {
		g.p("\t\tout = append(out, %sFromTree(e))", itemName)
	}
	g.p("\t}")
	g.p("\treturn out")
	g.p("}")
	g.arrayTree(name)
	return nil
}

func (g *generator) unionArray(t *registry.Type) {
	name := exported(t.Name)
	union := exported(t.Union)

	variants := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		variants[i] = exported(v)
	}

	g.p("")
	g.p("// %s is the %s array. Its elements are %s variants.", name, t.Name, union)
	if t.Description != "" {
		g.p("//")
		g.p("// %s", t.Description)
	}
	g.p("type %s []%s", name, union)
	g.p("")
	g.p("// %sFromTree builds a %s from a plain array tree. Elements that are", name, name)
	g.p("// not the envelope of a %s variant are dropped.", union)
	g.p("func %sFromTree(v cty.Value) %s {", name, name)
	g.p("\telems := elements(v)")
	g.p("\tout := make(%s, 0, len(elems))", name)
	g.p("\tfor _, e := range elems {")
	g.p("\t\tif md, ok := %sFromTree(e); ok {", union)
	g.p("\t\t\tout = append(out, md)")
	g.p("\t\t}")
	g.p("\t}")
	g.p("\treturn out")
	g.p("}")
	g.arrayTree(name)

	g.p("")
	g.p("// %s is the closed union of the %s array: %s.", union, t.Name, joinOr(variants))
	g.p("type %s interface {", union)
	g.p("\t// Tag names the variant. It is the key of the serialization envelope.")
	g.p("\tTag() string")
	g.p("\t// Tree returns the canonical plain tree inside its tagged envelope.")
	g.p("\tTree() cty.Value")
	g.p("\t// String returns the notation text of the variant.")
	g.p("\tString() string")
	g.p("\tis%s()", union)
	g.p("}")
	g.p("")
	for _, v := range variants {
		g.p("func (*%s) is%s() {}", v, union)
	}
	g.p("")
	g.p("// %sFromTree builds the variant named by the envelope key of v. It", union)
	g.p("// reports false when v is not an envelope or names no %s variant.", union)
	g.p("func %sFromTree(v cty.Value) (%s, bool) {", union, union)
	g.p("\ttag, body, ok := envelope(v)")
	g.p("\tif !ok {")
	g.p("\t\treturn nil, false")
	g.p("\t}")
	g.p("\tswitch tag {")
	for _, v := range variants {
		g.p("\tcase Tag%s:", v)
		g.p("\t\treturn %sFromTree(body), true", v)
	}
	g.p("\t}")
	g.p("\treturn nil, false")
	g.p("}")
}

func (g *generator) arrayTree(name string) {
	g.p("")
	g.p("// Tree returns the canonical plain tree of a.")
	g.p("func (a %s) Tree() cty.Value {", name)
	g.p("\tvals := make([]cty.Value, len(a))")
	g.p("\tfor i, e := range a {")
	g.p("\t\tvals[i] = e.Tree()")
	g.p("\t}")
	g.p("\treturn tupleVal(vals)")
	g.p("}")
}

func (g *generator) fieldType(f *registry.Field) (string, error) {
	if f.Scalar != nil {
		return goType(f.Scalar), nil
	}
	ref, err := g.reg.Type(f.Ref)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", f.Name, err)
	}
	if ref.Kind == registry.KindArray || ref.Kind == registry.KindUnionArray {
		return exported(ref.Name), nil
	}
	return "*" + exported(ref.Name), nil
}

func (g *generator) treeExpr(f *registry.Field) string {
	if f.Scalar != nil {
		return valueExpr(f.Scalar, "x."+storage(f.Name))
	}
	ref, _ := g.reg.Type(f.Ref)
	if ref != nil && ref.Kind.Named() {
		return "x." + exported(f.Name) + "().Body()"
	}
	return "x." + exported(f.Name) + "().Tree()"
}

func goType(s *registry.Scalar) string {
	var base string
	switch s.Kind {
	case schema.ScalarInteger:
		base = "int"
	case schema.ScalarNumber:
		base = "float64"
	case schema.ScalarBool:
		base = "bool"
	default:
		base = "string"
	}
	if s.List {
		return "[]" + base
	}
	return base
}

// reader names the tree helper that reads a scalar; suffix is "Attr" for
// object members and "Value" for a bare value.
func reader(s *registry.Scalar, suffix string) string {
	var base string
	switch s.Kind {
	case schema.ScalarInteger:
		base = "int"
	case schema.ScalarNumber:
		base = "number"
	case schema.ScalarBool:
		base = "bool"
	default:
		base = "string"
	}
	if s.List {
		base += "s"
	}
	return base + suffix
}

func valueExpr(s *registry.Scalar, expr string) string {
	if s.List {
		return reader(s, "Val") + "(" + expr + ")"
	}
	switch s.Kind {
	case schema.ScalarInteger:
		return "cty.NumberIntVal(int64(" + expr + "))"
	case schema.ScalarNumber:
		return "cty.NumberFloatVal(" + expr + ")"
	case schema.ScalarBool:
		return "cty.BoolVal(" + expr + ")"
	default:
		return "cty.StringVal(" + expr + ")"
	}
}

func defaultExpr(s *registry.Scalar) string {
	if s.Family != "" && s.HasDefault {
		return exported(s.Family) + "Default"
	}
	return literal(s, s.ZeroValue())
}

// literal renders a known scalar as a Go literal of the scalar's kind.
func literal(s *registry.Scalar, v cty.Value) string {
	switch s.Kind {
	case schema.ScalarInteger:
		i, _ := v.AsBigFloat().Int64()
		return strconv.FormatInt(i, 10)
	case schema.ScalarNumber:
		f, _ := v.AsBigFloat().Float64()
		lit := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(lit, ".eE") {
			lit += ".0"
		}
		return lit
	case schema.ScalarBool:
		return strconv.FormatBool(v.True())
	default:
		return strconv.Quote(v.AsString())
	}
}

func domainVar(typeName, fieldName string, s *registry.Scalar) string {
	if s.Family != "" {
		return unexported(s.Family) + "Domain"
	}
	if typeName == "" {
		return unexported(fieldName) + "Domain"
	}
	return unexported(typeName) + exported(fieldName) + "Domain"
}

func domainLiteral(s *registry.Scalar) string {
	var parts []string
	switch s.Kind {
	case schema.ScalarInteger, schema.ScalarNumber:
		if s.HasMin {
			parts = append(parts, fmt.Sprintf("min: %d", s.Min), "hasMin: true")
		}
		if s.HasMax {
			parts = append(parts, fmt.Sprintf("max: %d", s.Max), "hasMax: true")
		}
	}
	if len(s.Enum) > 0 {
		values := make([]string, len(s.Enum))
		for i, e := range s.Enum {
			values[i] = literal(s, e)
		}
		elem := strings.TrimPrefix(goType(s), "[]")
		parts = append(parts, fmt.Sprintf("values: []%s{%s}", elem, strings.Join(values, ", ")))
	}

	kind := "stringDomain"
	switch s.Kind {
	case schema.ScalarInteger:
		kind = "intDomain"
	case schema.ScalarNumber:
		kind = "numberDomain"
	}
	return kind + "{" + strings.Join(parts, ", ") + "}"
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func unexported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	out := string(unicode.ToLower(r)) + name[size:]
	if token.IsKeyword(out) {
		out += "_"
	}
	return out
}

func storage(field string) string {
	return unexported(field)
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
