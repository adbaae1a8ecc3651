package score

import (
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// attr returns the member name of an object-like tree. Null members count
// as absent.
func attr(v cty.Value, name string) (cty.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return cty.NilVal, false
	}
	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(name) {
			return cty.NilVal, false
		}
		a := v.GetAttr(name)
		return a, !a.IsNull() && a.IsKnown()
	case ty.IsMapType():
		key := cty.StringVal(name)
		if !v.HasIndex(key).True() {
			return cty.NilVal, false
		}
		a := v.Index(key)
		return a, !a.IsNull() && a.IsKnown()
	}
	return cty.NilVal, false
}

// elements returns the elements of an array-like tree, or nil.
func elements(v cty.Value) []cty.Value {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil
	}
	return v.AsValueSlice()
}

// envelope splits a one-member object into its tag and body.
func envelope(v cty.Value) (string, cty.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return "", cty.NilVal, false
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return "", cty.NilVal, false
	}
	m := v.AsValueMap()
	if len(m) != 1 {
		return "", cty.NilVal, false
	}
	for tag, body := range m {
		return tag, body, true
	}
	return "", cty.NilVal, false
}

func tupleVal(vals []cty.Value) cty.Value {
	if len(vals) == 0 {
		return cty.EmptyTupleVal
	}
	return cty.TupleVal(vals)
}

// scalar converts a present value to ty, reporting false when it is null or
// not convertible.
func scalar(v cty.Value, ty cty.Type) (cty.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return cty.NilVal, false
	}
	c, err := convert.Convert(v, ty)
	if err != nil || c.IsNull() {
		return cty.NilVal, false
	}
	return c, true
}

func intValue(v cty.Value, def int) int {
	c, ok := scalar(v, cty.Number)
	if !ok {
		return def
	}
	bf := c.AsBigFloat()
	if !bf.IsInt() {
		return def
	}
	i, acc := bf.Int64()
	if acc != big.Exact {
		return def
	}
	return int(i)
}

func numberValue(v cty.Value, def float64) float64 {
	c, ok := scalar(v, cty.Number)
	if !ok {
		return def
	}
	f, _ := c.AsBigFloat().Float64()
	return f
}

func stringValue(v cty.Value, def string) string {
	c, ok := scalar(v, cty.String)
	if !ok {
		return def
	}
	return c.AsString()
}

func boolValue(v cty.Value, def bool) bool {
	c, ok := scalar(v, cty.Bool)
	if !ok {
		return def
	}
	return c.True()
}

func intAttr(v cty.Value, name string, def int) int {
	a, ok := attr(v, name)
	if !ok {
		return def
	}
	return intValue(a, def)
}

func numberAttr(v cty.Value, name string, def float64) float64 {
	a, ok := attr(v, name)
	if !ok {
		return def
	}
	return numberValue(a, def)
}

func stringAttr(v cty.Value, name string, def string) string {
	a, ok := attr(v, name)
	if !ok {
		return def
	}
	return stringValue(a, def)
}

func boolAttr(v cty.Value, name string, def bool) bool {
	a, ok := attr(v, name)
	if !ok {
		return def
	}
	return boolValue(a, def)
}

// Lists keep the elements that convert and drop the rest. A member that is
// not an array leaves def in place.

func intsValue(v cty.Value, def []int) []int {
	elems := elements(v)
	if elems == nil && !isArray(v) {
		return def
	}
	out := make([]int, 0, len(elems))
	for _, e := range elems {
		if c, ok := scalar(e, cty.Number); ok && c.AsBigFloat().IsInt() {
			i, _ := c.AsBigFloat().Int64()
			out = append(out, int(i))
		}
	}
	return out
}

func numbersValue(v cty.Value, def []float64) []float64 {
	elems := elements(v)
	if elems == nil && !isArray(v) {
		return def
	}
	out := make([]float64, 0, len(elems))
	for _, e := range elems {
		if c, ok := scalar(e, cty.Number); ok {
			f, _ := c.AsBigFloat().Float64()
			out = append(out, f)
		}
	}
	return out
}

func stringsValue(v cty.Value, def []string) []string {
	elems := elements(v)
	if elems == nil && !isArray(v) {
		return def
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if c, ok := scalar(e, cty.String); ok {
			out = append(out, c.AsString())
		}
	}
	return out
}

func boolsValue(v cty.Value, def []bool) []bool {
	elems := elements(v)
	if elems == nil && !isArray(v) {
		return def
	}
	out := make([]bool, 0, len(elems))
	for _, e := range elems {
		if c, ok := scalar(e, cty.Bool); ok {
			out = append(out, c.True())
		}
	}
	return out
}

func intsAttr(v cty.Value, name string, def []int) []int {
	if a, ok := attr(v, name); ok {
		return intsValue(a, def)
	}
	return def
}

func numbersAttr(v cty.Value, name string, def []float64) []float64 {
	if a, ok := attr(v, name); ok {
		return numbersValue(a, def)
	}
	return def
}

func stringsAttr(v cty.Value, name string, def []string) []string {
	if a, ok := attr(v, name); ok {
		return stringsValue(a, def)
	}
	return def
}

func boolsAttr(v cty.Value, name string, def []bool) []bool {
	if a, ok := attr(v, name); ok {
		return boolsValue(a, def)
	}
	return def
}

func isArray(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	return ty.IsTupleType() || ty.IsListType() || ty.IsSetType()
}

func intsVal(vs []int) cty.Value {
	vals := make([]cty.Value, len(vs))
	for i, x := range vs {
		vals[i] = cty.NumberIntVal(int64(x))
	}
	return tupleVal(vals)
}

func numbersVal(vs []float64) cty.Value {
	vals := make([]cty.Value, len(vs))
	for i, x := range vs {
		vals[i] = cty.NumberFloatVal(x)
	}
	return tupleVal(vals)
}

func stringsVal(vs []string) cty.Value {
	vals := make([]cty.Value, len(vs))
	for i, x := range vs {
		vals[i] = cty.StringVal(x)
	}
	return tupleVal(vals)
}

func boolsVal(vs []bool) cty.Value {
	vals := make([]cty.Value, len(vs))
	for i, x := range vs {
		vals[i] = cty.BoolVal(x)
	}
	return tupleVal(vals)
}
