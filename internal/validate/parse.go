package validate

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"sigs.k8s.io/yaml"
)

// ParseJSON parses JSON text into a plain tree. Objects become cty objects
// and arrays become tuples; no schema is applied.
func ParseJSON(data []byte) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	return val, nil
}

// ParseYAML parses YAML text into a plain tree by way of its JSON form.
func ParseYAML(data []byte) (cty.Value, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	return ParseJSON(js)
}

// ValidateJSON parses and validates JSON text against the root type. A
// parse failure is returned as an error wrapping ErrMalformedInput; schema
// failures are reported in the Result.
func (v *Validator) ValidateJSON(ctx context.Context, data []byte) (*Result, error) {
	val, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return v.Validate(ctx, val), nil
}
