package score

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/validate"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Loader is the construction entry point: it turns input trees or their
// text into a Score, optionally validating first.
type Loader struct {
	validator *validate.Validator
}

// NewLoader creates a loader. v may be nil when validation is never
// requested.
func NewLoader(v *validate.Validator) *Loader {
	return &Loader{validator: v}
}

// Load constructs a Score from JSON text. A parse failure wraps
// validate.ErrMalformedInput.
func (l *Loader) Load(ctx context.Context, data []byte, check bool) (*Score, error) {
	val, err := validate.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return l.LoadTree(ctx, val, check)
}

// LoadYAML constructs a Score from YAML text.
func (l *Loader) LoadYAML(ctx context.Context, data []byte, check bool) (*Score, error) {
	val, err := validate.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return l.LoadTree(ctx, val, check)
}

// LoadTree constructs a Score from a plain tree. With check set, a tree that
// fails validation is rejected with a *validate.SchemaViolationError and
// nothing is constructed. Without it the tree is trusted: values outside
// their domains are kept and unknown members are ignored.
func (l *Loader) LoadTree(ctx context.Context, val cty.Value, check bool) (*Score, error) {
	logger := ctxlog.FromContext(ctx)

	if check {
		if l.validator == nil {
			return nil, errors.New("validation requested but the loader has no validator")
		}
		res := l.validator.Validate(ctx, val)
		if err := res.Err(); err != nil {
			logger.Debug("Rejected score tree.", "errors", len(res.Errors))
			return nil, err
		}
	}

	s := ScoreFromTree(val)
	logger.Debug("Constructed score.", "parts", len(s.Parts()), "validated", check)
	return s, nil
}

// Marshal encodes the canonical tree of a record as JSON.
func Marshal(r interface{ Tree() cty.Value }) ([]byte, error) {
	tree := r.Tree()
	data, err := ctyjson.Marshal(tree, tree.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	return data, nil
}

// MarshalJSON encodes the canonical tree of the score.
func (x *Score) MarshalJSON() ([]byte, error) {
	return Marshal(x)
}

// Stringify returns the canonical JSON of the score, indented with indent
// when it is not empty.
func (x *Score) Stringify(indent string) (string, error) {
	data, err := x.MarshalJSON()
	if err != nil {
		return "", err
	}
	if indent == "" {
		return string(data), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", indent); err != nil {
		return "", fmt.Errorf("failed to indent JSON: %w", err)
	}
	return out.String(), nil
}
