package validate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaViolation is wrapped by *SchemaViolationError.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrMalformedInput is returned when input text cannot be parsed into a
	// tree at all.
	ErrMalformedInput = errors.New("malformed input")
)

// Code is a machine-readable validation failure code.
type Code string

const (
	CodeTypeMismatch   Code = "type_mismatch"
	CodeOutOfRange     Code = "out_of_range"
	CodeInvalidEnum    Code = "invalid_enum"
	CodeUnknownField   Code = "unknown_field"
	CodeRequiredField  Code = "required_field"
	CodeInvalidVariant Code = "invalid_variant"
	CodeTypeNotFound   Code = "type_not_found"
)

// ValidationError is one validation failure.
type ValidationError struct {
	Path    string // path of the failing member, e.g. parts[0].measures[1][0].note.pitch.step
	Code    Code
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// SchemaViolationError carries every failure of a rejected tree.
type SchemaViolationError struct {
	Errors []ValidationError
}

func (e *SchemaViolationError) Error() string {
	if len(e.Errors) == 1 {
		return "schema violation: " + e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = "\t* " + ve.Error()
	}
	return fmt.Sprintf("schema violation: %d errors occurred:\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}

func (e *SchemaViolationError) Unwrap() error {
	return ErrSchemaViolation
}
