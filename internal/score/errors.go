package score

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOutOfDomain is wrapped by *DomainError.
var ErrOutOfDomain = errors.New("value outside domain")

// DomainError reports an assignment of a value outside a field's domain.
type DomainError struct {
	Field   string // e.g. pitch.step
	Value   any
	Allowed string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v is not allowed, expected %s", e.Field, e.Value, e.Allowed)
}

func (e *DomainError) Unwrap() error {
	return ErrOutOfDomain
}

type intDomain struct {
	min, max       int
	hasMin, hasMax bool
	values         []int
}

func (d intDomain) check(field string, v int) error {
	ok := (!d.hasMin || v >= d.min) && (!d.hasMax || v <= d.max)
	if ok && len(d.values) > 0 {
		ok = false
		for _, allowed := range d.values {
			if v == allowed {
				ok = true
				break
			}
		}
	}
	if ok {
		return nil
	}
	return &DomainError{Field: field, Value: v, Allowed: d.String()}
}

func (d intDomain) String() string {
	if len(d.values) > 0 {
		parts := make([]string, len(d.values))
		for i, v := range d.values {
			parts[i] = strconv.Itoa(v)
		}
		return "one of [" + strings.Join(parts, ", ") + "]"
	}
	return bounds(d.hasMin, strconv.Itoa(d.min), d.hasMax, strconv.Itoa(d.max))
}

type numberDomain struct {
	min, max       float64
	hasMin, hasMax bool
	values         []float64
}

func (d numberDomain) check(field string, v float64) error {
	ok := (!d.hasMin || v >= d.min) && (!d.hasMax || v <= d.max)
	if ok && len(d.values) > 0 {
		ok = false
		for _, allowed := range d.values {
			if v == allowed {
				ok = true
				break
			}
		}
	}
	if ok {
		return nil
	}
	return &DomainError{Field: field, Value: v, Allowed: d.String()}
}

func (d numberDomain) String() string {
	if len(d.values) > 0 {
		parts := make([]string, len(d.values))
		for i, v := range d.values {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return "one of [" + strings.Join(parts, ", ") + "]"
	}
	return bounds(d.hasMin, strconv.FormatFloat(d.min, 'g', -1, 64), d.hasMax, strconv.FormatFloat(d.max, 'g', -1, 64))
}

type stringDomain struct {
	values []string
}

func (d stringDomain) check(field string, v string) error {
	for _, allowed := range d.values {
		if v == allowed {
			return nil
		}
	}
	if len(d.values) == 0 {
		return nil
	}
	return &DomainError{Field: field, Value: strconv.Quote(v), Allowed: d.String()}
}

func (d stringDomain) String() string {
	parts := make([]string, len(d.values))
	for i, v := range d.values {
		parts[i] = strconv.Quote(v)
	}
	return "one of [" + strings.Join(parts, ", ") + "]"
}

func bounds(hasMin bool, lo string, hasMax bool, hi string) string {
	switch {
	case hasMin && hasMax:
		return "a value in [" + lo + ", " + hi + "]"
	case hasMin:
		return "a value >= " + lo
	case hasMax:
		return "a value <= " + hi
	}
	return "any value"
}
