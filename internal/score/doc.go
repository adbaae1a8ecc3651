// Package score holds the Score Graph: the record types compiled from the
// schema descriptor (zz_generated.go) and their hand-written companions
// (derived fields, notation text, glyph identity keys and the Loader).
//
// Nested object and array fields are created on first read. A freshly
// constructed Score shared between goroutines should have Tree called once
// before it is handed out, so that every field is materialized.
package score

//go:generate go run ../../cmd/musjegen -package score -out zz_generated.go
