// Package validate checks plain value trees against a compiled registry.
//
// A tree is the JSON-compatible form of a document (objects, arrays,
// strings, numbers and bools) held as a cty.Value. Validation collects
// every failure with the path of the offending member instead of stopping
// at the first one; construction in package score never re-checks, so
// validation is the boundary where bad input is caught.
//
// The same checks can be exported as a JSON Schema (draft-04) document
// with Validator.Document.
package validate
