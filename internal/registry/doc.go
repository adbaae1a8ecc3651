// Package registry compiles a schema.Descriptor into the set of concrete
// types the rest of the system works with.
//
// Compilation resolves every `<group>.<name>` reference, normalizes scalar
// domains (bounds, enumerations, defaults) and checks that the descriptor is
// self-consistent. The result is an explicit Registry value that is handed
// to the validator and the code generator, so there is no process-wide type
// namespace. A descriptor that references a type it never declares fails
// with ErrUnknownType; such a descriptor is a build-time defect, not bad
// input data.
package registry
