// Package hcl_adapter provides the concrete HCL implementation of the
// schema.Loader interface. It is responsible for parsing descriptor files,
// decoding their blocks, and translating them into the format-agnostic
// schema.Descriptor.
package hcl_adapter
