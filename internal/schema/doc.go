// Package schema defines the format-agnostic Schema Descriptor: the
// declarative description of the score's data shape that the registry
// compiles into record types and validators.
//
// The descriptor groups type families the same way the score model is
// written down: integer families with bounds and defaults, plain objects,
// named objects (tagged union members) and arrays, plus the single root
// object. Concrete loaders, such as the HCL one in hcl_adapter, translate a
// source format into this model.
package schema
