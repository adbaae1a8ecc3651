// Package app wires the musje pipeline together: it compiles the schema
// descriptor once, loads and validates a score, renders it and writes the
// requested output. It is independent of the command line that drives it.
package app
