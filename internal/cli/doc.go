// Package cli parses the musje command line into an app.Config and maps
// usage problems to exit codes.
package cli
