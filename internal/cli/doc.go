// Package cli translates command-line arguments into an app.Config and owns
// the mapping from failures to process exit codes.
package cli
