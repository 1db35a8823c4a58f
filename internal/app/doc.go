// Package app contains the core application logic. It wires the parser,
// generator and updater into the per-directory run loop, resolves module
// metadata from its various sources, and owns logging; the packages it calls
// into only return results and errors.
package app
