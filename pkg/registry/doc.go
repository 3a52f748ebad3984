// Package registry provides a generic, thread-safe store of named values
// that remembers registration order. The runtime keeps its plugins in one.
package registry
