// Package types defines the types shared by the registries and the runtime:
// the registration lifecycle status and the runtime handle modules receive.
package types
