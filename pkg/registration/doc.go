// Package registration drives modules through a two-phase registration
// protocol.
//
// In the register phase every module entry is invoked concurrently with the
// shared runtime. An entry may return a deferred registration, which is run
// in the complete phase once every module of every source had a chance to
// register (for example to aggregate navigation items contributed by other
// modules).
//
// A failing module never prevents its siblings from registering: failures,
// including panics, are logged and returned as RegistrationError records.
// Only protocol violations (calling a phase out of order or twice) are
// returned as errors.
//
// Local and remote modules are tracked by separate registries, each with its
// own RegistrationStatus. The Coordinator merges them.
package registration
