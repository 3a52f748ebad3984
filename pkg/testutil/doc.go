// Package testutil provides helpers shared by modshell tests: file
// fixtures, an isolated configuration and state environment, and a
// recording runtime for exercising modules without a full host.
package testutil
