// Package paths resolves the directories modshell reads configuration from
// and writes state to. It follows the XDG Base Directory specification and
// lets environment variables override each directory.
package paths
