// Package output renders what a bootstrapped host assembled: the route
// tree, navigation menus, registration failures and a status report.
//
// Every renderer supports three formats. Term output is styled with
// lipgloss, pterm and glamour; text output carries the same content without
// styling; JSON output is meant for scripts. Auto picks term or text
// depending on whether the destination is a color capable terminal.
package output
