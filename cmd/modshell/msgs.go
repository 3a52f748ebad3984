package modshell

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Assemble an application shell from independent modules"
	MsgRoutesShort     = "Show the assembled route tree"
	MsgNavShort        = "Show navigation menus"
	MsgStatusShort     = "Report how module registration went"
	MsgConfigShort     = "Show the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "List help topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgVersionFormat = "modshell version %s\n  commit: %s\n  built:  %s\n"
	MsgModuleFailed  = "%d module registration(s) failed"
	MsgEmptyMenu     = "menu %q has no items"

	// Error messages
	MsgErrInvalidSet = "invalid --set value %q, expected key=value"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Configuration file (default: ./modshell.toml, then the user config dir)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagSet      = "Override a configuration value, e.g. --set registration.max_concurrency=4"
	MsgFlagPending  = "Only show routes waiting for a parent"
	MsgFlagStrict   = "Exit with an error when any module failed"
	MsgFlagDefaults = "Print the commented default configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/routes-long.txt
	msgRoutesLongRaw string
	MsgRoutesLong    = strings.TrimSpace(msgRoutesLongRaw)

	//go:embed msgs/routes-example.txt
	msgRoutesExampleRaw string
	MsgRoutesExample    = strings.TrimRight(msgRoutesExampleRaw, "\n")

	//go:embed msgs/nav-long.txt
	msgNavLongRaw string
	MsgNavLong    = strings.TrimSpace(msgNavLongRaw)

	//go:embed msgs/nav-example.txt
	msgNavExampleRaw string
	MsgNavExample    = strings.TrimRight(msgNavExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/config-example.txt
	msgConfigExampleRaw string
	MsgConfigExample    = strings.TrimRight(msgConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
