package output

const (
	MsgNoRoutes           = "No routes registered."
	MsgNoNavigation       = "No navigation items registered."
	MsgPendingRoutesTitle = "Waiting for a parent:"
	MsgPendingRouteLine   = "  %s <- %s\n"
	MsgErrorLine          = "%s: %s"
	MsgIndexRoute         = "(index)"
	MsgUnnamedRoute       = "(unnamed)"
)
