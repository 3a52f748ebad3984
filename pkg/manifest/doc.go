// Package manifest describes a module declaratively: the routes and
// navigation items it registers, and an optional deferred section that is
// registered during the complete phase once the host's completion data is
// known.
//
// Manifests are TOML or YAML files:
//
//	name = "billing"
//
//	[[routes]]
//	path = "/billing"
//	parent_name = "layout"
//
//	[[navigation]]
//	label = "Billing"
//	to = "/billing"
//	priority = 10
//
//	[deferred.when]
//	reports = "on"
//
//	[[deferred.navigation]]
//	label = "Reports"
//	to = "/billing/reports"
//	menu = "billing"
package manifest
