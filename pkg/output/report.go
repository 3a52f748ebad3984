package output

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modshell/pkg/host"
	"github.com/arthur-debert/modshell/pkg/registration"
	"github.com/arthur-debert/modshell/pkg/routes"
	"github.com/arthur-debert/modshell/pkg/types"
	"github.com/charmbracelet/glamour"
)

// StatusReport summarizes a bootstrapped runtime
type StatusReport struct {
	RuntimeID  string                   `json:"runtimeId"`
	Local      types.RegistrationStatus `json:"local"`
	Remote     types.RegistrationStatus `json:"remote"`
	Registered bool                     `json:"registered"`
	Ready      bool                     `json:"ready"`
	Routes     int                      `json:"routes"`
	Menus      map[string]int           `json:"menus"`
	Pending    []string                 `json:"pending"`
	Errors     []ErrorView              `json:"errors"`
}

// NewStatusReport builds a report from a bootstrap result
func NewStatusReport(result *host.Result) *StatusReport {
	report := &StatusReport{
		Local:   types.StatusNone,
		Remote:  types.StatusNone,
		Menus:   map[string]int{},
		Pending: []string{},
		Errors:  []ErrorView{},
	}
	if result == nil {
		return report
	}

	if c := result.Coordinator; c != nil {
		report.Local = c.Local.RegistrationStatus()
		report.Remote = c.Remote.RegistrationStatus()
		report.Registered = c.AreModulesRegistered()
		report.Ready = c.AreModulesReady()
	}

	if rt := result.Runtime; rt != nil {
		report.RuntimeID = rt.ID()
		routes.Walk(rt.Routes(), func(routes.Route, int) bool {
			report.Routes++
			return true
		})
		for _, menu := range rt.Menus() {
			report.Menus[menu] = len(rt.GetNavigationItems(menu))
		}
		report.Pending = append(report.Pending, rt.PendingRouteKeys()...)
	}

	report.Errors = NewErrorViews(result.Errors.All())
	return report
}

// Markdown renders the report as a markdown document
func (s *StatusReport) Markdown() string {
	var b strings.Builder

	b.WriteString("# Module registration\n\n")
	if s.RuntimeID != "" {
		fmt.Fprintf(&b, "Runtime `%s`\n\n", s.RuntimeID)
	}

	b.WriteString("| Source | Status |\n|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s |\n", registration.LocalSource, s.Local)
	fmt.Fprintf(&b, "| %s | %s |\n\n", registration.RemoteSource, s.Remote)

	fmt.Fprintf(&b, "- Registered: %s\n", yesNo(s.Registered))
	fmt.Fprintf(&b, "- Ready: %s\n", yesNo(s.Ready))
	fmt.Fprintf(&b, "- Routes: %d\n", s.Routes)

	if len(s.Menus) > 0 {
		b.WriteString("\n## Menus\n\n")
		for _, menu := range sortedKeys(s.Menus) {
			fmt.Fprintf(&b, "- %s: %d\n", menu, s.Menus[menu])
		}
	}

	if len(s.Pending) > 0 {
		b.WriteString("\n## Waiting for a parent\n\n")
		for _, key := range s.Pending {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
	}

	if len(s.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "- %s: %s\n", e.subject(), e.Message)
		}
	}

	return b.String()
}

// RenderStatus writes the report. Terminals get the markdown rendered by
// glamour, plain text gets the raw markdown.
func (r *Renderer) RenderStatus(report *StatusReport) error {
	if r.format == FormatJSON {
		return r.encode(report)
	}

	content := report.Markdown()
	if r.styled() {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(r.width),
		)
		if err == nil {
			if rendered, err := renderer.Render(content); err == nil {
				content = rendered
			}
		}
	}

	_, err := fmt.Fprint(r.w, content)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
