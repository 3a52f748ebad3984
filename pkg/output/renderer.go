package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/navigation"
	"github.com/arthur-debert/modshell/pkg/output/styles"
	"github.com/arthur-debert/modshell/pkg/registration"
	"github.com/arthur-debert/modshell/pkg/routes"
	"github.com/pterm/pterm"
)

// Renderer writes views to a destination in one format
type Renderer struct {
	w      io.Writer
	format Format
	width  int
}

// NewRenderer creates a renderer. FormatAuto is resolved against w.
func NewRenderer(format Format, w io.Writer) *Renderer {
	return &Renderer{
		w:      w,
		format: Resolve(format, w),
		width:  80,
	}
}

// Format returns the resolved format
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) styled() bool {
	return r.format == FormatTerm
}

func (r *Renderer) style(name string, s string) string {
	if !r.styled() {
		return s
	}
	return styles.GetStyle(name).Render(s)
}

func (r *Renderer) encode(v interface{}) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// RoutesView is the route tree plus the routes still waiting for a parent
type RoutesView struct {
	Routes  []routes.Route            `json:"routes"`
	Pending map[string][]routes.Route `json:"pending"`
}

// RenderRoutes writes the route tree followed by the pending routes, if any
func (r *Renderer) RenderRoutes(view RoutesView) error {
	if view.Routes == nil {
		view.Routes = []routes.Route{}
	}
	if view.Pending == nil {
		view.Pending = map[string][]routes.Route{}
	}

	if r.format == FormatJSON {
		return r.encode(view)
	}

	if len(view.Routes) == 0 {
		if _, err := fmt.Fprintln(r.w, r.style("Muted", MsgNoRoutes)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(r.w, r.routeTree(view.Routes).String()); err != nil {
			return err
		}
	}

	keys := sortedKeys(view.Pending)
	if len(keys) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(r.w, "\n%s\n", r.style("Pending", MsgPendingRoutesTitle)); err != nil {
		return err
	}
	for _, key := range keys {
		labels := make([]string, 0, len(view.Pending[key]))
		for _, route := range view.Pending[key] {
			labels = append(labels, r.routeLabel(route))
		}
		if _, err := fmt.Fprintf(r.w, MsgPendingRouteLine, r.style("Pending", key), strings.Join(labels, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// MenuView is a navigation menu with its items
type MenuView struct {
	Menu  string                      `json:"menu"`
	Items []navigation.NavigationItem `json:"items"`
}

// RenderNavigation writes each menu with its items sorted by priority
func (r *Renderer) RenderNavigation(menus []MenuView) error {
	sorted := make([]MenuView, len(menus))
	for i, menu := range menus {
		sorted[i] = MenuView{Menu: menu.Menu, Items: navigation.SortByPriority(menu.Items)}
	}

	if r.format == FormatJSON {
		return r.encode(sorted)
	}

	if len(sorted) == 0 {
		_, err := fmt.Fprintln(r.w, r.style("Muted", MsgNoNavigation))
		return err
	}

	for i, menu := range sorted {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(r.w, r.navigationTree(menu).String()); err != nil {
			return err
		}
	}
	return nil
}

// ErrorView is the serializable form of a registration failure
type ErrorView struct {
	Source  string `json:"source"`
	Ordinal string `json:"ordinal"`
	Module  string `json:"module,omitempty"`
	URL     string `json:"url,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorViews converts registration failures for rendering
func NewErrorViews(errs []registration.RegistrationError) []ErrorView {
	views := make([]ErrorView, 0, len(errs))
	for _, e := range errs {
		message := ""
		if e.Err != nil {
			message = e.Err.Error()
		}
		views = append(views, ErrorView{
			Source:  e.Source,
			Ordinal: e.Ordinal,
			Module:  e.Module,
			URL:     e.URL,
			Code:    string(errors.GetErrorCode(e.Err)),
			Message: message,
		})
	}
	return views
}

func (v ErrorView) subject() string {
	subject := fmt.Sprintf("[%s] %s", v.Source, v.Ordinal)
	if v.Module != "" {
		subject += " " + v.Module
	}
	return subject
}

// RenderErrors writes one line per registration failure
func (r *Renderer) RenderErrors(errs []registration.RegistrationError) error {
	views := NewErrorViews(errs)

	switch r.format {
	case FormatJSON:
		return r.encode(views)
	case FormatTerm:
		printer := pterm.Error.WithWriter(r.w)
		for _, v := range views {
			printer.Printfln(MsgErrorLine, v.subject(), v.Message)
		}
		return nil
	default:
		for _, v := range views {
			if _, err := fmt.Fprintf(r.w, "error: "+MsgErrorLine+"\n", v.subject(), v.Message); err != nil {
				return err
			}
		}
		return nil
	}
}

// RenderWarning writes a single warning
func (r *Renderer) RenderWarning(msg string) error {
	switch r.format {
	case FormatJSON:
		return r.encode(map[string]string{"warning": msg})
	case FormatTerm:
		pterm.Warning.WithWriter(r.w).Println(msg)
		return nil
	default:
		_, err := fmt.Fprintf(r.w, "warning: %s\n", msg)
		return err
	}
}

// RenderMessage writes a plain message
func (r *Renderer) RenderMessage(msg string) error {
	if r.format == FormatJSON {
		return r.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// RenderValue writes v as JSON in JSON mode and with %v otherwise
func (r *Renderer) RenderValue(v interface{}) error {
	if r.format == FormatJSON {
		return r.encode(v)
	}
	_, err := fmt.Fprintln(r.w, v)
	return err
}
