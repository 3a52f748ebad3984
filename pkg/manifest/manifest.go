package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/navigation"
	"github.com/arthur-debert/modshell/pkg/routes"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format of a manifest file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Manifest is the declarative description of a module
type Manifest struct {
	Name        string            `toml:"name" yaml:"name"`
	Description string            `toml:"description,omitempty" yaml:"description,omitempty"`
	Routes      []RouteEntry      `toml:"routes,omitempty" yaml:"routes,omitempty"`
	Navigation  []NavigationEntry `toml:"navigation,omitempty" yaml:"navigation,omitempty"`
	Deferred    DeferredSection   `toml:"deferred,omitempty" yaml:"deferred,omitempty"`

	// Source is the file the manifest was read from
	Source string `toml:"-" yaml:"-"`
}

// RouteEntry is a route plus the options it is registered with
type RouteEntry struct {
	routes.Route                `yaml:",inline"`
	routes.RegisterRouteOptions `yaml:",inline"`
}

// NavigationEntry is a navigation item plus the menu it belongs to
type NavigationEntry struct {
	navigation.NavigationItem `yaml:",inline"`
	Menu                      string `toml:"menu,omitempty" yaml:"menu,omitempty"`
}

// DeferredSection is registered during the complete phase. When every key
// of When matches the completion data, or When is empty, its routes and
// navigation items are registered.
type DeferredSection struct {
	When       map[string]string `toml:"when,omitempty" yaml:"when,omitempty"`
	Routes     []RouteEntry      `toml:"routes,omitempty" yaml:"routes,omitempty"`
	Navigation []NavigationEntry `toml:"navigation,omitempty" yaml:"navigation,omitempty"`
}

// IsEmpty reports whether there is nothing to register later
func (d DeferredSection) IsEmpty() bool {
	return len(d.Routes) == 0 && len(d.Navigation) == 0
}

// FormatFor picks the manifest format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrManifestParse, "unsupported manifest type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// Parse decodes and validates a manifest
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatTOML:
		decoder := gotoml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&m); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse TOML manifest")
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&m); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse YAML manifest")
		}
	default:
		return nil, errors.Newf(errors.ErrManifestParse, "unknown manifest format %q", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads the manifest at path
func Load(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	m, err := Parse(data, format)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	m.Source = path
	return m, nil
}

// Validate checks what the route and navigation registries would otherwise
// reject at registration time
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return errors.New(errors.ErrManifestInvalid, "manifest has no name")
	}

	if err := validateRoutes(m.Name, "routes", m.Routes); err != nil {
		return err
	}
	if err := validateNavigation(m.Name, "navigation", m.Navigation); err != nil {
		return err
	}
	if err := validateRoutes(m.Name, "deferred.routes", m.Deferred.Routes); err != nil {
		return err
	}
	return validateNavigation(m.Name, "deferred.navigation", m.Deferred.Navigation)
}

func validateRoutes(module, section string, entries []RouteEntry) error {
	for i, entry := range entries {
		opts := entry.RegisterRouteOptions
		if opts.Hoist && (opts.ParentPath != "" || opts.ParentName != "") {
			return invalid(module, section, i, "hoist cannot be combined with parent_path or parent_name")
		}
		if opts.ParentPath != "" && opts.ParentName != "" {
			return invalid(module, section, i, "parent_path and parent_name are mutually exclusive")
		}
		if entry.Path == "" && entry.Name == "" && !entry.Index {
			return invalid(module, section, i, "a route needs a path, a name or index = true")
		}
		switch entry.Visibility {
		case "", routes.VisibilityPublic, routes.VisibilityProtected:
		default:
			return invalid(module, section, i, "visibility must be public or protected")
		}
	}
	return nil
}

func validateNavigation(module, section string, entries []NavigationEntry) error {
	for i, entry := range entries {
		if entry.Label == "" {
			return invalid(module, section, i, "a navigation item needs a label")
		}
	}
	return nil
}

func invalid(module, section string, index int, reason string) error {
	return errors.Newf(errors.ErrManifestInvalid, "module %q: %s[%d]: %s", module, section, index, reason).
		WithDetail("module", module).
		WithDetail("section", section).
		WithDetail("index", index)
}
