package manifest

import (
	"context"
	"testing"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/registration"
	"github.com/arthur-debert/modshell/pkg/routes"
	"github.com/arthur-debert/modshell/pkg/runtime"
	"github.com/arthur-debert/modshell/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutTOML = `
name = "shell"

[[routes]]
name = "layout"
hoist = true

  [[routes.children]]
  name = "__managed-routes-outlet__"
`

func mustParse(t *testing.T, data string) *Manifest {
	t.Helper()
	m, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)
	return m
}

func TestEntry_RegistersRoutesAndNavigation(t *testing.T) {
	rt := runtime.New()
	billing := mustParse(t, billingTOML)
	shell := mustParse(t, layoutTOML)

	// billing first: its routes wait for the layout
	reg, err := billing.Entry()(context.Background(), rt, nil)
	require.NoError(t, err)
	assert.True(t, reg.IsDeferred())
	assert.Equal(t, []string{"/billing", "layout"}, rt.PendingRouteKeys())

	reg, err = shell.Entry()(context.Background(), rt, nil)
	require.NoError(t, err)
	assert.False(t, reg.IsDeferred())
	assert.Empty(t, rt.PendingRoutes())

	billingRoute, ok := rt.FindRoute("/billing")
	require.True(t, ok)
	assert.Len(t, billingRoute.Children, 3)

	assert.Len(t, rt.GetNavigationItems(""), 1)
	assert.Len(t, rt.GetNavigationItems("billing"), 1)
}

func TestEntry_DeferredSectionHonorsCompletionData(t *testing.T) {
	tests := []struct {
		name      string
		data      any
		wantItems int
	}{
		{"matching data", map[string]string{"reports": "on"}, 2},
		{"non matching data", map[string]string{"reports": "off"}, 1},
		{"no data", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := runtime.New()
			reg := registration.NewLocalModuleRegistry()

			errs, err := reg.RegisterNamedModules(context.Background(), []registration.LocalModule{
				mustParse(t, billingTOML).LocalModule(),
			}, rt, registration.RegisterModulesOptions{})
			require.NoError(t, err)
			require.Empty(t, errs)

			errs, err = reg.CompleteModuleRegistrations(context.Background(), rt, tt.data)
			require.NoError(t, err)
			require.Empty(t, errs)

			assert.Len(t, rt.GetNavigationItems("billing"), tt.wantItems)
		})
	}
}

func TestEntry_RouteErrorsFailTheModule(t *testing.T) {
	rt := runtime.New()
	_, err := rt.RegisterRoute(routes.Route{Path: "/billing"}, routes.RegisterRouteOptions{Hoist: true})
	require.NoError(t, err)

	m := mustParse(t, "name = \"dup\"\n[[routes]]\npath = \"/billing/\"\nhoist = true")
	_, err = m.Entry()(context.Background(), rt, nil)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrModuleRegister))
	assert.ErrorIs(t, err, errors.New(errors.ErrDuplicateRouteKey, ""))
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "remotes/billing.toml", billingTOML)

	loader := FileLoader{BaseDir: dir}

	tests := []struct {
		name string
		url  string
	}{
		{"relative file url", "file://remotes/billing.toml"},
		{"absolute file url", "file://" + path},
		{"plain relative path", "remotes/billing.toml"},
		{"plain absolute path", path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, err := loader.Load(context.Background(), registration.RemoteDefinition{Name: "billing", URL: tt.url})
			require.NoError(t, err)
			require.NotNil(t, module.Register)
		})
	}

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := loader.Load(context.Background(), registration.RemoteDefinition{Name: "x", URL: "https://cdn.example.com/x.toml"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteLoad))
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := loader.Load(context.Background(), registration.RemoteDefinition{Name: "x"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteLoad))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(context.Background(), registration.RemoteDefinition{Name: "x", URL: "file://remotes/none.toml"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.Load(ctx, registration.RemoteDefinition{Name: "billing", URL: path})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
