package registration_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/registration"
	"github.com/arthur-debert/modshell/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteLoaderOf(fn registration.ModuleRegisterFunc) registration.RemoteLoader {
	return registration.RemoteLoaderFunc(func(context.Context, registration.RemoteDefinition) (registration.RemoteModule, error) {
		return registration.RemoteModule{Register: fn}, nil
	})
}

func TestAreModulesRegistered(t *testing.T) {
	tests := []struct {
		name     string
		local    types.RegistrationStatus
		remote   types.RegistrationStatus
		expected bool
	}{
		{"no modules registered", types.StatusNone, types.StatusNone, false},
		{"only local modules registered", types.StatusReady, types.StatusNone, true},
		{"only remote modules registered", types.StatusNone, types.StatusReady, true},
		{"local and remote registered", types.StatusReady, types.StatusReady, true},
		{"only local deferred registrations", types.StatusRegistered, types.StatusNone, true},
		{"only remote deferred registrations", types.StatusNone, types.StatusRegistered, true},
		{"both with deferred registrations", types.StatusRegistered, types.StatusRegistered, true},
		{"local deferred and remote ready", types.StatusRegistered, types.StatusReady, true},
		{"local ready and remote deferred", types.StatusReady, types.StatusRegistered, true},
		{"local still in progress", types.StatusInProgress, types.StatusReady, false},
		{"remote still in progress", types.StatusNone, types.StatusInProgress, false},
		{"local completing", types.StatusInCompletion, types.StatusReady, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, registration.AreModulesRegistered(tt.local, tt.remote))
		})
	}
}

func TestAreModulesReady(t *testing.T) {
	tests := []struct {
		name     string
		local    types.RegistrationStatus
		remote   types.RegistrationStatus
		expected bool
	}{
		{"no modules registered", types.StatusNone, types.StatusNone, false},
		{"only local ready", types.StatusReady, types.StatusNone, true},
		{"only remote ready", types.StatusNone, types.StatusReady, true},
		{"both ready", types.StatusReady, types.StatusReady, true},
		{"local owes completion", types.StatusRegistered, types.StatusReady, false},
		{"remote completing", types.StatusReady, types.StatusInCompletion, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, registration.AreModulesReady(tt.local, tt.remote))
		})
	}
}

func TestCoordinator_CompleteSkipsSourcesThatNeverStarted(t *testing.T) {
	var deferredCalls int32

	rt := newFakeRuntime()
	c := registration.NewCoordinator(nil)

	_, err := c.RegisterLocalModules(context.Background(), []registration.ModuleRegisterFunc{
		deferring(func(context.Context, any) error {
			atomic.AddInt32(&deferredCalls, 1)
			return nil
		}),
	}, rt, registration.RegisterModulesOptions{})
	require.NoError(t, err)

	assert.True(t, c.AreModulesRegistered())
	assert.False(t, c.AreModulesReady())

	errs, err := c.CompleteModuleRegistrations(context.Background(), rt, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, errs.Len())

	assert.Equal(t, int32(1), deferredCalls)
	assert.Equal(t, types.StatusReady, c.Local.RegistrationStatus())
	assert.Equal(t, types.StatusNone, c.Remote.RegistrationStatus())
	assert.True(t, c.AreModulesReady())
}

func TestCoordinator_CompletesBothSources(t *testing.T) {
	var localData, remoteData atomic.Value
	boom := errors.New(errors.ErrModuleComplete, "remote continuation failed")

	rt := newFakeRuntime()
	c := registration.NewCoordinator(remoteLoaderOf(deferring(func(_ context.Context, data any) error {
		remoteData.Store(data)
		return boom
	})))

	_, err := c.RegisterLocalModules(context.Background(), []registration.ModuleRegisterFunc{
		deferring(func(_ context.Context, data any) error {
			localData.Store(data)
			return nil
		}),
	}, rt, registration.RegisterModulesOptions{})
	require.NoError(t, err)

	_, err = c.RegisterRemoteModules(context.Background(), []registration.RemoteDefinition{{Name: "remote-a", URL: "file:///a.toml"}}, rt, registration.RegisterModulesOptions{})
	require.NoError(t, err)

	errs, err := c.CompleteModuleRegistrations(context.Background(), rt, "payload")
	require.NoError(t, err)

	assert.Empty(t, errs.Local)
	require.Len(t, errs.Remote, 1)
	assert.ErrorIs(t, errs.Remote[0], boom)
	assert.Equal(t, "remote-a", errs.Remote[0].Module)
	assert.Len(t, errs.All(), 1)

	assert.Equal(t, "payload", localData.Load())
	assert.Equal(t, "payload", remoteData.Load())
	assert.True(t, c.AreModulesReady())
}

func TestCoordinator_CompleteTwicePropagatesProtocolViolation(t *testing.T) {
	rt := newFakeRuntime()
	c := registration.NewCoordinator(remoteLoaderOf(deferring(func(context.Context, any) error { return nil })))

	_, err := c.RegisterLocalModules(context.Background(), []registration.ModuleRegisterFunc{
		deferring(func(context.Context, any) error { return nil }),
	}, rt, registration.RegisterModulesOptions{})
	require.NoError(t, err)
	_, err = c.RegisterRemoteModules(context.Background(), []registration.RemoteDefinition{{Name: "r"}}, rt, registration.RegisterModulesOptions{})
	require.NoError(t, err)

	_, err = c.CompleteModuleRegistrations(context.Background(), rt, nil)
	require.NoError(t, err)

	_, err = c.CompleteModuleRegistrations(context.Background(), rt, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProtocolViolation))
	assert.Contains(t, err.Error(), "[local]")
	assert.Contains(t, err.Error(), "[remote]")
}

func TestCoordinator_CompleteWithNothingRegistered(t *testing.T) {
	c := registration.NewCoordinator(nil)

	errs, err := c.CompleteModuleRegistrations(context.Background(), newFakeRuntime(), nil)
	require.NoError(t, err)
	assert.NotNil(t, errs.Local)
	assert.NotNil(t, errs.Remote)
	assert.False(t, c.AreModulesRegistered())
}

func TestDefault_IsProcessWide(t *testing.T) {
	assert.Same(t, registration.Default(), registration.Default())
}
