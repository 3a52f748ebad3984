package registration_test

import (
	"github.com/arthur-debert/modshell/pkg/testutil"
)

func newFakeRuntime() *testutil.FakeRuntime {
	return testutil.NewFakeRuntime()
}
