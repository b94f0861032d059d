package sessionstorage

import (
	"testing"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/require"
	"go.k6.io/k6/js/modulestest"
)

// newStorageRuntime opens a storage through rm and binds it to the global
// "storage" in a fresh runtime. A nil options value opens a private storage.
func newStorageRuntime(t *testing.T, rm *RootModule, options map[string]any) *modulestest.Runtime {
	t.Helper()

	runtime := modulestest.NewRuntime(t)
	moduleInstance, ok := rm.NewModuleInstance(runtime.VU).(*ModuleInstance)
	require.True(t, ok)

	opts := sobek.Undefined()
	if options != nil {
		opts = runtime.VU.Runtime().ToValue(options)
	}

	require.NoError(t, runtime.VU.Runtime().Set("storage", moduleInstance.OpenStorage(opts)))
	require.NoError(t, runtime.VU.Runtime().Set("openStorage", moduleInstance.OpenStorage))

	return runtime
}

// runScript evaluates script and fails the test on any exception.
func runScript(t *testing.T, runtime *modulestest.Runtime, script string) sobek.Value {
	t.Helper()

	value, err := runtime.VU.Runtime().RunString(script)
	require.NoError(t, err)

	return value
}

// runString evaluates script and returns its result as a Go string.
func runString(t *testing.T, runtime *modulestest.Runtime, script string) string {
	t.Helper()

	return runScript(t, runtime, script).String()
}

// thrownName evaluates call and returns "<name>|<instanceof TypeError>" of
// the exception it throws, or "none" when it does not throw.
func thrownName(t *testing.T, runtime *modulestest.Runtime, call string) string {
	t.Helper()

	return runString(t, runtime, `(() => {
		try {
			`+call+`;
		} catch (e) {
			return e.name + "|" + (e instanceof TypeError);
		}
		return "none";
	})()`)
}
