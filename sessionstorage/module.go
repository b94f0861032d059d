package sessionstorage

import (
	"io"
	"sync"

	"github.com/grafana/sobek"
	"github.com/sirupsen/logrus"
	"go.k6.io/k6/js/modules"

	"github.com/oshokin/xk6-session-storage/sessionstorage/store"
)

type (
	// RootModule is a module singleton created once per test process.
	// It owns the named storages shared by all VUs.
	RootModule struct {
		// named holds the storages created through openStorage({ name }).
		named map[string]store.Store

		// mu protects named.
		mu sync.Mutex
	}

	// ModuleInstance is created per VU.
	// It holds the per-VU JS bindings and a pointer
	// to the RootModule to reach the named storages.
	ModuleInstance struct {
		vu modules.VU
		rm *RootModule
	}
)

// Compile-time interface assertions.
var (
	_ modules.Instance = new(ModuleInstance)
	_ modules.Module   = new(RootModule)
)

// New returns a pointer to a new RootModule instance.
func New() *RootModule {
	return &RootModule{
		named: make(map[string]store.Store),
	}
}

// NewModuleInstance implements modules.Module.
func (rm *RootModule) NewModuleInstance(vu modules.VU) modules.Instance {
	return &ModuleInstance{
		vu: vu,
		rm: rm,
	}
}

// Exports implements modules.Instance and exposes
// the JavaScript API surface for this module.
func (mi *ModuleInstance) Exports() modules.Exports {
	return modules.Exports{
		Named: map[string]any{
			"openStorage": mi.OpenStorage,
		},
	}
}

// OpenStorage parses user options and returns a Storage object.
//
// Without a name the storage is new and private to the returned object.
// With a name, the first call creates the storage and later calls, from any
// VU, receive the same one.
func (mi *ModuleInstance) OpenStorage(opts sobek.Value) *sobek.Object {
	rt := mi.vu.Runtime()

	options, err := NewOptionsFrom(mi.vu, opts)
	if err != nil {
		throwError(rt, err)

		return nil
	}

	backingStore, isNewlyCreated := mi.rm.getOrCreateStore(options)
	logger := vuLogger(mi.vu)

	logger.WithFields(logrus.Fields{
		"name":    options.Name,
		"shared":  options.Shared(),
		"created": isNewlyCreated,
	}).Debug("session storage opened")

	return NewStorage(mi.vu, backingStore, options, logger).Object()
}

// vuLogger returns the VU logger: the iteration logger when a VU state
// exists, the init-context logger otherwise.
func vuLogger(vu modules.VU) logrus.FieldLogger {
	if state := vu.State(); state != nil && state.Logger != nil {
		return state.Logger
	}

	if env := vu.InitEnv(); env != nil && env.TestPreInitState != nil && env.Logger != nil {
		return env.Logger
	}

	return discardLogger()
}

// discardLogger is used when the VU exposes no logger (e.g. bare test runtimes).
func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}
