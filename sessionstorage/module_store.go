package sessionstorage

import (
	"sync"

	"github.com/oshokin/xk6-session-storage/sessionstorage/store"
)

// testOpenStorageBarrier is a test hook invoked the moment a goroutine enters the
// named-storage creation path. It lets tests synchronize concurrent calls to
// OpenStorage without impacting production behavior (nil in non-test builds).
//
//nolint:gochecknoglobals // this is a test hook.
var (
	testOpenStorageBarrier   func()
	testOpenStorageBarrierMu sync.RWMutex
)

// getOrCreateStore returns the store selected by options.
// Returns (store, isNewlyCreated).
//
// Unnamed storages are always new and unsynchronized: they are only reachable
// from the VU runtime that opened them. Named storages are created once,
// wrapped in a SynchronizedStore, and shared by every VU.
func (rm *RootModule) getOrCreateStore(options Options) (store.Store, bool) {
	if !options.Shared() {
		return store.NewMemoryStore(), true
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if existing, ok := rm.named[options.Name]; ok {
		return existing, false
	}

	// Test hook: allows test code to synchronize concurrent OpenStorage calls.
	// Production code sees nil and skips this entirely.
	testOpenStorageBarrierMu.RLock()

	barrier := testOpenStorageBarrier

	testOpenStorageBarrierMu.RUnlock()

	if barrier != nil {
		barrier()
	}

	created := store.NewSynchronizedStore(store.NewMemoryStore())
	rm.named[options.Name] = created

	return created, true
}
