package store

// Store defines the operations of a session key-value store.
//
// General notes:
//
//   - Keys are arbitrary strings, the empty string included.
//   - Iteration order (Key, GetAllKeys, GetAllItems) is insertion order.
//     Overwriting a key keeps its position; a new key is appended.
//   - A nil Value in a result means "absent". It is a normal outcome,
//     not an error.
//
// Error semantics:
//
//   - Only merge operations return errors, and only ErrInvalidArgument for a
//     patch that is not an object. A failing call performs no mutation.
type Store interface {
	// Key returns the key at 0-based position n, or false when n is negative
	// or not smaller than Length().
	Key(n int) (string, bool)

	// GetItem returns the value stored under key, or nil when absent.
	GetItem(key string) Value

	// MultiGet returns one entry per requested key, in request order.
	// Duplicate keys are looked up repeatedly; missing keys carry a nil Value.
	MultiGet(keys []string) []Entry

	// GetAllItems returns a snapshot of every entry in insertion order.
	GetAllItems() []Entry

	// Length returns the number of distinct keys currently stored.
	Length() int

	// SetItem inserts or overwrites key. A nil value is stored as Undefined.
	SetItem(key string, value Value)

	// MultiSet applies pairs in order; later pairs overwrite earlier ones.
	// Pairs whose value is absent or Undefined are skipped.
	MultiSet(pairs []Entry)

	// MergeItem deep-merges patch into the object stored under key.
	//
	// Semantics:
	//   - patch must be an object, otherwise ErrInvalidArgument is returned;
	//   - absent key: patch is stored as-is and returned;
	//   - stored object: DeepMerge(stored, patch) is stored and returned;
	//   - stored leaf: nothing changes and nil is returned.
	MergeItem(key string, patch Value) (Value, error)

	// MultiMerge runs MergeItem for every pair in order and collects the
	// per-key results. Every patch, absent or Undefined ones included, must be
	// an object. Callers that accept sparse input drop those pairs first.
	// Every patch is validated before any merge runs, so an invalid patch
	// aborts the whole batch without side effects. A nil result for one key
	// does not stop the remaining keys.
	MultiMerge(pairs []Entry) ([]Entry, error)

	// RemoveItem deletes key. Removing a missing key is a no-op.
	RemoveItem(key string)

	// MultiRemove deletes every listed key, ignoring missing ones.
	MultiRemove(keys []string)

	// Clear removes every entry and returns how many were removed.
	Clear() int

	// GetAllKeys returns every key in insertion order.
	GetAllKeys() []string
}

// Entry is a single key/value pair used by batch operations and snapshots.
type Entry struct {
	// Key is the string identifier for the value.
	Key string
	// Value is the stored or requested value; nil means absent.
	Value Value
}
