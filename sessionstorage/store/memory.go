package store

import "fmt"

// MemoryStore is the in-memory Store implementation.
//
// It is not safe for concurrent use; every call runs to completion on the
// caller's goroutine. Share a MemoryStore between goroutines only through
// NewSynchronizedStore.
type MemoryStore struct {
	entries *OrderedMap[Value]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: NewOrderedMap[Value](),
	}
}

// Key returns the key at position n in insertion order.
func (s *MemoryStore) Key(n int) (string, bool) {
	return s.entries.KeyAt(n)
}

// GetItem returns the value stored under key, or nil.
func (s *MemoryStore) GetItem(key string) Value {
	value, ok := s.entries.Get(key)
	if !ok {
		return nil
	}

	return value
}

// MultiGet looks up every key in order.
func (s *MemoryStore) MultiGet(keys []string) []Entry {
	result := make([]Entry, len(keys))

	for i, key := range keys {
		result[i] = Entry{Key: key, Value: s.GetItem(key)}
	}

	return result
}

// GetAllItems returns every entry in insertion order.
func (s *MemoryStore) GetAllItems() []Entry {
	result := make([]Entry, 0, s.entries.Len())

	s.entries.Range(func(key string, value Value) bool {
		result = append(result, Entry{Key: key, Value: value})

		return true
	})

	return result
}

// Length returns the number of stored keys.
func (s *MemoryStore) Length() int {
	return s.entries.Len()
}

// SetItem inserts or overwrites key.
func (s *MemoryStore) SetItem(key string, value Value) {
	s.entries.Set(key, orUndefined(value))
}

// MultiSet stores every pair with a present value, in order.
func (s *MemoryStore) MultiSet(pairs []Entry) {
	for _, pair := range pairs {
		if IsAbsent(pair.Value) {
			continue
		}

		s.entries.Set(pair.Key, pair.Value)
	}
}

// MergeItem deep-merges patch into the value under key.
func (s *MemoryStore) MergeItem(key string, patch Value) (Value, error) {
	if err := validatePatch(key, patch); err != nil {
		return nil, err
	}

	return s.merge(key, patch.(*Object)), nil
}

// MultiMerge validates every patch, then merges them in order.
func (s *MemoryStore) MultiMerge(pairs []Entry) ([]Entry, error) {
	for _, pair := range pairs {
		if err := validatePatch(pair.Key, pair.Value); err != nil {
			return nil, err
		}
	}

	results := make([]Entry, 0, len(pairs))

	for _, pair := range pairs {
		results = append(results, Entry{
			Key:   pair.Key,
			Value: s.merge(pair.Key, pair.Value.(*Object)),
		})
	}

	return results, nil
}

// RemoveItem deletes key if present.
func (s *MemoryStore) RemoveItem(key string) {
	s.entries.Delete(key)
}

// MultiRemove deletes every listed key.
func (s *MemoryStore) MultiRemove(keys []string) {
	for _, key := range keys {
		s.entries.Delete(key)
	}
}

// Clear removes every entry and reports how many there were.
func (s *MemoryStore) Clear() int {
	removed := s.entries.Len()
	s.entries.Clear()

	return removed
}

// GetAllKeys returns every key in insertion order.
func (s *MemoryStore) GetAllKeys() []string {
	return s.entries.Keys()
}

// merge applies an already validated patch. It returns nil, leaving the store
// untouched, when the existing value under key is a leaf.
func (s *MemoryStore) merge(key string, patch *Object) Value {
	current, ok := s.entries.Get(key)
	if !ok {
		s.entries.Set(key, patch)

		return patch
	}

	if !IsMergeable(current) {
		return nil
	}

	merged := DeepMerge(current.(*Object), patch)
	s.entries.Set(key, merged)

	return merged
}

// validatePatch rejects merge patches that are not objects.
func validatePatch(key string, patch Value) error {
	if IsMergeable(patch) {
		return nil
	}

	return fmt.Errorf("%w: patch for key %q must be an object, got %s", ErrInvalidArgument, key, kindName(patch))
}
