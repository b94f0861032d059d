package store

import "sync"

// SynchronizedStore guards another Store with a read-write mutex so it can be
// shared by several goroutines (for example k6 VUs using a named storage).
//
// Every call, batch calls included, holds the lock for its whole duration,
// so a batch is never interleaved with another operation. No guarantee spans
// more than one call.
type SynchronizedStore struct {
	mu    sync.RWMutex
	store Store
}

var _ Store = (*SynchronizedStore)(nil)

// NewSynchronizedStore wraps store. The wrapped store must not be used
// directly afterwards.
func NewSynchronizedStore(store Store) *SynchronizedStore {
	return &SynchronizedStore{store: store}
}

// Key implements Store.
func (s *SynchronizedStore) Key(n int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Key(n)
}

// GetItem implements Store.
func (s *SynchronizedStore) GetItem(key string) Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetItem(key)
}

// MultiGet implements Store.
func (s *SynchronizedStore) MultiGet(keys []string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.MultiGet(keys)
}

// GetAllItems implements Store.
func (s *SynchronizedStore) GetAllItems() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetAllItems()
}

// Length implements Store.
func (s *SynchronizedStore) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Length()
}

// SetItem implements Store.
func (s *SynchronizedStore) SetItem(key string, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.SetItem(key, value)
}

// MultiSet implements Store.
func (s *SynchronizedStore) MultiSet(pairs []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.MultiSet(pairs)
}

// MergeItem implements Store.
func (s *SynchronizedStore) MergeItem(key string, patch Value) (Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.MergeItem(key, patch)
}

// MultiMerge implements Store.
func (s *SynchronizedStore) MultiMerge(pairs []Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.MultiMerge(pairs)
}

// RemoveItem implements Store.
func (s *SynchronizedStore) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.RemoveItem(key)
}

// MultiRemove implements Store.
func (s *SynchronizedStore) MultiRemove(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.MultiRemove(keys)
}

// Clear implements Store.
func (s *SynchronizedStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Clear()
}

// GetAllKeys implements Store.
func (s *SynchronizedStore) GetAllKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetAllKeys()
}
