package store

import "maps"

// OrderedMap is a string-keyed map that remembers insertion order.
//
// Overwriting an existing key keeps its position; a new key is appended at
// the end. KeyAt answers positional lookups in O(log n) through an OSTree
// indexed by insertion sequence numbers.
//
// The zero value is not usable; create instances with NewOrderedMap.
type OrderedMap[V any] struct {
	slots   map[string]orderedSlot[V]
	index   *OSTree
	nextSeq uint64
}

// orderedSlot pairs a value with the sequence number that fixes its position.
type orderedSlot[V any] struct {
	seq   uint64
	value V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		slots: make(map[string]orderedSlot[V]),
		index: NewOSTree(),
	}
}

// Len returns the number of keys present.
func (m *OrderedMap[V]) Len() int {
	return len(m.slots)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	slot, ok := m.slots[key]

	return slot.value, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.slots[key]

	return ok
}

// Set inserts or overwrites key. Overwrites do not move the key.
func (m *OrderedMap[V]) Set(key string, value V) {
	if slot, ok := m.slots[key]; ok {
		slot.value = value
		m.slots[key] = slot

		return
	}

	seq := m.nextSeq
	m.nextSeq++

	m.slots[key] = orderedSlot[V]{seq: seq, value: value}
	m.index.Insert(seq, key)
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	slot, ok := m.slots[key]
	if !ok {
		return false
	}

	delete(m.slots, key)
	m.index.Delete(slot.seq)

	return true
}

// Clear removes every key.
func (m *OrderedMap[V]) Clear() {
	m.slots = make(map[string]orderedSlot[V])
	m.index = NewOSTree()
	m.nextSeq = 0
}

// KeyAt returns the key at 0-based position n in insertion order.
// Negative or out-of-range positions report false.
func (m *OrderedMap[V]) KeyAt(n int) (string, bool) {
	return m.index.Kth(n)
}

// Keys returns all keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, len(m.slots))

	m.index.Walk(func(key string) bool {
		keys = append(keys, key)

		return true
	})

	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	m.index.Walk(func(key string) bool {
		return fn(key, m.slots[key].value)
	})
}

// Clone returns a shallow copy: values are shared, ordering state is not.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	return &OrderedMap[V]{
		slots:   maps.Clone(m.slots),
		index:   m.index.Clone(),
		nextSeq: m.nextSeq,
	}
}
