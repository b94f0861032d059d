package sessionstorage

import (
	"github.com/grafana/sobek"
)

// Key returns the key at 0-based position n in insertion order, or
// undefined when n is out of range or not a whole number.
func (s *Storage) Key(call sobek.FunctionCall) sobek.Value {
	n, ok := importIndex(call.Argument(0))
	if !ok {
		return sobek.Undefined()
	}

	key, ok := s.store.Key(n)
	if !ok {
		return sobek.Undefined()
	}

	return s.vu.Runtime().ToValue(key)
}

// GetItem returns the value stored under key, or undefined.
// Throws InvalidArgumentError when key is not a string.
func (s *Storage) GetItem(call sobek.FunctionCall) sobek.Value {
	key, err := importKey(call.Argument(0))
	if err != nil {
		s.throw(err)
	}

	return exportValue(s.vu.Runtime(), s.store.GetItem(key))
}

// MultiGet returns an object with one property per requested key; missing
// keys map to undefined.
// Throws InvalidArgumentError when keys is not an array of strings.
func (s *Storage) MultiGet(call sobek.FunctionCall) sobek.Value {
	keys, err := importKeys(call.Argument(0))
	if err != nil {
		s.throw(err)
	}

	return exportEntries(s.vu.Runtime(), s.store.MultiGet(keys))
}

// GetAllItems returns a plain object snapshot of every entry.
func (s *Storage) GetAllItems(_ sobek.FunctionCall) sobek.Value {
	return exportEntries(s.vu.Runtime(), s.store.GetAllItems())
}

// GetAllKeys returns every key in insertion order.
func (s *Storage) GetAllKeys(_ sobek.FunctionCall) sobek.Value {
	keys := s.store.GetAllKeys()

	items := make([]any, len(keys))
	for i, key := range keys {
		items[i] = key
	}

	return s.vu.Runtime().NewArray(items...)
}
