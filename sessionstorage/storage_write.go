package sessionstorage

import (
	"github.com/grafana/sobek"
)

// SetItem stores value under key, overwriting any previous value in place.
// Any value is accepted, undefined included.
// Throws InvalidArgumentError when key is not a string or value is cyclic.
func (s *Storage) SetItem(call sobek.FunctionCall) sobek.Value {
	key, err := importKey(call.Argument(0))
	if err != nil {
		s.throw(err)
	}

	value, err := s.importer().importValue(call.Argument(1))
	if err != nil {
		s.throw(err)
	}

	s.store.SetItem(key, value)

	return sobek.Undefined()
}

// MultiSet stores an array of [key, value] pairs or every property of an
// object. Pairs are applied in order and undefined values are skipped.
// Throws InvalidArgumentError, before storing anything, when the argument or
// any key is malformed.
func (s *Storage) MultiSet(call sobek.FunctionCall) sobek.Value {
	pairs, _, err := importPairs(call.Argument(0), s.importer())
	if err != nil {
		s.throw(err)
	}

	s.store.MultiSet(pairs)

	return sobek.Undefined()
}

// RemoveItem deletes key. Missing keys are ignored.
// Throws InvalidArgumentError when key is not a string.
func (s *Storage) RemoveItem(call sobek.FunctionCall) sobek.Value {
	key, err := importKey(call.Argument(0))
	if err != nil {
		s.throw(err)
	}

	s.store.RemoveItem(key)

	return sobek.Undefined()
}

// MultiRemove deletes every listed key. Missing keys are ignored.
// Throws InvalidArgumentError, before removing anything, when keys is not
// an array of strings.
func (s *Storage) MultiRemove(call sobek.FunctionCall) sobek.Value {
	keys, err := importKeys(call.Argument(0))
	if err != nil {
		s.throw(err)
	}

	s.store.MultiRemove(keys)

	return sobek.Undefined()
}

// Clear removes every entry.
func (s *Storage) Clear(_ sobek.FunctionCall) sobek.Value {
	removed := s.store.Clear()

	s.logger.WithField("removed", removed).Debug("session storage cleared")

	return sobek.Undefined()
}
