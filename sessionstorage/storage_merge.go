package sessionstorage

import (
	"github.com/grafana/sobek"
)

// MergeItem deep-merges a plain object into the object stored under key and
// returns the result.
//
// Semantics:
//   - absent key: the patch is stored and returned;
//   - stored object: nested objects are merged, everything else is replaced;
//   - stored non-object (string, number, array, null...): nothing changes and
//     undefined is returned.
//
// Throws InvalidArgumentError when key is not a string or patch is not a plain object.
func (s *Storage) MergeItem(call sobek.FunctionCall) sobek.Value {
	key, err := importKey(call.Argument(0))
	if err != nil {
		s.throw(err)
	}

	patch, err := s.importer().importValue(call.Argument(1))
	if err != nil {
		s.throw(err)
	}

	merged, err := s.store.MergeItem(key, patch)
	if err != nil {
		s.throw(err)
	}

	return exportValue(s.vu.Runtime(), merged)
}

// MultiMerge merges an array of [key, patch] pairs or every property of an
// object, and returns an object mapping each key to its merge result
// (undefined where the stored value was not mergeable). In the object form
// undefined patches are skipped and do not appear in the result; in the pair
// form they are rejected like in MergeItem.
//
// Throws InvalidArgumentError, before merging anything, when the argument,
// any key, or any patch is malformed.
func (s *Storage) MultiMerge(call sobek.FunctionCall) sobek.Value {
	pairs, keyed, err := importPairs(call.Argument(0), s.importer())
	if err != nil {
		s.throw(err)
	}

	if keyed {
		pairs = withoutUndefined(pairs)
	}

	results, err := s.store.MultiMerge(pairs)
	if err != nil {
		s.throw(err)
	}

	return exportEntries(s.vu.Runtime(), results)
}
