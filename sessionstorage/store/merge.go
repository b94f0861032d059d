package store

// DeepMerge returns a new Object holding the structural union of target and
// source. Neither argument, nor anything nested inside them, is modified;
// untouched subtrees are shared with target.
//
// Rules, applied to every field of source in order:
//   - if the result already has the field and both sides are objects,
//     they are merged recursively;
//   - otherwise the source value replaces the field wholesale. This covers
//     new fields, arrays (never merged element-wise) and null on either side.
//
// Fields present only in target are carried through with their position.
// A nil target or source is treated as an empty object.
func DeepMerge(target, source *Object) *Object {
	var result *OrderedMap[Value]
	if target == nil || target.fields == nil {
		result = NewOrderedMap[Value]()
	} else {
		result = target.fields.Clone()
	}

	source.Range(func(key string, incoming Value) bool {
		if current, ok := result.Get(key); ok && IsMergeable(current) && IsMergeable(incoming) {
			result.Set(key, DeepMerge(current.(*Object), incoming.(*Object)))

			return true
		}

		result.Set(key, orUndefined(incoming))

		return true
	})

	return &Object{fields: result}
}
