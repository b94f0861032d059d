package store

import (
	"reflect"
	"slices"
)

// FromAny converts a plain Go value, such as the output of encoding/json,
// into a Value:
//   - nil becomes Null;
//   - map[string]any becomes an Object with keys in sorted order;
//   - []any becomes an Array;
//   - an existing Value is returned unchanged;
//   - anything else becomes a Scalar.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case map[string]any:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		fields := make([]Field, 0, len(keys))
		for _, key := range keys {
			fields = append(fields, Field{Key: key, Value: FromAny(x[key])})
		}

		return NewObject(fields...)
	case []any:
		items := make(Array, len(x))
		for i, item := range x {
			items[i] = FromAny(item)
		}

		return items
	default:
		return NewScalar(raw)
	}
}

// ToAny is the inverse of FromAny. Objects become map[string]any, arrays
// become []any, Null, Undefined and absent values become nil.
func ToAny(v Value) any {
	switch x := v.(type) {
	case nil, Undefined, Null:
		return nil
	case Scalar:
		return x.Raw
	case Array:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = ToAny(item)
		}

		return items
	case *Object:
		fields := make(map[string]any, x.Len())

		x.Range(func(key string, value Value) bool {
			fields[key] = ToAny(value)

			return true
		})

		return fields
	default:
		return nil
	}
}

// Equal reports whether a and b are structurally equal. Object field order
// is not significant; array element order is.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Undefined, Null:
		return true
	case Scalar:
		return reflect.DeepEqual(x.Raw, b.(Scalar).Raw)
	case Array:
		y := b.(Array)

		return slices.EqualFunc(x, y, Equal)
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}

		equal := true

		x.Range(func(key string, value Value) bool {
			other, ok := y.Get(key)
			equal = ok && Equal(value, other)

			return equal
		})

		return equal
	default:
		return false
	}
}
