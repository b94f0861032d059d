package sessionstorage

import (
	"fmt"
	"math"
	"strconv"

	"github.com/grafana/sobek"
	"go.k6.io/k6/js/common"

	"github.com/oshokin/xk6-session-storage/sessionstorage/store"
)

const (
	classArray  = "Array"
	classObject = "Object"
)

// valueImporter converts JS values into store values on the VU thread.
//
// Plain objects (whose prototype is Object.prototype or null) and arrays are
// converted structurally; every other object (functions, dates, maps, sets,
// typed arrays, class instances, host objects) becomes an opaque Scalar.
// When keepNative is set those opaque objects keep their sobek.Value so the
// same runtime gets the very same object back; shared storages must not hold
// runtime-bound values, so they store Export() output instead.
type valueImporter struct {
	// objectPrototype is the runtime's intrinsic Object.prototype.
	objectPrototype *sobek.Object

	keepNative bool
	visiting   map[*sobek.Object]struct{}
}

// newValueImporter returns an importer ready for a single conversion in rt.
func newValueImporter(rt *sobek.Runtime, keepNative bool) *valueImporter {
	return &valueImporter{
		// A literal's prototype is the intrinsic one even if the global Object is replaced.
		objectPrototype: rt.NewObject().Prototype(),
		keepNative:      keepNative,
		visiting:        make(map[*sobek.Object]struct{}),
	}
}

// isPlainObject reports whether obj is an ordinary object created by a
// literal, new Object() or Object.create(null).
func (im *valueImporter) isPlainObject(obj *sobek.Object) bool {
	if obj.ClassName() != classObject {
		return false
	}

	if _, isFunction := sobek.AssertFunction(obj); isFunction {
		return false
	}

	proto := obj.Prototype()

	return proto == nil || proto == im.objectPrototype
}

// importValue converts v. A missing value is imported as Undefined.
func (im *valueImporter) importValue(v sobek.Value) (store.Value, error) {
	switch {
	case v == nil || sobek.IsUndefined(v):
		return store.Undefined{}, nil
	case sobek.IsNull(v):
		return store.Null{}, nil
	}

	obj, ok := v.(*sobek.Object)
	if !ok {
		// Primitives export losslessly and are not bound to the runtime.
		return store.NewScalar(v.Export()), nil
	}

	if _, isFunction := sobek.AssertFunction(obj); isFunction {
		return im.opaque(obj), nil
	}

	switch {
	case obj.ClassName() == classArray:
		return im.importArray(obj)
	case im.isPlainObject(obj):
		return im.importObject(obj)
	default:
		return im.opaque(obj), nil
	}
}

// importArray converts a JS array element by element. Holes become Undefined.
func (im *valueImporter) importArray(obj *sobek.Object) (store.Value, error) {
	release, err := im.enter(obj)
	if err != nil {
		return nil, err
	}
	defer release()

	length := arrayLength(obj)
	items := make(store.Array, 0, length)

	for i := range length {
		item, err := im.importValue(obj.Get(strconv.FormatInt(i, 10)))
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// importObject converts own enumerable string-keyed properties, in order.
func (im *valueImporter) importObject(obj *sobek.Object) (store.Value, error) {
	release, err := im.enter(obj)
	if err != nil {
		return nil, err
	}
	defer release()

	keys := obj.Keys()
	fields := make([]store.Field, 0, len(keys))

	for _, key := range keys {
		value, err := im.importValue(obj.Get(key))
		if err != nil {
			return nil, err
		}

		fields = append(fields, store.Field{Key: key, Value: value})
	}

	return store.NewObject(fields...), nil
}

// enter marks obj as being converted and rejects cycles. Shared references
// that are not cycles are allowed and converted once per occurrence.
func (im *valueImporter) enter(obj *sobek.Object) (func(), error) {
	if _, seen := im.visiting[obj]; seen {
		return nil, fmt.Errorf("%w: %w: an object references itself", store.ErrInvalidArgument, store.ErrCyclicValue)
	}

	im.visiting[obj] = struct{}{}

	return func() { delete(im.visiting, obj) }, nil
}

// opaque wraps a non-plain object as a Scalar.
func (im *valueImporter) opaque(obj *sobek.Object) store.Value {
	if im.keepNative {
		return store.NewScalar(obj)
	}

	return store.NewScalar(obj.Export())
}

// exportValue converts a store value into a fresh JS value.
// Absent values become undefined.
func exportValue(rt *sobek.Runtime, v store.Value) sobek.Value {
	switch x := v.(type) {
	case nil, store.Undefined:
		return sobek.Undefined()
	case store.Null:
		return sobek.Null()
	case store.Scalar:
		if native, ok := x.Raw.(sobek.Value); ok {
			return native
		}

		return rt.ToValue(x.Raw)
	case store.Array:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = exportValue(rt, item)
		}

		return rt.NewArray(items...)
	case *store.Object:
		obj := rt.NewObject()

		x.Range(func(key string, value store.Value) bool {
			defineField(rt, obj, key, exportValue(rt, value))

			return true
		})

		return obj
	default:
		return sobek.Undefined()
	}
}

// exportEntries builds a plain JS object from entries. Repeated keys collapse
// into one property holding the last value.
func exportEntries(rt *sobek.Runtime, entries []store.Entry) *sobek.Object {
	obj := rt.NewObject()

	for _, entry := range entries {
		defineField(rt, obj, entry.Key, exportValue(rt, entry.Value))
	}

	return obj
}

// defineField creates an own data property. Unlike Set it never triggers
// setters such as __proto__.
func defineField(rt *sobek.Runtime, obj *sobek.Object, key string, value sobek.Value) {
	if err := obj.DefineDataProperty(key, value, sobek.FLAG_TRUE, sobek.FLAG_TRUE, sobek.FLAG_TRUE); err != nil {
		common.Throw(rt, err)
	}
}

// importKey validates that v is a string key.
func importKey(v sobek.Value) (string, error) {
	if v != nil {
		if key, ok := v.Export().(string); ok {
			return key, nil
		}
	}

	return "", fmt.Errorf("%w: key must be a string, got %s", store.ErrInvalidArgument, typeOf(v))
}

// importKeys validates that v is an array of string keys.
func importKeys(v sobek.Value) ([]string, error) {
	arr, ok := asArray(v)
	if !ok {
		return nil, fmt.Errorf("%w: keys must be an array, got %s", store.ErrInvalidArgument, typeOf(v))
	}

	length := arrayLength(arr)
	keys := make([]string, 0, length)

	for i := range length {
		key, err := importKey(arr.Get(strconv.FormatInt(i, 10)))
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

// importPairs accepts either an array of [key, value] pairs or a plain object
// and returns the entries in order. Undefined values are kept as Undefined;
// keyed reports whether the input was an object rather than a pair list.
func importPairs(v sobek.Value, im *valueImporter) (pairs []store.Entry, keyed bool, err error) {
	if arr, ok := asArray(v); ok {
		pairs, err = im.importPairList(arr)

		return pairs, false, err
	}

	obj, ok := v.(*sobek.Object)
	if !ok || !im.isPlainObject(obj) {
		return nil, false, fmt.Errorf(
			"%w: pairs must be an array of [key, value] pairs or an object, got %s",
			store.ErrInvalidArgument, typeOf(v),
		)
	}

	keys := obj.Keys()
	pairs = make([]store.Entry, 0, len(keys))

	for _, key := range keys {
		value, err := im.importValue(obj.Get(key))
		if err != nil {
			return nil, true, fmt.Errorf("pairs[%q]: %w", key, err)
		}

		pairs = append(pairs, store.Entry{Key: key, Value: value})
	}

	return pairs, true, nil
}

// importPairList converts an array of [key, value] arrays.
func (im *valueImporter) importPairList(arr *sobek.Object) ([]store.Entry, error) {
	length := arrayLength(arr)
	pairs := make([]store.Entry, 0, length)

	for i := range length {
		element := arr.Get(strconv.FormatInt(i, 10))

		pair, ok := asArray(element)
		if !ok {
			return nil, fmt.Errorf(
				"%w: pairs[%d] must be a [key, value] array, got %s",
				store.ErrInvalidArgument, i, typeOf(element),
			)
		}

		key, err := importKey(pair.Get("0"))
		if err != nil {
			return nil, fmt.Errorf("pairs[%d]: %w", i, err)
		}

		value, err := im.importValue(pair.Get("1"))
		if err != nil {
			return nil, fmt.Errorf("pairs[%d]: %w", i, err)
		}

		pairs = append(pairs, store.Entry{Key: key, Value: value})
	}

	return pairs, nil
}

// withoutUndefined drops entries whose value is absent or Undefined.
func withoutUndefined(pairs []store.Entry) []store.Entry {
	kept := pairs[:0:0]

	for _, pair := range pairs {
		if !store.IsAbsent(pair.Value) {
			kept = append(kept, pair)
		}
	}

	return kept
}

// importIndex converts the argument of key(n). Anything that is not a
// finite whole number reports false.
func importIndex(v sobek.Value) (int, bool) {
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return 0, false
	}

	f := v.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}

	if f < 0 || f > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}

// asArray reports whether v is a JS array.
func asArray(v sobek.Value) (*sobek.Object, bool) {
	obj, ok := v.(*sobek.Object)
	if !ok || obj.ClassName() != classArray {
		return nil, false
	}

	return obj, true
}

// arrayLength reads the length property of a JS array.
func arrayLength(arr *sobek.Object) int64 {
	length := arr.Get("length")
	if length == nil {
		return 0
	}

	return max(0, length.ToInteger())
}

// typeOf describes v the way JS typeof would, with null and arrays spelled out.
func typeOf(v sobek.Value) string {
	switch {
	case v == nil || sobek.IsUndefined(v):
		return "undefined"
	case sobek.IsNull(v):
		return "null"
	}

	if obj, ok := v.(*sobek.Object); ok {
		if _, isFunction := sobek.AssertFunction(obj); isFunction {
			return "function"
		}

		if obj.ClassName() == classArray {
			return "array"
		}

		return "object"
	}

	switch v.Export().(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v.Export())
	}
}
