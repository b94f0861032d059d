package store

// Kind discriminates the shapes a stored Value can take.
type Kind uint8

const (
	// KindUndefined is an explicitly stored "undefined".
	KindUndefined Kind = iota
	// KindNull is an explicitly stored null.
	KindNull
	// KindScalar is any opaque leaf: strings, numbers, booleans, functions, dates...
	KindScalar
	// KindArray is an ordered list of values. Arrays are always merge leaves.
	KindArray
	// KindObject is a plain record of string-keyed fields; the only mergeable kind.
	KindObject
)

// String returns the lowercase kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a stored value. The set of implementations is closed:
// Undefined, Null, Scalar, Array and *Object.
//
// A nil Value means "absent": a lookup that missed or a merge that was not
// applicable. It is never stored.
//
// Values are treated as immutable. The store never modifies a Value it has
// been given or has returned, and callers must not either.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	// Undefined is a stored JS undefined.
	Undefined struct{}

	// Null is a stored null. During a merge it always replaces, never recurses.
	Null struct{}

	// Scalar wraps an opaque leaf value that the store never interprets.
	Scalar struct {
		Raw any
	}

	// Array is an ordered list of values, replaced wholesale by merges.
	Array []Value

	// Object is an insertion-ordered record of fields.
	Object struct {
		fields *OrderedMap[Value]
	}

	// Field is a single key/value member of an Object.
	Field struct {
		Key   string
		Value Value
	}
)

// Kind implements Value.
func (Undefined) Kind() Kind { return KindUndefined }

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Kind implements Value.
func (Scalar) Kind() Kind { return KindScalar }

// Kind implements Value.
func (Array) Kind() Kind { return KindArray }

// Kind implements Value.
func (*Object) Kind() Kind { return KindObject }

func (Undefined) isValue() {}
func (Null) isValue()      {}
func (Scalar) isValue()    {}
func (Array) isValue()     {}
func (*Object) isValue()   {}

// NewScalar wraps raw as an opaque leaf.
func NewScalar(raw any) Scalar {
	return Scalar{Raw: raw}
}

// NewArray builds an Array from items.
func NewArray(items ...Value) Array {
	return Array(items)
}

// NewObject builds an Object with fields in the given order.
// A repeated key overwrites the earlier value but keeps its first position.
// A nil field value is stored as Undefined.
func NewObject(fields ...Field) *Object {
	m := NewOrderedMap[Value]()

	for _, f := range fields {
		m.Set(f.Key, orUndefined(f.Value))
	}

	return &Object{fields: m}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil || o.fields == nil {
		return 0
	}

	return o.fields.Len()
}

// Get returns the value of field key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.fields == nil {
		return nil, false
	}

	return o.fields.Get(key)
}

// Keys returns field names in insertion order.
func (o *Object) Keys() []string {
	if o == nil || o.fields == nil {
		return []string{}
	}

	return o.fields.Keys()
}

// Range visits fields in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, value Value) bool) {
	if o == nil || o.fields == nil {
		return
	}

	o.fields.Range(fn)
}

// Fields returns the fields in insertion order.
func (o *Object) Fields() []Field {
	fields := make([]Field, 0, o.Len())

	o.Range(func(key string, value Value) bool {
		fields = append(fields, Field{Key: key, Value: value})

		return true
	})

	return fields
}

// IsMergeable reports whether v is a plain object eligible for a recursive merge.
// Arrays, null, undefined, scalars and absent values are all leaves.
func IsMergeable(v Value) bool {
	obj, ok := v.(*Object)

	return ok && obj != nil
}

// IsAbsent reports whether v carries no value: either nil or Undefined.
// Batch writes skip such entries.
func IsAbsent(v Value) bool {
	return v == nil || v.Kind() == KindUndefined
}

// kindName describes v for error messages, including the absent case.
func kindName(v Value) string {
	if v == nil {
		return "absent"
	}

	return v.Kind().String()
}

// orUndefined maps an absent value to Undefined so it can be stored.
func orUndefined(v Value) Value {
	if v == nil {
		return Undefined{}
	}

	return v
}
