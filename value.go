package tsion

import (
	"math"
	"math/big"
)

// Kind identifies the tagged variant held by a [Value].
type Kind uint8

const (
	// KindNull is the null value.
	KindNull Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNumber is a finite or non-finite (Inf/-Inf/NaN) IEEE-754 double.
	// Int and Float are merged into this single numeric kind.
	KindNumber
	// KindBigInt is an arbitrary-precision signed integer.
	KindBigInt
	// KindString is a sequence of Unicode scalar values.
	KindString
	// KindArray is an ordered sequence of [Value].
	KindArray
	// KindObject is an ordered mapping from string key to [Value].
	KindObject
)

// String returns the name of the kind, for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the domain of [Encode] and [Decode]: a tagged variant holding
// exactly one of the kinds enumerated by [Kind].
//
// The zero Value is [Null]. Values are immutable except through shared
// storage: object-kind Values reference an [*Object] by pointer, and
// array-kind Values share their element slice (see [Value.ArrayItems]).
// Callers that mutate a decoded object or array accept that any other
// Value sharing it (via a back-reference) observes the mutation, matching
// the decoder's no-deep-copy aliasing contract.
type Value struct {
	kind Kind
	b    bool
	num  float64
	big  *big.Int
	str  string
	arr  []Value
	obj  *Object
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value from an IEEE-754 double. NaN and ±Inf are
// represented and round-trip through the three sentinel constants.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric Value from an int64: Int and Float share
// one numeric kind backed by float64.
func Int(i int64) Value { return Number(float64(i)) }

// BigIntValue returns an arbitrary-precision integer Value. n is not copied;
// callers must not mutate it afterward.
func BigIntValue(n *big.Int) Value { return Value{kind: KindBigInt, big: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array Value from its ordered elements.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ObjectValue returns an object Value wrapping an existing [*Object]. obj
// is not copied.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}

	return Value{kind: KindObject, obj: obj}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns v's boolean payload and whether v is [KindBool].
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Num returns v's numeric payload and whether v is [KindNumber].
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// BigInt returns v's big-integer payload and whether v is [KindBigInt].
func (v Value) BigInt() (*big.Int, bool) { return v.big, v.kind == KindBigInt }

// Str returns v's string payload and whether v is [KindString].
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// ArrayItems returns v's element slice and whether v is [KindArray]. The
// returned slice shares storage with v.
func (v Value) ArrayItems() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Object returns v's object payload and whether v is [KindObject].
func (v Value) Object() (*Object, bool) { return v.obj, v.kind == KindObject }

// Equal reports whether v and other describe the same value tree. NaN
// equals NaN here (Go's native float64 comparison would disagree, but a
// round-tripped NaN must compare equal to the NaN that produced it).
// [*Object] equality compares key order, not just membership.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		if math.IsNaN(v.num) && math.IsNaN(other.num) {
			return true
		}

		return v.num == other.num
	case KindBigInt:
		if v.big == nil || other.big == nil {
			return v.big == other.big
		}

		return v.big.Cmp(other.big) == 0
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}

		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		return v.obj.equal(other.obj)
	default:
		return false
	}
}

// Object is an ordered mapping from string key to [Value]. Keys are unique;
// [Object.Set] on an existing key updates the value in place without
// changing its position.
//
// Create instances with [NewObject].
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty [Object].
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set assigns key to v, appending key to the iteration order if it is new,
// or updating it in place if it already exists. Returns o for chaining.
func (o *Object) Set(key string, v Value) *Object {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}

	o.vals[key] = v

	return o
}

// Get returns the value stored at key and whether key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]

	return v, ok
}

// Keys returns the object's keys in insertion order. The returned slice
// must not be mutated.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of entries in o.
func (o *Object) Len() int { return len(o.keys) }

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

func (o *Object) equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}

	if o.Len() != other.Len() {
		return false
	}

	for i, k := range o.keys {
		if k != other.keys[i] {
			return false
		}

		if !o.vals[k].Equal(other.vals[k]) {
			return false
		}
	}

	return true
}
