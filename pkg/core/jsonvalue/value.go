package jsonvalue

import "iter"

// Value is one of Bool, Int, Str, *Object or Array.
// The interface is sealed: only types in this package implement it.
type Value interface {
	jsonValue()
}

// Bool is a JSON boolean.
type Bool bool

// Int is a JSON integer.
type Int int64

// Str is a JSON string.
type Str string

// Array is an ordered sequence of values.
type Array []Value

func (Bool) jsonValue()    {}
func (Int) jsonValue()     {}
func (Str) jsonValue()     {}
func (Array) jsonValue()   {}
func (*Object) jsonValue() {}

// Object is an ordered mapping from unique keys to values.
// The zero value is not usable; create objects with [NewObject].
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores v under key and returns the object for chaining.
// Setting an existing key replaces its value but keeps its position.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// All iterates over key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Equal reports whether a and b are structurally identical, including the
// key order of objects.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av == nil || bv == nil {
			return ok && av == bv
		}
		if len(av.keys) != len(bv.keys) {
			return false
		}
		for i, k := range av.keys {
			if bv.keys[i] != k || !Equal(av.values[k], bv.values[k]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// TypeName returns a short name for the variant of v, for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Str:
		return "string"
	case Array:
		return "array"
	case *Object:
		return "object"
	case nil:
		return "nil"
	default:
		return "unsupported"
	}
}
