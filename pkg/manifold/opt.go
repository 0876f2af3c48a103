package manifold

import (
	"bytes"
	"encoding/json"
)

// Opt is a tri-state attribute value. Feed create/update payloads need to
// tell apart a key that was never sent, a key sent as an explicit null
// (clearing a topic default), and a key with a value; a plain pointer cannot
// represent all three.
type Opt[T any] struct {
	present bool
	null    bool
	value   T
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{present: true, value: v}
}

func Null[T any]() Opt[T] {
	return Opt[T]{present: true, null: true}
}

func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Present reports whether the key was sent at all, including as null.
func (o Opt[T]) Present() bool {
	return o.present
}

// IsNull reports whether the key was sent as an explicit null.
func (o Opt[T]) IsNull() bool {
	return o.present && o.null
}

// HasValue reports whether the key carries an actual value.
func (o Opt[T]) HasValue() bool {
	return o.present && !o.null
}

func (o Opt[T]) Value() (T, bool) {
	if !o.HasValue() {
		var zero T
		return zero, false
	}
	return o.value, true
}

// MustValue returns the value or the zero value when not set.
func (o Opt[T]) MustValue() T {
	return o.value
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// optFromPtr lifts a topic default into an attribute value: a nil pointer
// means the topic has no default for the key.
func optFromPtr[T any](p *T) Opt[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// ptrFromOpt lowers a normalized attribute onto a persisted entity field.
// An explicit null lowers to nil the same as an absent key, so the persisted
// entity omits the key either way.
func ptrFromOpt[T any](o Opt[T]) *T {
	if v, ok := o.Value(); ok {
		return &v
	}
	return nil
}
