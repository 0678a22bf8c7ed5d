package models

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes the three states a JSON field can be in:
// absent from the payload, explicitly null, and explicitly set to a value
// (including the zero value). Plain pointers collapse "absent" and "null"
// into nil, which is not enough for patch-style requests where null means
// "clear this field" and absence means "leave it alone".
//
// The zero Optional reports Set == false, so a field that never appeared in
// the payload is distinguishable after unmarshalling.
type Optional[T any] struct {
	// Set reports whether the field was present in the JSON payload at all.
	Set bool

	// Value is the decoded value, or nil when the field was explicitly null.
	Value *T
}

// OptionalOf returns an Optional holding v.
func OptionalOf[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// OptionalNull returns an Optional that was explicitly set to null.
func OptionalNull[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present in the payload, so it unconditionally marks the Optional
// as set and records null as a nil Value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v

	return nil
}

// MarshalJSON implements json.Marshaler. Unset and null both serialize as
// JSON null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
