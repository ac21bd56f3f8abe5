package models

import (
	"encoding/json"
)

// Field is an optional value decoded from JSON that remembers whether the
// key was present at all. A present key holding null has Set true and
// Valid false.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewField returns a present, non-null field.
func NewField[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// NullField returns a present field holding null.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON is only called for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Set || !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
