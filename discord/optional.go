package discord

// Optional models the tri-state a partial update needs: a field can be left
// unchanged (zero Optional), explicitly cleared (Null), or set to a value.
// The zero value means "no value supplied".
type Optional[T any] struct {
	set  bool
	null bool
	val  T
}

// Some returns an Optional carrying a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, val: v}
}

// Null returns an Optional that explicitly clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether any value (including null) was supplied.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly cleared.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Value returns the carried value and whether a non-null value is present.
func (o Optional[T]) Value() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.val, true
}

// Ptr returns the value as a pointer: nil when unset or null.
func (o Optional[T]) Ptr() *T {
	if v, ok := o.Value(); ok {
		return &v
	}
	return nil
}
