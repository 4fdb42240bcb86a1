package wallet

// Result carries either a value or the reason it is absent.
type Result[T any] struct {
	value  T
	ok     bool
	reason error
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Absent records why no value was produced
func Absent[T any](reason error) Result[T] {
	return Result[T]{reason: reason}
}

// Get returns the value and whether it is present
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

func (r Result[T]) Present() bool { return r.ok }

// Reason is nil for present results
func (r Result[T]) Reason() error {
	if r.ok {
		return nil
	}
	return r.reason
}
