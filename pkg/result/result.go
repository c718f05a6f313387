package result

// Result holds either a value or an error, never both meaningfully.
type Result[T any] struct {
	val T
	err error
}

// Of wraps a conventional (value, error) return pair.
func Of[T any](val T, err error) Result[T] {
	return Result[T]{val: val, err: err}
}

// OK builds a successful Result.
func OK[T any](val T) Result[T] { return Result[T]{val: val} }

// Fail builds a failed Result.
func Fail[T any](err error) Result[T] { return Result[T]{err: err} }

// Do runs fn and captures its outcome.
func Do[T any](fn func() (T, error)) Result[T] {
	v, err := fn()
	return Result[T]{val: v, err: err}
}

// Ok reports whether the result carries a value.
func (r Result[T]) Ok() bool { return r.err == nil }

// Err returns the captured error, nil on success.
func (r Result[T]) Err() error { return r.err }

// Value returns the captured value; the zero value on failure.
func (r Result[T]) Value() T { return r.val }

// Unpack returns the conventional (value, error) pair.
func (r Result[T]) Unpack() (T, error) { return r.val, r.err }
