package outcome

// Result is the outcome of an operation that produces no value.
// The zero Result is a success.
type Result struct {
	err Error
}

// Success returns a successful Result.
func Success() Result { return Result{} }

// Failure returns a failed Result. It panics if err is None: a failure
// without an error is a programming mistake.
func Failure(err Error) Result {
	if err.IsNone() {
		panic("outcome: failure result must have an error")
	}
	return Result{err: err}
}

// Create returns Success when cond holds and Failure(err) otherwise.
func Create(cond bool, err Error) Result {
	if cond {
		return Success()
	}
	return Failure(err)
}

// IsSuccess reports whether the operation succeeded.
func (r Result) IsSuccess() bool { return r.err.IsNone() }

// IsFailure reports whether the operation failed.
func (r Result) IsFailure() bool { return !r.err.IsNone() }

// Error returns the failure's error, or None on success.
func (r Result) Error() Error { return r.err }

// Err returns the failure's error as a Go error, or nil on success.
func (r Result) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return r.err
}

// OnFailure calls fn with the error if r failed and returns r.
func (r Result) OnFailure(fn func(Error)) Result {
	if r.IsFailure() {
		fn(r.err)
	}
	return r
}

// Value is the outcome of an operation that produces a T on success.
type Value[T any] struct {
	value T
	err   Error
}

// Ok returns a successful Value carrying v.
func Ok[T any](v T) Value[T] { return Value[T]{value: v} }

// Of is Ok under the name call sites converting a plain value tend to use.
func Of[T any](v T) Value[T] { return Ok(v) }

// Fail returns a failed Value. It panics if err is None.
func Fail[T any](err Error) Value[T] {
	if err.IsNone() {
		panic("outcome: failure result must have an error")
	}
	return Value[T]{err: err}
}

// FromPtr returns Ok(*v) when v is non-nil and Fail(err) otherwise.
func FromPtr[T any](v *T, err Error) Value[T] {
	if v == nil {
		return Fail[T](err)
	}
	return Ok(*v)
}

// OfPtr is FromPtr with NullValue as the error for a nil pointer.
func OfPtr[T any](v *T) Value[T] { return FromPtr(v, NullValue) }

// IsSuccess reports whether the operation succeeded.
func (v Value[T]) IsSuccess() bool { return v.err.IsNone() }

// IsFailure reports whether the operation failed.
func (v Value[T]) IsFailure() bool { return !v.err.IsNone() }

// Error returns the failure's error, or None on success.
func (v Value[T]) Error() Error { return v.err }

// Value returns the carried value. It panics when called on a failure;
// check IsSuccess first or use ValueOr / ValueOrZero.
func (v Value[T]) Value() T {
	if v.IsFailure() {
		panic("outcome: cannot access value of a failed result (" + v.err.Code + ")")
	}
	return v.value
}

// ValueOrZero returns the value on success and the zero T on failure.
func (v Value[T]) ValueOrZero() T {
	var zero T
	return v.ValueOr(zero)
}

// ValueOr returns the value on success and def on failure.
func (v Value[T]) ValueOr(def T) T {
	if v.IsFailure() {
		return def
	}
	return v.value
}

// Get returns the value and a nil error on success, or the zero T and the
// Error on failure.
func (v Value[T]) Get() (T, error) {
	if v.IsFailure() {
		var zero T
		return zero, v.err
	}
	return v.value, nil
}

// Result drops the value and keeps only success or failure.
func (v Value[T]) Result() Result { return Result{err: v.err} }

// OnSuccess calls fn with the value if v succeeded and returns v.
func (v Value[T]) OnSuccess(fn func(T)) Value[T] {
	if v.IsSuccess() {
		fn(v.value)
	}
	return v
}

// OnFailure calls fn with the error if v failed and returns v.
func (v Value[T]) OnFailure(fn func(Error)) Value[T] {
	if v.IsFailure() {
		fn(v.err)
	}
	return v
}

// Map transforms the value of a successful outcome. A failure is
// propagated unchanged.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if v.IsFailure() {
		return Value[U]{err: v.err}
	}
	return Ok(fn(v.value))
}

// Bind chains an operation that itself returns an outcome.
func Bind[T, U any](v Value[T], fn func(T) Value[U]) Value[U] {
	if v.IsFailure() {
		return Value[U]{err: v.err}
	}
	return fn(v.value)
}
