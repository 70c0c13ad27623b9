// Package loader wraps fetch and mutation functions into small typed
// primitives with an explicit status, so callers can distinguish a value
// that is still loading from one that failed or arrived.
package loader

import "context"

// Status of a load result.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result carries a loaded value together with its status. Data is only
// meaningful when Status is StatusSuccess.
type Result[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Loading returns a Result in the loading state.
func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

// Success wraps a loaded value.
func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// Failure wraps a load error.
func Failure[T any](err error) Result[T] {
	return Result[T]{Status: StatusError, Err: err}
}

// Loader fetches a value and validates it before reporting success.
type Loader[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	validate func(T) bool
}

// New builds a Loader from a fetch function. The validate predicate may be
// nil, in which case any fetched value counts as valid.
func New[T any](fetch func(ctx context.Context) (T, error), validate func(T) bool) *Loader[T] {
	return &Loader[T]{fetch: fetch, validate: validate}
}

// ErrInvalidValue is returned when a fetched value fails the loader's
// predicate.
type ErrInvalidValue struct{}

func (ErrInvalidValue) Error() string { return "loaded value failed validation" }

// Load runs the fetch and returns a success Result only if the value passes
// validation.
func (l *Loader[T]) Load(ctx context.Context) Result[T] {
	data, err := l.fetch(ctx)
	if err != nil {
		return Failure[T](err)
	}
	if l.validate != nil && !l.validate(data) {
		return Failure[T](ErrInvalidValue{})
	}
	return Success(data)
}

// Mutation is a typed trigger for a side-effecting operation.
type Mutation[P any] func(ctx context.Context, params P) error

// NewMutation adapts a service method into a Mutation.
func NewMutation[P any](run func(ctx context.Context, params P) error) Mutation[P] {
	return Mutation[P](run)
}
