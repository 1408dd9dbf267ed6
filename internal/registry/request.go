package registry

import "sync"

// Request is the handle of an asynchronous service call. It completes
// exactly once, either with a result or with a failure.
type Request[T any] struct {
	mu      sync.Mutex
	status  StatusCode
	result  T
	failure *ServiceError
	done    chan struct{}
}

// AddRequest is returned by Service.Add.
type AddRequest = Request[PackageInfo]

// ListRequest is returned by Service.List.
type ListRequest = Request[[]PackageInfo]

// NewRequest returns a pending request.
func NewRequest[T any]() *Request[T] {
	return &Request[T]{done: make(chan struct{})}
}

// IsCompleted reports whether the request has finished.
func (r *Request[T]) IsCompleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status != InProgress
}

// Status returns the current status.
func (r *Request[T]) Status() StatusCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Result returns the result of a successful request, or the zero value.
func (r *Request[T]) Result() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Failure returns the error of a failed request, or nil.
func (r *Request[T]) Failure() *ServiceError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

// Done is closed when the request completes.
func (r *Request[T]) Done() <-chan struct{} {
	return r.done
}

// Complete finishes the request successfully. Later calls are ignored.
func (r *Request[T]) Complete(result T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != InProgress {
		return
	}
	r.result = result
	r.status = Success
	close(r.done)
}

// Fail finishes the request with err. Later calls are ignored.
func (r *Request[T]) Fail(err *ServiceError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != InProgress {
		return
	}
	r.failure = err
	r.status = Failure
	close(r.done)
}
