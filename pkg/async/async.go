package async

import (
	"context"
	"runtime/debug"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Run executes fn in its own goroutine and returns a Future for its result.
// A panic inside fn is recovered and reported as a *PanicError.
// If ctx is already done, fn is not called and the Future completes with
// ctx.Err().
func Run[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result = zero
				f.err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()

		// skip the work entirely for pre-cancelled contexts
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// Done returns a channel closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Await waits for completion and returns the result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}
