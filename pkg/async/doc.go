// Package async runs a computation in its own goroutine and hands back a
// Future for its result.
//
// Run starts the function and returns immediately. Callers select on Done to
// race the computation against a timer or another channel, then read the
// outcome with Await.
//
// Abandoning a Future never stops the computation: cancellation is
// cooperative, so the function must watch its context to stop early. Its
// eventual result is discarded when nobody awaits it.
//
// # Usage
//
//	f := async.Run(ctx, func(ctx context.Context) (string, error) {
//		return fetch(ctx)
//	})
//
//	select {
//	case <-f.Done():
//		res, err := f.Await()
//	case <-timer.C:
//		cancel() // signal, do not wait
//	}
//
// A panic inside the function is recovered and returned as *PanicError with
// the captured stack.
package async
