// Package async runs fire-and-forget work detached from the request that
// scheduled it.
//
// Dispatcher.Go starts fn on its own goroutine and returns immediately. The
// context handed to fn keeps the caller's values (request identity, request
// id) but not its cancellation or deadline, so finishing the HTTP response
// never aborts the work. Errors and panics from fn are logged and discarded;
// nothing is reported back to the caller.
//
// Wait and Close let tests and graceful shutdown drain in-flight work.
//
//	d := async.NewDispatcher(async.WithLogger(log))
//	d.Go(r.Context(), "create_session", func(ctx context.Context) error {
//	    return send(ctx)
//	})
//	defer d.Close(shutdownCtx)
package async
