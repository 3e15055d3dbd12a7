// Package httpserver runs an http.Server until its context ends or the
// process receives SIGINT or SIGTERM, then shuts it down gracefully.
//
// After the listener stops, registered drain functions run within the same
// shutdown deadline. Use them to flush background work such as pending
// tracking calls:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//	    httpserver.WithLogger(log),
//	    httpserver.WithDrain(client.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Health returns a probe handler suitable for /healthz.
package httpserver
