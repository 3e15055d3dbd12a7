// Package requestid tags every inbound request with a correlation id.
//
// The middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUIDv7, stores the id in the request context and echoes it in
// the response header. LoggerExtractor plugs the id into logger records so
// request logs and tracking debug output can be joined.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
