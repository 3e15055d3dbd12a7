// Package delivery sends tracking payloads to the remote collection API.
//
// The Client is best-effort and never interrupts the caller: every failure
// mode (not configured, disabled, encode error, connection refused, timeout,
// non-2xx status, malformed response body, open circuit) is folded into a
// negative outcome. Post reports a bool; PostWithResponse reports the decoded
// body and a bool.
//
// Each call is a single POST with a JSON body, a bearer credential and a
// library User-Agent. The request runs under context.WithTimeout; when the
// deadline passes the transport aborts the in-flight request and closes its
// connection. There are no retries, no backoff and no queue.
//
// # Usage
//
//	client := delivery.New(cfg,
//	    delivery.WithLogger(log),
//	    delivery.WithMetrics(delivery.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//
//	ok := client.Post(ctx, "/sessions", payload)
//
//	resp, ok := delivery.PostWithResponse[EventsResponse](ctx, client, "/events", payload)
//
// # Observability
//
// Request and response detail is logged at debug level only when the
// configuration's Debug flag is set. Metrics, an optional otelhttp transport
// (WithTracing) and the WithOnResult hook observe outcomes without affecting
// them.
//
// # Circuit breaking
//
// WithCircuitBreaker puts a sony/gobreaker breaker in front of the network
// call. While the breaker is open calls return the negative outcome without a
// network attempt. It is disabled by default.
package delivery
