// Package mbuzz instruments Go HTTP services with server-side analytics.
//
// A Client bundles the pieces a host application needs: an identity
// middleware that keeps visitor and session identifiers in first-party
// cookies, context accessors for the resolved identity, and best-effort
// tracking calls (events, conversions, identify) to the collection API.
//
// Tracking never interrupts the host. Every network-facing method reports a
// negative outcome instead of an error; the only error a Client surfaces is a
// configuration error from New.
//
// Basic usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//
//	client, err := mbuzz.New(cfg, mbuzz.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer client.Close(context.Background())
//
//	r := chi.NewRouter()
//	r.Use(client.Middleware)
//	r.Get("/checkout", func(w http.ResponseWriter, r *http.Request) {
//		client.Event(r.Context(), "checkout_viewed", map[string]any{"cart": 3})
//	})
//
// Outside HTTP handlers, wrap work in Run to make an identity visible to the
// tracking calls:
//
//	rc := mbuzz.NewRequestContext(mbuzz.RequestContextOptions{VisitorID: vid, SessionID: sid})
//	_ = mbuzz.Run(ctx, rc, func(ctx context.Context) error {
//		client.Event(ctx, "job_finished", nil)
//		return nil
//	})
package mbuzz
