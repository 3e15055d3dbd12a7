package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mbuzz "github.com/mbuzz/mbuzz-go"
	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/httpserver"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/requestid"
)

func newRouter(client *mbuzz.Client, ips *clientip.Resolver, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(ips.Middleware)
	r.Use(accessLog(log))

	// Probes and scrapes never carry cookies back; tracking them would mint
	// a visitor and a session on every hit.
	r.Get("/healthz", httpserver.Health(log))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(client.Middleware)
		r.Get("/dashboard", dashboard(client))
		r.Post("/signup", signup(client))
	})
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				slog.String("client_ip", clientIP(r)),
				logger.StatusCode(ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _ := clientip.FromContext(r.Context())
	return ip
}

func dashboard(client *mbuzz.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := client.Event(r.Context(), "dashboard_viewed", map[string]any{
			"tab": r.URL.Query().Get("tab"),
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"visitor_id": mbuzz.VisitorID(r.Context()),
			"session_id": mbuzz.SessionID(r.Context()),
			"tracked":    ok,
			"event_id":   res.EventID,
		})
	}
}

type signupRequest struct {
	UserID string  `json:"user_id"`
	Email  string  `json:"email"`
	Plan   string  `json:"plan"`
	Amount float64 `json:"amount"`
}

func signup(client *mbuzz.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
			return
		}

		ctx := mbuzz.WithUserID(r.Context(), req.UserID)
		identified := client.Identify(ctx, req.UserID, mbuzz.IdentifyOptions{
			Traits: map[string]any{"email": req.Email, "plan": req.Plan},
		})
		conv, converted := client.Conversion(ctx, "signup", mbuzz.ConversionOptions{
			Revenue:       &req.Amount,
			IsAcquisition: boolPtr(true),
			Properties:    map[string]any{"plan": req.Plan},
		})

		writeJSON(w, http.StatusCreated, map[string]any{
			"identified":    identified,
			"converted":     converted,
			"conversion_id": conv.ConversionID,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func boolPtr(v bool) *bool { return &v }
