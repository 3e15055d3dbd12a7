package events_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/delivery"
	"github.com/mbuzz/mbuzz-go/pkg/events"
)

type apiCall struct {
	path string
	body map[string]any
}

// fakeAPI answers every path with the configured body and records calls.
func fakeAPI(t *testing.T, status int, responses map[string]string) (*events.Service, <-chan apiCall, *atomic.Int32) {
	t.Helper()

	calls := make(chan apiCall, 16)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		c := apiCall{path: r.URL.Path}
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		calls <- c
		w.WriteHeader(status)
		_, _ = io.WriteString(w, responses[r.URL.Path])
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIKey = "sk_test"
	cfg.APIURL = srv.URL
	svc := events.NewService(delivery.New(cfg), events.WithClock(func() time.Time { return fixedNow }))
	return svc, calls, &hits
}

func TestService_Track(t *testing.T) {
	t.Parallel()

	t.Run("returns the event id", func(t *testing.T) {
		t.Parallel()
		svc, calls, _ := fakeAPI(t, http.StatusAccepted, map[string]string{
			"/events": `{"accepted":1,"events":[{"id":"evt_abc","status":"accepted"}]}`,
		})

		res, ok := svc.Track(context.Background(), events.TrackOptions{
			VisitorID: "v1",
			SessionID: "s1",
			EventType: "signup",
		})
		require.True(t, ok)
		assert.Equal(t, events.TrackResult{EventID: "evt_abc", EventType: "signup", VisitorID: "v1", SessionID: "s1"}, res)

		c := <-calls
		assert.Equal(t, "/events", c.path)
		require.Len(t, c.body["events"], 1)
		ev := c.body["events"].([]any)[0].(map[string]any)
		assert.Equal(t, "signup", ev["event_type"])
		assert.Equal(t, "2025-03-14T08:26:53.589Z", ev["timestamp"])
	})

	t.Run("missing id is a failure", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := fakeAPI(t, http.StatusOK, map[string]string{"/events": `{"events":[]}`})

		_, ok := svc.Track(context.Background(), events.TrackOptions{VisitorID: "v1", EventType: "signup"})
		assert.False(t, ok)
	})

	t.Run("invalid input makes no call", func(t *testing.T) {
		t.Parallel()
		svc, _, hits := fakeAPI(t, http.StatusOK, nil)

		_, ok := svc.Track(context.Background(), events.TrackOptions{EventType: "signup"})
		assert.False(t, ok)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := fakeAPI(t, http.StatusInternalServerError, map[string]string{
			"/events": `{"events":[{"id":"evt_abc"}]}`,
		})

		_, ok := svc.Track(context.Background(), events.TrackOptions{UserID: "u1", EventType: "signup"})
		assert.False(t, ok)
	})
}

func TestService_Conversion(t *testing.T) {
	t.Parallel()

	t.Run("returns id and attribution", func(t *testing.T) {
		t.Parallel()
		svc, calls, _ := fakeAPI(t, http.StatusCreated, map[string]string{
			"/conversions": `{"conversion":{"id":"conv_1"},"attribution":{"model":"linear"}}`,
		})

		res, ok := svc.Conversion(context.Background(), events.ConversionOptions{
			VisitorID:      "v1",
			ConversionType: "purchase",
			Revenue:        events.Float(49.99),
		})
		require.True(t, ok)
		assert.Equal(t, "conv_1", res.ConversionID)
		assert.Equal(t, map[string]any{"model": "linear"}, res.Attribution)

		c := <-calls
		conv := c.body["conversion"].(map[string]any)
		assert.Equal(t, "USD", conv["currency"])
		assert.InDelta(t, 49.99, conv["revenue"], 0.0001)
	})

	t.Run("missing id is a failure", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := fakeAPI(t, http.StatusOK, map[string]string{"/conversions": `{"conversion":{}}`})

		_, ok := svc.Conversion(context.Background(), events.ConversionOptions{UserID: "u", ConversionType: "purchase"})
		assert.False(t, ok)
	})

	t.Run("invalid input makes no call", func(t *testing.T) {
		t.Parallel()
		svc, _, hits := fakeAPI(t, http.StatusOK, nil)

		_, ok := svc.Conversion(context.Background(), events.ConversionOptions{ConversionType: "purchase"})
		assert.False(t, ok)
		assert.Equal(t, int32(0), hits.Load())
	})
}

func TestService_Identify(t *testing.T) {
	t.Parallel()

	svc, calls, hits := fakeAPI(t, http.StatusOK, nil)

	assert.True(t, svc.Identify(context.Background(), events.IdentifyOptions{
		UserID:    "42",
		VisitorID: "v1",
		Traits:    map[string]any{"email": "a@b.test"},
	}))
	c := <-calls
	assert.Equal(t, "/identify", c.path)
	assert.Equal(t, "42", c.body["user_id"])
	assert.Equal(t, map[string]any{"email": "a@b.test"}, c.body["traits"])

	assert.False(t, svc.Identify(context.Background(), events.IdentifyOptions{VisitorID: "v1"}))
	assert.Equal(t, int32(1), hits.Load())
}

func TestService_CreateSession(t *testing.T) {
	t.Parallel()

	svc, calls, hits := fakeAPI(t, http.StatusAccepted, nil)

	assert.True(t, svc.CreateSession(context.Background(), events.SessionOptions{
		VisitorID: "v1",
		SessionID: "s1",
		URL:       "https://shop.test/dashboard",
		Referrer:  "https://google.com/",
	}))
	c := <-calls
	assert.Equal(t, "/sessions", c.path)
	assert.Equal(t, map[string]any{
		"visitor_id": "v1",
		"session_id": "s1",
		"url":        "https://shop.test/dashboard",
		"referrer":   "https://google.com/",
		"started_at": "2025-03-14T08:26:53.589Z",
	}, c.body["session"])

	assert.False(t, svc.CreateSession(context.Background(), events.SessionOptions{VisitorID: "v1", SessionID: "s1"}))
	assert.Equal(t, int32(1), hits.Load())
}
