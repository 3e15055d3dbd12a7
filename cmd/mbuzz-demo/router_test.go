package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mbuzz "github.com/mbuzz/mbuzz-go"
	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/requestid"
)

type trackingAPI struct {
	mu    sync.Mutex
	paths []string
}

func (a *trackingAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.paths = append(a.paths, r.URL.Path)
	a.mu.Unlock()

	switch r.URL.Path {
	case "/events":
		_, _ = io.WriteString(w, `{"events":[{"id":"evt_demo"}]}`)
	case "/conversions":
		_, _ = io.WriteString(w, `{"conversion":{"id":"conv_demo"}}`)
	default:
		w.WriteHeader(http.StatusAccepted)
	}
}

func (a *trackingAPI) Paths() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.paths...)
}

func newTestRouter(t *testing.T) (http.Handler, *mbuzz.Client, *trackingAPI) {
	t.Helper()

	api := &trackingAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIKey = "sk_demo"
	cfg.APIURL = srv.URL

	ips := clientip.New()
	client, err := mbuzz.New(cfg, mbuzz.WithClientIP(ips))
	require.NoError(t, err)
	return newRouter(client, ips, logger.Discard()), client, api
}

func TestRouter_Dashboard(t *testing.T) {
	t.Parallel()

	router, client, api := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard?tab=billing", nil))
	require.NoError(t, client.Close(context.Background()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	assert.Len(t, rec.Result().Cookies(), 2)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["tracked"])
	assert.Equal(t, "evt_demo", body["event_id"])
	assert.Len(t, body["visitor_id"], 64)

	assert.ElementsMatch(t, []string{"/events", "/sessions"}, api.Paths())
}

func TestRouter_Signup(t *testing.T) {
	t.Parallel()

	router, client, api := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"user_id":"u_1","plan":"pro","amount":29}`))
	router.ServeHTTP(rec, req)
	require.NoError(t, client.Close(context.Background()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"identified":true,"converted":true,"conversion_id":"conv_demo"}`, rec.Body.String())
	assert.Contains(t, api.Paths(), "/identify")
	assert.Contains(t, api.Paths(), "/conversions")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_HealthIsNotTracked(t *testing.T) {
	t.Parallel()

	router, client, api := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, client.Close(context.Background()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, api.Paths())
}

func TestRouter_MetricsIsNotTracked(t *testing.T) {
	t.Parallel()

	router, client, api := newTestRouter(t)

	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("User-Agent", "Prometheus/2.53")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	}
	require.NoError(t, client.Close(context.Background()))

	assert.Empty(t, api.Paths())
}
