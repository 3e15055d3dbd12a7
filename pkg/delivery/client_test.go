package delivery_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/delivery"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

type recorder struct {
	mu      sync.Mutex
	results []delivery.Result
}

func (r *recorder) hook(res delivery.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) last(t *testing.T) delivery.Result {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.results)
	return r.results[len(r.results)-1]
}

func testConfig(url string) config.Config {
	cfg := config.Default()
	cfg.APIKey = "sk_test_123"
	cfg.APIURL = url
	cfg.Timeout = 2 * time.Second
	return cfg
}

func TestClient_Post(t *testing.T) {
	t.Parallel()

	t.Run("sends json with credentials", func(t *testing.T) {
		t.Parallel()

		type captured struct {
			method string
			path   string
			header http.Header
			body   map[string]any
		}
		got := make(chan captured, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := captured{method: r.Method, path: r.URL.Path, header: r.Header.Clone()}
			_ = json.NewDecoder(r.Body).Decode(&c.body)
			got <- c
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		client := delivery.New(testConfig(srv.URL + "/api/v1"))
		ok := client.Post(context.Background(), "/sessions", map[string]any{"session": map[string]any{"visitor_id": "v1"}})
		require.True(t, ok)

		c := <-got
		assert.Equal(t, http.MethodPost, c.method)
		assert.Equal(t, "/api/v1/sessions", c.path)
		assert.Equal(t, "Bearer sk_test_123", c.header.Get("Authorization"))
		assert.Equal(t, "application/json", c.header.Get("Content-Type"))
		assert.Equal(t, "mbuzz-go/"+delivery.Version, c.header.Get("User-Agent"))
		assert.Equal(t, map[string]any{"session": map[string]any{"visitor_id": "v1"}}, c.body)
	})

	t.Run("joins base url and path regardless of slashes", func(t *testing.T) {
		t.Parallel()

		paths := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths <- r.URL.Path
		}))
		defer srv.Close()

		client := delivery.New(testConfig(srv.URL + "/api/v1/"))
		require.True(t, client.Post(context.Background(), "identify", map[string]string{}))
		assert.Equal(t, "/api/v1/identify", <-paths)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.UserAgent()
		}))
		defer srv.Close()

		client := delivery.New(testConfig(srv.URL), delivery.WithUserAgent("demo/1"))
		require.True(t, client.Post(context.Background(), "/events", struct{}{}))
		assert.Equal(t, "demo/1", <-agents)
	})
}

func TestClient_Post_NoNetworkWhenInactive(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"disabled", func(c *config.Config) { c.Enabled = false }, delivery.ErrDisabled},
		{"missing key", func(c *config.Config) { c.APIKey = "" }, delivery.ErrNotConfigured},
		{"blank key", func(c *config.Config) { c.APIKey = "   " }, delivery.ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(srv.URL)
			tt.mutate(&cfg)

			rec := &recorder{}
			client := delivery.New(cfg, delivery.WithOnResult(rec.hook))

			assert.False(t, client.Enabled())
			assert.False(t, client.Post(context.Background(), "/events", map[string]any{}))

			_, ok := delivery.PostWithResponse[map[string]any](context.Background(), client, "/events", map[string]any{})
			assert.False(t, ok)
			assert.ErrorIs(t, rec.last(t).Err, tt.wantErr)
		})
	}

	assert.Equal(t, int32(0), hits.Load())
}

func TestClient_Post_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusAccepted, true},
		{http.StatusNoContent, true},
		{299, true},
		{http.StatusMultipleChoices, false},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusUnprocessableEntity, false},
		{http.StatusInternalServerError, false},
		{http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			rec := &recorder{}
			client := delivery.New(testConfig(srv.URL), delivery.WithOnResult(rec.hook))

			assert.Equal(t, tt.want, client.Post(context.Background(), "/events", map[string]any{}))

			res := rec.last(t)
			assert.Equal(t, tt.status, res.StatusCode)
			if !tt.want {
				assert.ErrorIs(t, res.Err, delivery.ErrStatus)
				assert.Equal(t, delivery.OutcomeStatusError, delivery.Outcome(res.Err))
			}
		})
	}
}

func TestClient_Post_Timeout(t *testing.T) {
	t.Parallel()

	aborted := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
			close(aborted)
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond

	rec := &recorder{}
	client := delivery.New(cfg, delivery.WithOnResult(rec.hook))

	start := time.Now()
	ok := client.Post(context.Background(), "/events", map[string]any{})
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Less(t, elapsed, 2*time.Second)
	assert.ErrorIs(t, rec.last(t).Err, delivery.ErrTimeout)

	select {
	case <-aborted:
	case <-time.After(3 * time.Second):
		t.Fatal("in-flight request was not aborted")
	}
}

func TestClient_Post_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	rec := &recorder{}
	client := delivery.New(testConfig(srv.URL), delivery.WithOnResult(rec.hook))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, client.Post(ctx, "/events", map[string]any{}))
	err := rec.last(t).Err
	assert.ErrorIs(t, err, delivery.ErrTransport)
	assert.NotErrorIs(t, err, delivery.ErrTimeout)
}

func TestClient_Post_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	rec := &recorder{}
	client := delivery.New(testConfig(url), delivery.WithOnResult(rec.hook))

	assert.False(t, client.Post(context.Background(), "/events", map[string]any{}))
	assert.Equal(t, delivery.OutcomeTransportError, delivery.Outcome(rec.last(t).Err))
}

func TestClient_Post_EncodeError(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	rec := &recorder{}
	client := delivery.New(testConfig(srv.URL), delivery.WithOnResult(rec.hook))

	assert.False(t, client.Post(context.Background(), "/events", map[string]any{"ch": make(chan int)}))
	assert.ErrorIs(t, rec.last(t).Err, delivery.ErrEncode)
	assert.Equal(t, int32(0), hits.Load())
}

func TestPostWithResponse(t *testing.T) {
	t.Parallel()

	type eventsResponse struct {
		Accepted int `json:"accepted"`
		Events   []struct {
			ID string `json:"id"`
		} `json:"events"`
	}

	tests := []struct {
		name    string
		status  int
		body    string
		wantOK  bool
		wantID  string
		wantErr error
	}{
		{name: "decodes body", status: 202, body: `{"accepted":1,"events":[{"id":"evt_1"}]}`, wantOK: true, wantID: "evt_1"},
		{name: "malformed body", status: 200, body: `{"accepted":`, wantErr: delivery.ErrDecode},
		{name: "empty body", status: 200, body: ``, wantErr: delivery.ErrDecode},
		{name: "error status with body", status: 422, body: `{"error":"invalid"}`, wantErr: delivery.ErrStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			rec := &recorder{}
			client := delivery.New(testConfig(srv.URL), delivery.WithOnResult(rec.hook))

			resp, ok := delivery.PostWithResponse[eventsResponse](context.Background(), client, "/events", map[string]any{})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Len(t, resp.Events, 1)
				assert.Equal(t, tt.wantID, resp.Events[0].ID)
				return
			}
			assert.Zero(t, resp)
			assert.ErrorIs(t, rec.last(t).Err, tt.wantErr)
		})
	}
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()

	fail := atomic.Bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := delivery.NewMetrics(reg)
	client := delivery.New(testConfig(srv.URL), delivery.WithMetrics(metrics))

	require.True(t, client.Post(context.Background(), "/events", map[string]any{}))
	require.True(t, client.Post(context.Background(), "events", map[string]any{}))
	fail.Store(true)
	require.False(t, client.Post(context.Background(), "/events", map[string]any{}))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests().WithLabelValues("/events", delivery.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests().WithLabelValues("/events", delivery.OutcomeStatusError)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Duration()))
}

func TestClient_CircuitBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := &recorder{}
	client := delivery.New(testConfig(srv.URL),
		delivery.WithOnResult(rec.hook),
		delivery.WithCircuitBreaker(gobreaker.Settings{
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 2
			},
		}),
	)

	for range 2 {
		assert.False(t, client.Post(context.Background(), "/events", map[string]any{}))
	}
	assert.False(t, client.Post(context.Background(), "/events", map[string]any{}))

	assert.Equal(t, int32(2), hits.Load())
	assert.ErrorIs(t, rec.last(t).Err, delivery.ErrCircuitOpen)
}

func TestClient_Tracing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	client := delivery.New(testConfig(srv.URL), delivery.WithTracing())
	resp, ok := delivery.PostWithResponse[map[string]bool](context.Background(), client, "/identify", map[string]any{})
	require.True(t, ok)
	assert.True(t, resp["ok"])
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	t.Run("logs when debug is on", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cfg := testConfig(srv.URL)
		cfg.Debug = true
		client := delivery.New(cfg, delivery.WithLogger(logger.New(logger.WithOutput(&buf), logger.WithDebug(true))))

		assert.False(t, client.Post(context.Background(), "/events", map[string]any{"event_type": "signup"}))
		assert.Contains(t, buf.String(), "mbuzz request")
		assert.Contains(t, buf.String(), "signup")
		assert.Contains(t, buf.String(), "mbuzz call failed")
	})

	t.Run("silent when debug is off", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		client := delivery.New(testConfig(srv.URL), delivery.WithLogger(logger.New(logger.WithOutput(&buf), logger.WithDebug(true))))

		assert.False(t, client.Post(context.Background(), "/events", map[string]any{}))
		assert.Empty(t, buf.String())
	})
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, delivery.OutcomeSuccess, delivery.Outcome(nil))
	assert.Equal(t, delivery.OutcomeTimeout, delivery.Outcome(delivery.ErrTimeout))
	assert.Equal(t, delivery.OutcomeCircuitOpen, delivery.Outcome(delivery.ErrCircuitOpen))
	assert.Equal(t, delivery.OutcomeTransportError, delivery.Outcome(io.ErrUnexpectedEOF))
}
