package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.1.0"

// DefaultUserAgent identifies the library to the collection API.
const DefaultUserAgent = "mbuzz-go/" + Version

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client posts JSON payloads to the collection API.
// Safe for concurrent use. Use New to create instances.
type Client struct {
	baseURL   string
	apiKey    string
	enabled   bool
	debug     bool
	timeout   time.Duration
	userAgent string
	tracing   bool

	httpClient *http.Client
	log        *slog.Logger
	metrics    *Metrics
	breaker    *gobreaker.CircuitBreaker[*response]
	onResult   ResultHook
}

type response struct {
	status int
	body   []byte
}

// New creates a Client from cfg. Zero-valued optional fields in cfg take
// their defaults; a missing API key makes every call a no-op.
func New(cfg config.Config, opts ...Option) *Client {
	cfg = cfg.WithDefaults()

	c := &Client{
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		apiKey:    strings.TrimSpace(cfg.APIKey),
		enabled:   cfg.Enabled,
		debug:     cfg.Debug,
		timeout:   cfg.Timeout,
		userAgent: DefaultUserAgent,
		log:       logger.Discard(),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tracing {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		traced := *c.httpClient
		traced.Transport = otelhttp.NewTransport(base)
		c.httpClient = &traced
	}

	return c
}

// Enabled reports whether calls will reach the network.
func (c *Client) Enabled() bool {
	return c.enabled && c.apiKey != ""
}

// Post sends payload to path and reports whether the API accepted it.
func (c *Client) Post(ctx context.Context, path string, payload any) bool {
	return c.send(ctx, path, payload, nil) == nil
}

// PostWithResponse sends payload to path and decodes the response body into T.
// The bool is false for any failure, including a body that is not valid JSON
// for T; the returned T is then the zero value.
func PostWithResponse[T any](ctx context.Context, c *Client, path string, payload any) (T, bool) {
	var out T

	err := c.send(ctx, path, payload, func(body []byte) error {
		return json.Unmarshal(body, &out)
	})
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// send performs one call. On 2xx the body is handed to decode when non-nil.
func (c *Client) send(ctx context.Context, path string, payload any, decode func([]byte) error) error {
	start := time.Now()
	path = normalizePath(path)
	result := Result{Path: path}

	defer func() {
		result.Duration = time.Since(start)
		c.report(ctx, result)
	}()

	switch {
	case c.apiKey == "":
		result.Err = ErrNotConfigured
		return result.Err
	case !c.enabled:
		result.Err = ErrDisabled
		return result.Err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrEncode, err)
		return result.Err
	}

	if c.debug {
		c.log.DebugContext(ctx, "mbuzz request",
			slog.String("path", path),
			slog.String("body", string(data)),
		)
	}

	var resp *response
	if c.breaker != nil {
		resp, err = c.breaker.Execute(func() (*response, error) {
			return c.roundTrip(ctx, path, data)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
	} else {
		resp, err = c.roundTrip(ctx, path, data)
	}
	if resp != nil {
		result.StatusCode = resp.status
	}
	if err != nil {
		result.Err = err
		return err
	}

	if c.debug {
		c.log.DebugContext(ctx, "mbuzz response",
			slog.String("path", path),
			logger.StatusCode(resp.status),
			slog.String("body", string(resp.body)),
		)
	}

	if decode != nil {
		if err := decode(resp.body); err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrDecode, err)
			return result.Err
		}
	}
	return nil
}

// roundTrip executes a single POST bounded by the configured timeout.
// A non-2xx status is returned together with the response so callers can record it.
func (c *Client) roundTrip(ctx context.Context, path string, data []byte) (*response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s: %w", ErrTimeout, c.timeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	resp := &response{status: httpResp.StatusCode, body: body}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, fmt.Errorf("%w: %d", ErrStatus, httpResp.StatusCode)
	}
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return resp, fmt.Errorf("%w reading body: %w", ErrTimeout, err)
		}
		return resp, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return resp, nil
}

func (c *Client) report(ctx context.Context, r Result) {
	c.metrics.observe(r.Path, r.Err, r.Duration)

	if c.debug && r.Err != nil {
		c.log.DebugContext(ctx, "mbuzz call failed",
			slog.String("path", r.Path),
			slog.String("outcome", Outcome(r.Err)),
			logger.StatusCode(r.StatusCode),
			logger.Error(r.Err),
		)
	}

	if c.onResult != nil {
		c.onResult(r)
	}
}

// normalizePath returns path with exactly one leading slash.
func normalizePath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}
