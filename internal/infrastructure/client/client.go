// Package client is the REST transport to the sales backend. It implements the
// store's Backend port, the analytics Source, the assistant Remote and the
// category lookup, and maps every failure onto a domain error code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
)

const (
	userAgent    = "sales-portal/1.0"
	maxRetryWait = 5 * time.Second
	maxErrorBody = 64 << 10
)

// RetryConfig controls GET retries. Mutations are never retried.
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	Multiplier float64
}

// Client talks to the sales backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	auth       *Auth
	limiter    *rate.Limiter
	retry      RetryConfig
	metrics    *Metrics
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request metrics into m
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client from configuration
func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: base,
		auth:    NewAuth(cfg.Token),
		retry: RetryConfig{
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Multiplier: 2,
		},
		logger: zap.NewNop(),
	}
	if cfg.RateLimit > 0 {
		burst := max(cfg.RateBurst, 1)
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("client")
	return c, nil
}

// SetToken swaps the bearer credential, e.g. after the user signs in again.
func (c *Client) SetToken(token string) {
	c.auth.SetToken(token)
}

type request struct {
	method string
	path   string
	route  string // metrics label, path without ids
	query  url.Values
	body   any
}

// do sends req and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	var payload []byte
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", req.method, req.path, err)
		}
		payload = b
	}

	attempts := 1
	if req.method == http.MethodGet {
		attempts += max(c.retry.MaxRetries, 0)
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.metrics.retry(req.route)
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return shared.NewTransportError(err.Error())
			}
		}
		body, err := c.send(ctx, req, payload)
		if err == nil {
			if out == nil || len(body) == 0 {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return shared.NewTransportError(fmt.Sprintf("malformed response from %s: %v", req.route, err))
			}
			return nil
		}
		lastErr = err
		if !shared.IsTransport(err) || ctx.Err() != nil {
			break
		}
		logger.L(ctx).Debug("Retryable backend failure",
			zap.String("route", req.route), zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return lastErr
}

// send performs one attempt and returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, req request, payload []byte) ([]byte, error) {
	if err := c.auth.Check(time.Now()); err != nil {
		return nil, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, shared.NewTransportError(fmt.Sprintf("rate limiter: %v", err))
		}
	}

	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := logger.GetRequestID(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}
	c.auth.Apply(httpReq)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.method, req.route, "error", time.Since(start))
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.metrics.observe(req.method, req.route, statusLabel(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	mapped := statusError(resp.StatusCode, raw)
	logger.L(ctx).Debug("Backend rejected request",
		zap.String("method", req.method),
		zap.String("route", req.route),
		zap.Int("status", resp.StatusCode),
		zap.String("code", shared.CodeOf(mapped)))
	return nil, mapped
}

func (c *Client) backoff(attempt int) time.Duration {
	base := c.retry.RetryDelay
	if base <= 0 {
		base = 200 * time.Millisecond
	}
	d := float64(base) * math.Pow(c.retry.Multiplier, float64(attempt-1))
	d = math.Min(d, float64(maxRetryWait))
	// ±20% jitter
	d += (rand.Float64()*2 - 1) * d * 0.2
	return time.Duration(d)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return shared.NewTransportError("The sales backend did not respond in time")
	}
	if errors.Is(err, context.Canceled) {
		return shared.NewTransportError("Request cancelled")
	}
	return shared.NewTransportError(fmt.Sprintf("Could not reach the sales backend: %v", err))
}
