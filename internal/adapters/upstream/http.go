package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "upstream_requests_total",
	Help: "Requests issued to external services, by service and result",
}, []string{"service", "result"})

// StatusError is returned for upstream responses with a 4xx/5xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client is a small HTTP helper shared by the geocoding and routing adapters.
// It is safe for concurrent use.
type Client struct {
	service     string
	session     *http.Client
	userAgent   string
	headers     http.Header
	maxAttempts int
	backoff     time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.session = c }
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

// WithHeader adds a header sent on every request, e.g. an API key.
func WithHeader(key, value string) Option {
	return func(cl *Client) { cl.headers.Set(key, value) }
}

// WithMaxAttempts sets how many times retryable failures are attempted.
// A value of 1 disables retries.
func WithMaxAttempts(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.maxAttempts = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(cl *Client) { cl.backoff = d }
}

func NewClient(service string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		service:     service,
		session:     &http.Client{Timeout: timeout},
		headers:     http.Header{},
		maxAttempts: 1,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header[k] = v
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(c.service, "transport_error").Inc()
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		requestsTotal.WithLabelValues(c.service, "status_error").Inc()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	requestsTotal.WithLabelValues(c.service, "ok").Inc()
	return resp, nil
}

// DoWithRetry retries transient failures (connection errors, 429 and 5xx
// responses) using exponential backoff while respecting context
// cancellation. Timeouts are never retried.
func (c *Client) DoWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	if IsTimeout(err) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsTimeout reports whether err comes from a request deadline being exceeded.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
