// Package leetcode is the transport to the problem archive: one listing call
// for the signed-in user and one GraphQL call per problem.
package leetcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/joestump/leetdeck/internal/build"
	"github.com/joestump/leetdeck/internal/logger"
	"github.com/joestump/leetdeck/internal/metrics"
)

// ErrTransport wraps every failure to obtain a usable response: network
// errors, non-2xx statuses, undecodable bodies and GraphQL errors.
var ErrTransport = errors.New("leetcode transport error")

const (
	defaultBaseURL   = "https://leetcode.com"
	defaultRetryBase = 500 * time.Millisecond
	maxResponseBytes = 32 << 20
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Session    string
	CSRFToken  string
	Rate       float64
	MaxRetries uint64
	Timeout    time.Duration
	RetryBase  time.Duration
	HTTPClient *http.Client
	Log        logger.Logger
}

// Client talks to the problem archive with the signed-in user's session.
type Client struct {
	baseURL    string
	session    string
	csrfToken  string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
	retryBase  time.Duration
	log        logger.Logger
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:    opts.BaseURL,
		session:    opts.Session,
		csrfToken:  opts.CSRFToken,
		http:       opts.HTTPClient,
		maxRetries: opts.MaxRetries,
		retryBase:  opts.RetryBase,
		log:        opts.Log,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: opts.Timeout}
	}
	if c.retryBase <= 0 {
		c.retryBase = defaultRetryBase
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	c.limiter = rate.NewLimiter(limit, 1)
	return c
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// do sends the request built by newReq, retrying network errors, 429 and 5xx
// with exponential backoff, and returns the body of a 200 response.
func (c *Client) do(ctx context.Context, op string, newReq func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))

	var body []byte
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		req, err := newReq(ctx)
		if err != nil {
			return err
		}
		c.authorize(req)

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			metrics.RemoteRequestDuration.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Debug("request failed", logger.String("operation", op), logger.Int("attempt", attempt), logger.Error(err))
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		metrics.RemoteRequestDuration.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read response: %w", err))
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = data
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			c.log.Debug("retryable status", logger.String("operation", op), logger.Int("attempt", attempt), logger.Int("status", resp.StatusCode))
			return retry.RetryableError(&statusError{code: resp.StatusCode, body: truncate(data, 200)})
		default:
			return &statusError{code: resp.StatusCode, body: truncate(data, 200)}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}
	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("User-Agent", build.UserAgent())
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.session})
	}
	if c.csrfToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.csrfToken})
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}
	if req.Header.Get("Referer") == "" {
		req.Header.Set("Referer", c.baseURL+"/")
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
