package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
	"github.com/servilink/servilink-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Marketplace = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10

	requestIDHeader = "X-Request-ID"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000.
	BaseURL string
	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration
	// RequestsPerSecond and Burst configure client-side throttling.
	RequestsPerSecond float64
	Burst             int
	// Tokens supplies the bearer token. Nil sends anonymous requests.
	Tokens oauth2.TokenSource
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the marketplace REST API.
type Client struct {
	base        *url.URL
	http        *http.Client
	tokens      oauth2.TokenSource
	rateLimiter *RateLimiter
}

// NewClient creates a client for cfg.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https: %w", cfg.BaseURL, domain.ErrInvalidInput)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if hc.Timeout == 0 {
		hc.Timeout = cfg.Timeout
		if hc.Timeout == 0 {
			hc.Timeout = DefaultTimeout
		}
	}

	rps, burst := cfg.RequestsPerSecond, cfg.Burst
	if rps <= 0 {
		rps = domain.DefaultRequestsPerSecond
	}
	if burst < 1 {
		burst = domain.DefaultBurst
	}

	return &Client{
		base:        base,
		http:        hc,
		tokens:      cfg.Tokens,
		rateLimiter: NewRateLimiter(rps, burst),
	}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// do sends one request. body, when non-nil, is encoded as JSON; out, when
// non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	c.authorize(req)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("%s %s failed after %s: %v", method, path, time.Since(start), err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	logger.Debug("%s %s -> %d (%s, id=%s)", method, u.RequestURI(), resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp, method, path, requestID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token()
	if err != nil || !tok.Valid() {
		return
	}
	tok.SetAuthHeader(req)
	logger.Debug("auth: bearer %s", logger.Redact(tok.AccessToken))
}

func (c *Client) apiError(resp *http.Response, method, path, requestID string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode == http.StatusTooManyRequests {
		c.rateLimiter.RecordRateLimit(retryAfter(resp.Header.Get("Retry-After")))
	}

	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Detail:     parseDetail(raw),
		RequestID:  requestID,
	}
	logger.Debug("%s", apiErr.Error())
	return apiErr
}

func retryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		return time.Until(at)
	}
	return 0
}

// SessionTokenSource adapts a function returning the current session token
// into an oauth2.TokenSource.
type SessionTokenSource func() string

// Token implements oauth2.TokenSource.
func (f SessionTokenSource) Token() (*oauth2.Token, error) {
	tok := f()
	if tok == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

func idPath(format string, ids ...int64) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
