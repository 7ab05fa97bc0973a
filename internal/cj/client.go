package cj

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/metrics"
)

const accessTokenHeader = "CJ-Access-Token"

// Client executes authenticated business calls against the CJ API. Every
// call obtains a token from the TokenProvider first; the token is never
// cached at this layer. Outcomes are classified into network failures,
// *HTTPError (non-200 status), and *APIError (vendor success flag false).
// No automatic retry on either: they are terminal per call.
type Client struct {
	tokens      TokenProvider
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the default CJ API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every Execute() call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a CJ API client drawing tokens from the given provider.
func NewClient(tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		tokens:  tokens,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute dispatches a single CJ API call and classifies the outcome.
// The returned envelope's Data field is the raw vendor payload.
func (c *Client) Execute(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*Envelope, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.CJDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.CJDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting access token: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set(accessTokenHeader, token)
	req.Header.Set("Content-Type", "application/json")

	metrics.CJAPICallsTotal.Inc()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CJAPIErrorsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("executing CJ request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.CJAPIErrorsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.CJAPIErrorsTotal.WithLabelValues("http").Inc()
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		metrics.CJAPIErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("parsing CJ response: %w", err)
	}

	if !env.OK() {
		metrics.CJAPIErrorsTotal.WithLabelValues("api").Inc()
		return nil, &APIError{Code: env.Code, Message: env.Message}
	}

	return &env, nil
}
