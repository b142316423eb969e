// Package notion is a small client for the parts of the Notion REST API that
// brain uses: creating pages with block children, appending blocks, and
// searching.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries bounds retries of rate-limited requests.
	MaxRetries = 3

	// MaxBlocksPerRequest is the API limit on children per create/append call.
	MaxBlocksPerRequest = 100
)

// Options configures a Client.
type Options struct {
	Token   string
	BaseURL string
	Version string
	// RequestsPerSecond defaults to DefaultRate.
	RequestsPerSecond float64
	// HTTPClient overrides the transport. The bearer token is still added.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Notion API.
type Client struct {
	http    *http.Client
	baseURL string
	version string
	limiter *RateLimiter
	log     *slog.Logger
}

// NewClient creates a client authenticating with a static bearer token.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	ctx := context.Background()
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = DefaultTimeout

	return &Client{
		http:    hc,
		baseURL: base,
		version: version,
		limiter: NewRateLimiter(opts.RequestsPerSecond),
		log:     log,
	}
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
// Rate-limited requests are retried after the server-provided delay.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Notion-Version", c.version)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.log.Debug("notion request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

		if delay, limited := c.limiter.Observe(resp); limited && attempt < MaxRetries {
			c.log.Debug("notion rate limited; retrying", "delay", delay, "attempt", attempt+1)
			continue
		}
		if readErr != nil {
			return fmt.Errorf("read response: %w", readErr)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return decodeAPIError(resp.StatusCode, raw)
		}
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && (body.Code != "" || body.Message != "") {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}
