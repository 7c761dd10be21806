package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hungie/metrics"

	"github.com/rs/zerolog"
)

// excerptLimit bounds the body excerpt carried by a TransportError
const excerptLimit = 100

// logExcerptLimit bounds the body excerpt written to the log
const logExcerptLimit = 500

// TransportError is the only error the api package returns.
type TransportError struct {
	Method      string
	URL         string
	StatusCode  int    // 0 when the request never got a response
	Status      string // status text, e.g. "500 Internal Server Error"
	ContentType string // set when the response was not JSON
	Excerpt     string // at most 100 characters of the body
	Err         error  // network or decode cause, if any
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("API call failed: %s %s: %v", e.Method, e.URL, e.Err)
	case e.StatusCode < 200 || e.StatusCode > 299:
		return fmt.Sprintf("API call failed: %s - %s", e.Status, e.Excerpt)
	case e.Err != nil:
		return fmt.Sprintf("invalid JSON response: %v. Response: %s", e.Err, e.Excerpt)
	default:
		return fmt.Sprintf("Expected JSON response but got: %s. Response: %s", e.ContentType, e.Excerpt)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClientConfig is fixed once the client is built.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // zero leaves timeouts to the transport
}

// Options describes one call
type Options struct {
	Method  string            // defaults to GET
	Headers map[string]string // merged over the default JSON content type
	Body    any               // marshalled to JSON when non-nil
	Route   string            // metrics label; defaults to the endpoint path
}

// Client executes calls against the cooking backend
type Client struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client bound to cfg.BaseURL
func NewClient(cfg ClientConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base every endpoint is resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call performs the request and returns the raw JSON body
func (c *Client) Call(ctx context.Context, endpoint string, opts Options) (json.RawMessage, error) {
	raw, _, err := c.call(ctx, endpoint, opts)
	return raw, err
}

// call does the work of Call and also reports the response status line
func (c *Client) call(ctx context.Context, endpoint string, opts Options) (json.RawMessage, *http.Response, error) {
	method := methodOrGet(opts.Method)
	route := opts.Route
	if route == "" {
		route = endpoint
		if i := strings.IndexByte(route, '?'); i >= 0 {
			route = route[:i]
		}
	}
	url := c.baseURL + endpoint

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	c.logger.Debug().Str("method", method).Str("url", url).Msg("api call")

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, route, "error").Inc()
		c.logger.Error().Err(err).Str("method", method).Str("url", url).Msg("api call error")
		return nil, nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()

	contentType := resp.Header.Get("Content-Type")
	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Str("content_type", contentType).
		Dur("latency", time.Since(start)).
		Msg("api response")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("failed to read response: %w", err),
		}
	}
	text := string(data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("status_text", resp.Status).
			Str("response", truncate(text, logExcerptLimit)).
			Str("url", url).
			Msg("api error details")
		return nil, nil, &TransportError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Excerpt:    truncate(text, excerptLimit),
		}
	}

	if !strings.Contains(contentType, "application/json") {
		c.logger.Error().
			Str("content_type", contentType).
			Str("url", url).
			Str("response", truncate(text, logExcerptLimit)).
			Msg("non-JSON response")
		return nil, nil, &TransportError{
			Method:      method,
			URL:         url,
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			ContentType: contentType,
			Excerpt:     truncate(text, excerptLimit),
		}
	}

	if !json.Valid(data) {
		return nil, nil, &TransportError{
			Method:      method,
			URL:         url,
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			ContentType: contentType,
			Excerpt:     truncate(text, excerptLimit),
			Err:         errors.New("malformed JSON body"),
		}
	}

	return json.RawMessage(data), resp, nil
}

// Do performs the request and decodes the body into out
func (c *Client) Do(ctx context.Context, endpoint string, opts Options, out any) error {
	raw, resp, err := c.call(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{
			Method:      methodOrGet(opts.Method),
			URL:         c.baseURL + endpoint,
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			ContentType: resp.Header.Get("Content-Type"),
			Excerpt:     truncate(string(raw), excerptLimit),
			Err:         fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}

func methodOrGet(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return method
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
