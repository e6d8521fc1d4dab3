// Package httpx is the shared HTTP transport to upstream engines: a bounded
// connection pool with a short per-request timeout that is independent of the
// dispatcher-level deadlines.
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultMaxConns = 10
)

// RequestSpec describes one upstream request built by an engine adapter.
type RequestSpec struct {
	Method  string
	URL     string
	Header  http.Header
	Body    []byte
	Cookies []*http.Cookie
}

// Response is the upstream response handed back to the adapter. FinalURL is
// the URL after redirects and is used to resolve relative result links.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	FinalURL   *url.URL
}

type Config struct {
	// Timeout bounds a single request including body read. Zero means the
	// default of 5s.
	Timeout time.Duration
	// MaxConns bounds concurrent connections per upstream host. Zero
	// means the default of 10.
	MaxConns int
}

// Client is safe for concurrent use.
type Client struct {
	hc      *http.Client
	timeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}

	transport := &http.Transport{
		MaxConnsPerHost:     cfg.MaxConns,
		MaxIdleConnsPerHost: cfg.MaxConns,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		hc:      &http.Client{Transport: transport},
		timeout: cfg.Timeout,
	}
}

// Do performs the request described by spec. The per-request timeout applies
// on top of ctx, whichever expires first cancels the request.
func (c *Client) Do(ctx context.Context, spec *RequestSpec) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if len(spec.Body) > 0 {
		body = bytes.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, spec.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range spec.Header {
		req.Header[key] = values
	}
	for _, cookie := range spec.Cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
		FinalURL:   resp.Request.URL,
	}, nil
}
