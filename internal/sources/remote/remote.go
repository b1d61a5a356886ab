package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"txdash/internal/core"
	"txdash/internal/sources"
)

// Ensure interface conformance
var (
	_ sources.CustomerReader    = (*Client)(nil)
	_ sources.TransactionReader = (*Client)(nil)
)

// maxBodyBytes bounds a single collection payload.
const maxBodyBytes = 16 << 20

// Client reads the customer and transaction collections from two fixed
// JSON endpoints.
type Client struct {
	httpClient      *http.Client
	customersURL    string
	transactionsURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New validates both endpoint URLs and returns a client. timeout bounds
// each request; zero means the default of 15s.
func New(customersURL, transactionsURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	for _, raw := range []string{customersURL, transactionsURL} {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint %q: %w", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", raw)
		}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		httpClient:      newHTTPClientWithPooling(timeout),
		customersURL:    strings.TrimSpace(customersURL),
		transactionsURL: strings.TrimSpace(transactionsURL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newHTTPClientWithPooling creates an HTTP client with connection pooling
// and bounded dial, TLS and header timeouts.
func newHTTPClientWithPooling(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ListCustomers fetches the customers collection.
func (c *Client) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	var out []core.Customer
	if err := c.getJSON(ctx, c.customersURL, &out); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	return out, nil
}

// ListTransactions fetches the transactions collection.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.getJSON(ctx, c.transactionsURL, &out); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", sources.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", sources.ErrFetch, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: GET %s: unexpected status %d", sources.ErrFetch, endpoint, resp.StatusCode)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: GET %s: empty body", sources.ErrFetch, endpoint)
		}
		return fmt.Errorf("%w: GET %s: decode: %v", sources.ErrFetch, endpoint, err)
	}

	slog.DebugContext(ctx, "Collection fetched",
		"url", endpoint,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
