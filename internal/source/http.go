package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestTimeout is the default timeout for a single image request.
const RequestTimeout = 10 * time.Second

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// Option configures a built-in source.
type Option func(*options)

type options struct {
	endpoint string
	client   *http.Client
}

// WithEndpoint overrides the endpoint URL.
func WithEndpoint(url string) Option {
	return func(o *options) {
		if url != "" {
			o.endpoint = url
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout sets the per-request timeout on a fresh client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.client = &http.Client{Timeout: d}
		}
	}
}

func buildOptions(endpoint string, opts []Option) options {
	o := options{
		endpoint: endpoint,
		client:   &http.Client{Timeout: RequestTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// get issues a GET to url and returns the body of a 2xx response.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
