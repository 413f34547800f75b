package tmdb

import (
	"context"
	"time"

	"resty.dev/v3"
)

// Transport performs a blocking GET and returns the body of a 2xx response.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// RestyTransport is the production Transport.
type RestyTransport struct {
	client *resty.Client
}

// TransportOption customises a RestyTransport.
type TransportOption func(*resty.Client)

// WithLogger routes resty's own warnings into the application log instead of
// stderr, which the terminal UI owns.
func WithLogger(l resty.Logger) TransportOption {
	return func(c *resty.Client) {
		if l != nil {
			c.SetLogger(l)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) TransportOption {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader("User-Agent", ua)
		}
	}
}

// NewRestyTransport builds a transport with the given per-request timeout.
// Retries are disabled; a failed request is reported once.
func NewRestyTransport(timeout time.Duration, opts ...TransportOption) *RestyTransport {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "popular-movies")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return &RestyTransport{client: client}
}

// Get implements Transport.
func (t *RestyTransport) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Bytes(), nil
}

// Close releases idle connections held by the underlying client.
func (t *RestyTransport) Close() error {
	return t.client.Close()
}
