package tmdb

import (
	"context"
	"errors"
	"net/url"
)

const (
	opFetchCatalog = "fetch catalog"
	opFetchDetail  = "fetch detail"
)

// Client fetches catalog pages and movie details.
type Client struct {
	transport Transport
}

// NewClient wraps a Transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// FetchCatalog requests url and parses the first page of results. An empty
// result list is not an error.
func (c *Client) FetchCatalog(ctx context.Context, url string) ([]CatalogItem, error) {
	body, err := c.get(ctx, opFetchCatalog, url)
	if err != nil {
		return nil, err
	}
	items, err := ParseCatalog(body)
	if err != nil {
		return nil, &FetchError{Kind: KindParse, Op: opFetchCatalog, URL: url, Err: err}
	}
	return items, nil
}

// FetchDetail requests url and returns the body untouched once it is known to
// be valid JSON.
func (c *Client) FetchDetail(ctx context.Context, url string) (DetailPayload, error) {
	body, err := c.get(ctx, opFetchDetail, url)
	if err != nil {
		return nil, err
	}
	payload, err := ParseDetail(body)
	if err != nil {
		return nil, &FetchError{Kind: KindParse, Op: opFetchDetail, URL: url, Err: err}
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	if c == nil || c.transport == nil {
		return nil, &FetchError{Kind: KindNetwork, Op: op, URL: rawURL, Err: errors.New("no transport configured")}
	}
	body, err := c.transport.Get(ctx, rawURL)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = RedactURL(urlErr.URL)
		}
		fe := &FetchError{Kind: KindNetwork, Op: op, URL: rawURL, Err: err}
		var status *StatusError
		if errors.As(err, &status) {
			fe.Status = status.Code
		}
		return nil, fe
	}
	return body, nil
}
