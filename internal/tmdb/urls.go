package tmdb

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the movie collection root of the v3 API.
const DefaultBaseURL = "https://api.themoviedb.org/3/movie"

const apiKeyParam = "api_key"

// URLBuilder constructs request URLs for the catalog and detail endpoints.
// It is immutable once built and safe for concurrent use.
type URLBuilder struct {
	base     *url.URL
	apiKey   string
	language string
}

// BuilderOption customises a URLBuilder.
type BuilderOption func(*URLBuilder)

// WithLanguage adds a language query parameter to every URL.
func WithLanguage(lang string) BuilderOption {
	return func(b *URLBuilder) {
		b.language = strings.TrimSpace(lang)
	}
}

// NewURLBuilder validates the configured endpoint and key. Errors here are
// configuration errors and should stop the program at startup.
func NewURLBuilder(base, apiKey string, opts ...BuilderOption) (*URLBuilder, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("api key is required")
	}
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", trimmed)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", trimmed)
	}
	parsed.Fragment = ""
	b := &URLBuilder{base: parsed, apiKey: key}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// CatalogURL returns the first-page catalog URL for the given sort order.
func (b *URLBuilder) CatalogURL(sort SortOption) string {
	return b.build(sort.Segment())
}

// DetailURL returns the detail URL for a single movie id.
func (b *URLBuilder) DetailURL(id string) string {
	return b.build(url.PathEscape(strings.TrimSpace(id)))
}

// Host returns host:port of the API endpoint, defaulting the port from the
// scheme. Connectivity probes dial this address.
func (b *URLBuilder) Host() string {
	if b.base.Port() != "" {
		return b.base.Host
	}
	port := "443"
	if b.base.Scheme == "http" {
		port = "80"
	}
	return b.base.Hostname() + ":" + port
}

func (b *URLBuilder) build(segment string) string {
	u := b.base.JoinPath(segment)
	q := u.Query()
	q.Del(apiKeyParam)
	q.Set(apiKeyParam, b.apiKey)
	if b.language != "" {
		q.Set("language", b.language)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedactURL hides the api key so URLs can be logged and shown in errors.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has(apiKeyParam) {
		return raw
	}
	q.Set(apiKeyParam, "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
