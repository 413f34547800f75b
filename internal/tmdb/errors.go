package tmdb

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	// KindOffline means the connectivity gate refused the fetch.
	KindOffline Kind = iota + 1
	// KindNetwork covers timeouts, refused connections and non-2xx responses.
	KindNetwork
	// KindParse covers malformed JSON and unexpected response shapes.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindOffline:
		return "offline"
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against a *FetchError of the same kind.
var (
	ErrOffline = errors.New("network unavailable")
	ErrNetwork = errors.New("network request failed")
	ErrParse   = errors.New("unexpected response")
)

// FetchError describes a failed catalog or detail fetch.
type FetchError struct {
	Kind   Kind
	Op     string
	URL    string
	Status int
	Err    error
}

// NewOfflineError reports a fetch that was never attempted because the
// host had no connectivity.
func NewOfflineError(op string) *FetchError {
	return &FetchError{Kind: KindOffline, Op: op}
}

// Error implements the error interface. The api key is never included.
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.sentinel())
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s [%s]", msg, RedactURL(e.URL))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, redactKey(e.Err.Error(), e.URL))
	}
	return msg
}

// redactKey masks the api key of rawURL wherever it appears in text. Transport
// causes such as *url.Error quote the full request URL.
func redactKey(text, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return text
	}
	key := u.Query().Get(apiKeyParam)
	if key == "" {
		return text
	}
	text = strings.ReplaceAll(text, url.QueryEscape(key), "REDACTED")
	return strings.ReplaceAll(text, key, "REDACTED")
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *FetchError) sentinel() error {
	switch e.Kind {
	case KindOffline:
		return ErrOffline
	case KindParse:
		return ErrParse
	default:
		return ErrNetwork
	}
}

// KindOf returns the kind of a *FetchError anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// StatusError is returned by transports for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected HTTP status: %s", e.Status)
	}
	return fmt.Sprintf("unexpected HTTP status: %d", e.Code)
}
