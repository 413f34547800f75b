package tmdb

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
)

// DetailPayload is the raw JSON document returned by the detail endpoint.
// It is handed to the presentation layer without a schema.
type DetailPayload []byte

func (p DetailPayload) String() string {
	return string(p)
}

// ParseDetail checks that body is a JSON document and returns a private copy.
func ParseDetail(body []byte) (DetailPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, errors.New("malformed JSON")
	}
	out := make(DetailPayload, len(trimmed))
	copy(out, trimmed)
	return out, nil
}
