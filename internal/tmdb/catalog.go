package tmdb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// CatalogItem is one grid cell: a poster and the id used for detail lookups.
type CatalogItem struct {
	PosterPath string
	ID         string
	// Title is optional and only used for display and filtering.
	Title string
}

// Label returns the best text to show for the item.
func (i CatalogItem) Label() string {
	if t := strings.TrimSpace(i.Title); t != "" {
		return t
	}
	if p := strings.TrimSpace(i.PosterPath); p != "" {
		return p
	}
	return "#" + i.ID
}

// ParseCatalog reads the results array of a catalog response. Every element
// must carry a string poster_path and a numeric or string id.
func ParseCatalog(body []byte) ([]CatalogItem, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", typeName(root))
	}
	results := root.Get("results")
	if !results.Exists() {
		return nil, errors.New(`missing "results"`)
	}
	if !results.IsArray() {
		return nil, fmt.Errorf(`"results" is %s, want array`, typeName(results))
	}
	elems := results.Array()
	items := make([]CatalogItem, 0, len(elems))
	for idx, elem := range elems {
		item, err := parseCatalogItem(elem)
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", idx, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseCatalogItem(elem gjson.Result) (CatalogItem, error) {
	if !elem.IsObject() {
		return CatalogItem{}, fmt.Errorf("expected object, got %s", typeName(elem))
	}
	poster := elem.Get("poster_path")
	if !poster.Exists() {
		return CatalogItem{}, errors.New(`missing "poster_path"`)
	}
	if poster.Type != gjson.String {
		return CatalogItem{}, fmt.Errorf(`"poster_path" is %s, want string`, typeName(poster))
	}
	id, err := stringifyID(elem.Get("id"))
	if err != nil {
		return CatalogItem{}, err
	}
	item := CatalogItem{PosterPath: poster.Str, ID: id}
	if title := elem.Get("title"); title.Type == gjson.String {
		item.Title = title.Str
	}
	return item, nil
}

func stringifyID(v gjson.Result) (string, error) {
	switch {
	case !v.Exists():
		return "", errors.New(`missing "id"`)
	case v.Type == gjson.String:
		if strings.TrimSpace(v.Str) == "" {
			return "", errors.New(`"id" is empty`)
		}
		return v.Str, nil
	case v.Type == gjson.Number:
		if isIntegerLiteral(v.Raw) {
			return v.Raw, nil
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf(`"id" is %s, want number or string`, typeName(v))
	}
}

func isIntegerLiteral(raw string) bool {
	s := strings.TrimPrefix(raw, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func typeName(v gjson.Result) string {
	switch {
	case !v.Exists():
		return "missing"
	case v.IsArray():
		return "array"
	case v.IsObject():
		return "object"
	}
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	return v.Type.String()
}
