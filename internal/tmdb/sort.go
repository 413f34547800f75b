package tmdb

import (
	"fmt"
	"strings"
)

// SortOption selects which catalog endpoint is queried.
type SortOption int

const (
	Popularity SortOption = iota
	TopRated
)

var sortSegments = map[SortOption]string{
	Popularity: "popular",
	TopRated:   "top_rated",
}

var sortLabels = map[SortOption]string{
	Popularity: "Most popular",
	TopRated:   "Top rated",
}

// SortOptions lists every option in menu order.
func SortOptions() []SortOption {
	return []SortOption{Popularity, TopRated}
}

// Segment returns the path segment used by the catalog endpoint.
func (s SortOption) Segment() string {
	if seg, ok := sortSegments[s]; ok {
		return seg
	}
	return sortSegments[Popularity]
}

// Label returns a human readable name for menus and headers.
func (s SortOption) Label() string {
	if label, ok := sortLabels[s]; ok {
		return label
	}
	return sortLabels[Popularity]
}

func (s SortOption) String() string {
	return s.Segment()
}

// ParseSortOption maps a segment name (as accepted on the command line) to a
// SortOption.
func ParseSortOption(value string) (SortOption, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch normalized {
	case "", "popular", "popularity":
		return Popularity, nil
	case "top_rated", "toprated", "rating":
		return TopRated, nil
	}
	return Popularity, fmt.Errorf("unknown sort option %q (want popular or top_rated)", value)
}
