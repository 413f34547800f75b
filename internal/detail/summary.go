// Package detail turns the raw movie detail document into display rows.
package detail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/tidwall/gjson"

	"github.com/atomicstack/popular-movies/internal/format/table"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

// Summary is the subset of a detail document worth showing. Every field is
// optional; missing or mistyped fields stay at their zero value.
type Summary struct {
	ID            string
	Title         string
	OriginalTitle string
	Tagline       string
	Overview      string
	ReleaseDate   string
	Runtime       int
	Rating        float64
	Votes         int64
	Genres        []string
	PosterPath    string
	Homepage      string
}

// Summarize reads a Summary out of payload. Invalid JSON yields an empty
// Summary.
func Summarize(payload tmdb.DetailPayload) Summary {
	if !gjson.ValidBytes(payload) {
		return Summary{}
	}
	doc := gjson.ParseBytes(payload)
	s := Summary{
		Title:         str(doc, "title"),
		OriginalTitle: str(doc, "original_title"),
		Tagline:       str(doc, "tagline"),
		Overview:      str(doc, "overview"),
		ReleaseDate:   str(doc, "release_date"),
		PosterPath:    str(doc, "poster_path"),
		Homepage:      str(doc, "homepage"),
	}
	if id := doc.Get("id"); id.Type == gjson.Number || id.Type == gjson.String {
		s.ID = id.String()
	}
	if v := doc.Get("runtime"); v.Type == gjson.Number {
		s.Runtime = int(v.Int())
	}
	if v := doc.Get("vote_average"); v.Type == gjson.Number {
		s.Rating = v.Float()
	}
	if v := doc.Get("vote_count"); v.Type == gjson.Number {
		s.Votes = v.Int()
	}
	for _, g := range doc.Get("genres.#.name").Array() {
		if g.Type == gjson.String && g.Str != "" {
			s.Genres = append(s.Genres, g.Str)
		}
	}
	return s
}

func str(doc gjson.Result, path string) string {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.Str)
}

// Heading is the title line, falling back to the original title and then
// the id.
func (s Summary) Heading() string {
	switch {
	case s.Title != "":
		if s.OriginalTitle != "" && s.OriginalTitle != s.Title {
			return fmt.Sprintf("%s (%s)", s.Title, s.OriginalTitle)
		}
		return s.Title
	case s.OriginalTitle != "":
		return s.OriginalTitle
	case s.ID != "":
		return "#" + s.ID
	}
	return "Untitled"
}

// Rows returns label/value pairs for the populated fields.
func (s Summary) Rows() [][]string {
	var rows [][]string
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, value})
		}
	}
	add("Released", s.ReleaseDate)
	if s.Rating > 0 || s.Votes > 0 {
		rating := strconv.FormatFloat(s.Rating, 'f', 1, 64) + "/10"
		if s.Votes > 0 {
			rating += fmt.Sprintf(" (%d votes)", s.Votes)
		}
		add("Rating", rating)
	}
	if s.Runtime > 0 {
		add("Runtime", formatRuntime(s.Runtime))
	}
	add("Genres", strings.Join(s.Genres, ", "))
	add("Tagline", s.Tagline)
	add("Poster", s.PosterPath)
	add("Homepage", s.Homepage)
	return rows
}

func formatRuntime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// Lines renders the aligned rows followed by the overview wrapped to width.
// A width of zero or less disables wrapping.
func (s Summary) Lines(width int) []string {
	lines := table.Format(s.Rows(), []table.Alignment{table.AlignRight, table.AlignLeft})
	if width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}
	if s.Overview != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		overview := s.Overview
		if width > 0 {
			overview = ansi.Wordwrap(overview, width, "")
		}
		lines = append(lines, strings.Split(overview, "\n")...)
	}
	return lines
}
