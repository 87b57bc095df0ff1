package domain

import "strings"

// Source labels for corpus records.
const (
	SourceWebsite = "website"
	SourceGDoc    = "gdoc"
)

// Record is a single normalized corpus entry. Records are immutable once
// merged into a corpus; the retrieval core never mutates them.
type Record struct {
	ID          string
	URL         string
	Title       string
	Section     string
	Content     string
	PublishedAt string
	UpdatedAt   string
	Tags        string
	Source      string
}

// DisplayTitle returns the title, falling back to the URL when blank.
func (r Record) DisplayTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return r.URL
}

// Hit is a scored retrieval result for one record.
type Hit struct {
	URL   string
	Title string
	Text  string
	Score float64
}

// WebResult is a single external search result.
type WebResult struct {
	Title   string
	URL     string
	Snippet string
}

// Citation points at a source used to ground an answer.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Answer is the final response for one question.
type Answer struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations,omitempty"`
}
