package domain

import (
	"context"
	"errors"
)

// ErrEmptyQuestion is returned before any retrieval work when the incoming
// question is blank.
var ErrEmptyQuestion = errors.New("question is required")

// ErrEmptyCorpus is returned when an index build is attempted over a corpus
// with no records.
var ErrEmptyCorpus = errors.New("empty corpus")

// WebSearcher runs a site-scoped external search. Implementations collapse
// missing credentials, transient failures and empty result sets into an
// empty slice; they never fail the request.
type WebSearcher interface {
	Search(ctx context.Context, query string, num int) []WebResult
}

// PageFetcher downloads a page and returns its cleaned plain text, capped at
// maxChars. Any failure yields an empty string.
type PageFetcher interface {
	FetchText(ctx context.Context, url string, maxChars int) string
}

// Synthesizer turns an assembled context plus a question into answer text.
// It is the only external collaborator whose failure surfaces to the caller.
type Synthesizer interface {
	Synthesize(ctx context.Context, contextText, question string) (string, error)
}

// QAService is the query interface the core exposes to the rest of the system.
type QAService interface {
	AnswerQuery(ctx context.Context, question string) (Answer, error)
}
