// Package index builds and persists the retrieval index: a fitted TF-IDF
// transform, a cosine nearest-neighbor structure over the vectorized corpus,
// and the corpus snapshot itself. The three are coupled artifacts; neighbor
// positions are only meaningful against the records they were built from.
package index

import (
	"uploadai/internal/corpus"
	"uploadai/internal/domain"
)

const (
	// MaxVocabulary caps the fitted vocabulary size.
	MaxVocabulary = 120000
	// DefaultNeighbors is the neighbor count used when a query does not ask
	// for more.
	DefaultNeighbors = 10
)

// Index is the loaded, read-only retrieval index. BuildID is the corpus
// snapshot hash shared by all three artifacts.
type Index struct {
	BuildID    string
	Vectorizer *Vectorizer
	Neighbors  *Neighbors
	Records    []domain.Record
}

// Build fits the vectorizer over the corpus content, vectorizes every record
// and builds the neighbor structure. Building over an empty corpus fails
// explicitly rather than producing a degenerate zero-hit index.
func Build(records []domain.Record) (*Index, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	vectorizer := NewVectorizer(MaxVocabulary)
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Content
	}
	if err := vectorizer.Fit(texts); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(records))
	for i, text := range texts {
		vectors[i] = vectorizer.Transform(text)
	}
	return &Index{
		BuildID:    corpus.Hash(records),
		Vectorizer: vectorizer,
		Neighbors:  FitNeighbors(vectors),
		Records:    records,
	}, nil
}

// Size returns the number of indexed records.
func (ix *Index) Size() int { return len(ix.Records) }
