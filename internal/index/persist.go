package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"uploadai/internal/domain"
)

// Artifact file names inside the index directory.
const (
	vectorizerFile = "tfidf_vectorizer.gob"
	neighborsFile  = "knn.gob"
	recordsFile    = "records.gob"
)

// Gob snapshots with exported fields. Each carries the build id so a load
// can reject a mismatched triple.
type vectorizerArtifact struct {
	BuildID     string
	Vocabulary  map[string]int
	IDF         []float64
	MaxFeatures int
}

type neighborsArtifact struct {
	BuildID string
	Vectors [][]float64
}

type recordsArtifact struct {
	BuildID string
	Records []domain.Record
}

// Save persists the index as three coupled artifacts under dir, keyed by the
// index build id.
func (ix *Index) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := writeGob(filepath.Join(dir, vectorizerFile), vectorizerArtifact{
		BuildID:     ix.BuildID,
		Vocabulary:  ix.Vectorizer.vocabulary,
		IDF:         ix.Vectorizer.idf,
		MaxFeatures: ix.Vectorizer.maxFeatures,
	}); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, neighborsFile), neighborsArtifact{
		BuildID: ix.BuildID,
		Vectors: ix.Neighbors.vectors,
	}); err != nil {
		return err
	}
	return writeGob(filepath.Join(dir, recordsFile), recordsArtifact{
		BuildID: ix.BuildID,
		Records: ix.Records,
	})
}

// Load reads the three artifacts from dir and rejects partial or mismatched
// triples up front, rather than at first query.
func Load(dir string) (*Index, error) {
	var va vectorizerArtifact
	if err := readGob(filepath.Join(dir, vectorizerFile), &va); err != nil {
		return nil, err
	}
	var na neighborsArtifact
	if err := readGob(filepath.Join(dir, neighborsFile), &na); err != nil {
		return nil, err
	}
	var ra recordsArtifact
	if err := readGob(filepath.Join(dir, recordsFile), &ra); err != nil {
		return nil, err
	}
	if va.BuildID != na.BuildID || na.BuildID != ra.BuildID {
		return nil, fmt.Errorf("index artifacts in %s were built from different corpus snapshots (%s / %s / %s)",
			dir, short(va.BuildID), short(na.BuildID), short(ra.BuildID))
	}
	if len(na.Vectors) != len(ra.Records) {
		return nil, fmt.Errorf("index artifacts in %s disagree on corpus size (%d vectors, %d records)",
			dir, len(na.Vectors), len(ra.Records))
	}
	vectorizer := NewVectorizer(va.MaxFeatures)
	vectorizer.vocabulary = va.Vocabulary
	vectorizer.idf = va.IDF
	vectorizer.dimension = len(va.IDF)
	vectorizer.fitted = true
	return &Index{
		BuildID:    va.BuildID,
		Vectorizer: vectorizer,
		Neighbors:  FitNeighbors(na.Vectors),
		Records:    ra.Records,
	}, nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("index artifact missing: %w", err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
