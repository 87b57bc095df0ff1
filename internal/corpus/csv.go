// Package corpus loads and merges the normalized document corpus from CSV
// exports (website scrape + Google Docs pulls).
package corpus

import (
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"uploadai/internal/domain"
)

// LoadFile reads one corpus CSV. A missing file is not an error: it yields an
// empty batch, so a deployment without the gdocs export still builds.
func LoadFile(path, defaultSource string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()
	return read(f, defaultSource)
}

func read(r io.Reader, defaultSource string) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = stripBOM(header[0])
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var records []domain.Record
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		field := func(name string) string {
			i, ok := colIdx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		rec := domain.Record{
			ID:          field("id"),
			URL:         field("url"),
			Title:       field("title"),
			Section:     field("section"),
			Content:     field("content"),
			PublishedAt: field("published_at"),
			UpdatedAt:   field("updated_at"),
			Tags:        field("tags"),
			Source:      field("source"),
		}
		if rec.Source == "" {
			rec.Source = defaultSource
		}
		records = append(records, rec)
	}
	return records, nil
}

// Merge concatenates batches into one corpus, dropping records with empty
// content and assigning ids to records that lack one.
func Merge(batches ...[]domain.Record) []domain.Record {
	var merged []domain.Record
	for _, batch := range batches {
		for _, rec := range batch {
			if rec.Content == "" {
				continue
			}
			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			merged = append(merged, rec)
		}
	}
	return merged
}

// Hash returns a stable fingerprint of a corpus snapshot. The index builder
// uses it as the build identifier tying the persisted artifacts together.
func Hash(records []domain.Record) string {
	h := sha1.New()
	for _, rec := range records {
		io.WriteString(h, rec.ID)
		io.WriteString(h, "\x00")
		io.WriteString(h, rec.URL)
		io.WriteString(h, "\x00")
		io.WriteString(h, rec.Content)
		io.WriteString(h, "\x1e")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// UTF-8 BOM left behind by some spreadsheet exports.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
