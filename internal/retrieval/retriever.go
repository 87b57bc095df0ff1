// Package retrieval ranks corpus records against a question. Base relevance
// comes from cosine similarity in the TF-IDF space; a rule table layers
// additive boosts on top, and results are deduplicated by URL.
package retrieval

import (
	"sort"
	"strings"

	"uploadai/internal/domain"
	"uploadai/internal/index"
)

// queryExpansion is a fixed block of domain vocabulary appended to every
// query before vectorization. It biases retrieval toward the organization's
// known topic clusters so that short questions still reach the right pages.
const queryExpansion = "" +
	" services service offerings what we do solutions capabilities packages pricing" +
	" industries clients sectors verticals case studies portfolio work" +
	" email marketing newsletter subject line deliverability open rate ctr automation segmentation a/b testing" +
	" newsletter newsletters gen z gen-z attention span attention-span youth marketing" +
	" vibe marketing community community-first case study tips how-to best practices jingles earworm nostalgia landing"

// Retriever runs ranked retrieval over a loaded index.
type Retriever struct {
	index  *index.Index
	boosts []BoostRule
}

// New creates a retriever over the given index using the provided boost
// table. A nil table means no boosting.
func New(ix *index.Index, boosts []BoostRule) *Retriever {
	return &Retriever{index: ix, boosts: boosts}
}

// ExpandQuery returns the query with the fixed domain-vocabulary block
// appended. Deterministic: the same query always expands the same way.
func ExpandQuery(query string) string {
	return query + queryExpansion
}

// Retrieve returns up to k hits ordered by descending score, deduplicated by
// URL (the highest-scoring instance of each URL wins). An empty index yields
// an empty slice.
func (r *Retriever) Retrieve(query string, k int) []domain.Hit {
	if r.index == nil || r.index.Size() == 0 || k <= 0 {
		return nil
	}
	qvec := r.index.Vectorizer.Transform(ExpandQuery(query))

	// Over-fetch so URL dedup can still fill k distinct slots.
	pool := k * 3
	if pool > r.index.Size() {
		pool = r.index.Size()
	}
	dists, idxs := r.index.Neighbors.Kneighbors(qvec, pool)

	hits := make([]domain.Hit, 0, len(idxs))
	for i, idx := range idxs {
		rec := r.index.Records[idx]
		hits = append(hits, domain.Hit{
			URL:   rec.URL,
			Title: rec.DisplayTitle(),
			Text:  rec.Content,
			Score: (1 - dists[i]) + r.boost(rec),
		})
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })

	seen := make(map[string]struct{}, k)
	out := make([]domain.Hit, 0, k)
	for _, h := range hits {
		if _, dup := seen[h.URL]; dup {
			continue
		}
		seen[h.URL] = struct{}{}
		out = append(out, h)
		if len(out) >= k {
			break
		}
	}
	return out
}

func (r *Retriever) boost(rec domain.Record) float64 {
	titleURL := strings.ToLower(rec.DisplayTitle() + " " + rec.URL)
	url := strings.ToLower(rec.URL)
	total := 0.0
	for _, rule := range r.boosts {
		if rule.Match(titleURL, url) {
			total += rule.Weight
		}
	}
	return total
}
