// Package service wires retrieval, forced inclusion, web fallback, context
// assembly and answer synthesis into the question-answering pipeline.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"uploadai/internal/assemble"
	"uploadai/internal/domain"
	"uploadai/internal/index"
	"uploadai/internal/retrieval"
)

const (
	// TopK is the local retrieval depth per question.
	TopK = 8
	// MaxContext is the character budget for the assembled context.
	MaxContext = 9000

	// Local retrieval is weak when it yields fewer hits, or less total text,
	// than these thresholds; weak retrieval triggers the web fallback.
	weakMinHits  = 3
	weakMinChars = 1200

	// fallbackResults is how many web results the fallback pulls in.
	fallbackResults = 5
	// fallbackPageCap bounds the cleaned text taken from each fetched page.
	fallbackPageCap = 2000

	// citationCap limits citations per category (local hits, web results).
	citationCap = 3

	// NotFoundMessage is returned, without invoking synthesis, when no
	// context could be assembled at all.
	NotFoundMessage = "I couldn't find that in Upload Digital's sources yet."
)

// QAService answers questions against a loaded index, with web-search
// fallback and grounded synthesis.
type QAService struct {
	retriever  *retrieval.Retriever
	force      retrieval.ForceRules
	records    []domain.Record
	searcher   domain.WebSearcher
	fetcher    domain.PageFetcher
	synthesize domain.Synthesizer
	log        *zap.SugaredLogger
}

// New assembles the service over a loaded index and its collaborators.
func New(ix *index.Index, boosts []retrieval.BoostRule, force retrieval.ForceRules,
	searcher domain.WebSearcher, fetcher domain.PageFetcher, synth domain.Synthesizer,
	log *zap.SugaredLogger) *QAService {
	var records []domain.Record
	if ix != nil {
		records = ix.Records
	}
	return &QAService{
		retriever:  retrieval.New(ix, boosts),
		force:      force,
		records:    records,
		searcher:   searcher,
		fetcher:    fetcher,
		synthesize: synth,
		log:        log,
	}
}

// AnswerQuery runs the full pipeline for one question. A blank question is a
// precondition failure; per-item fallback failures degrade silently; only a
// synthesis failure surfaces as an error.
func (s *QAService) AnswerQuery(ctx context.Context, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, domain.ErrEmptyQuestion
	}

	// Guaranteed inclusions first so ranking noise cannot push them out.
	candidates := s.force.Apply(question, s.records)

	hits := s.retriever.Retrieve(question, TopK)
	for _, h := range hits {
		candidates = append(candidates, h.Text)
	}

	var webResults []domain.WebResult
	if weakLocal(hits) {
		webResults = s.searcher.Search(ctx, question, fallbackResults)
		s.log.Debugw("local retrieval weak, using web fallback", "hits", len(hits), "web_results", len(webResults))
		for _, wr := range webResults {
			if text := s.fetcher.FetchText(ctx, wr.URL, fallbackPageCap); text != "" {
				candidates = append(candidates, text)
			}
		}
	}

	contextText := assemble.BuildContext(assemble.Dedup(candidates), MaxContext)
	if strings.TrimSpace(contextText) == "" {
		return domain.Answer{Answer: NotFoundMessage}, nil
	}

	answer, err := s.synthesize.Synthesize(ctx, contextText, question)
	if err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Answer: answer, Citations: citations(hits, webResults)}, nil
}

// weakLocal is the fallback-trigger predicate.
func weakLocal(hits []domain.Hit) bool {
	if len(hits) < weakMinHits {
		return true
	}
	total := 0
	for _, h := range hits {
		total += len(h.Text)
	}
	return total < weakMinChars
}

func citations(hits []domain.Hit, webResults []domain.WebResult) []domain.Citation {
	var out []domain.Citation
	for i, h := range hits {
		if i >= citationCap {
			break
		}
		if h.URL != "" {
			out = append(out, domain.Citation{Title: h.Title, URL: h.URL})
		}
	}
	for i, wr := range webResults {
		if i >= citationCap {
			break
		}
		if wr.URL != "" {
			out = append(out, domain.Citation{Title: wr.Title, URL: wr.URL})
		}
	}
	return out
}
