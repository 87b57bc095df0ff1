package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uploadai/internal/domain"
	"uploadai/internal/index"
	"uploadai/internal/retrieval"
)

type fakeSearcher struct {
	results []domain.WebResult
	called  bool
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) []domain.WebResult {
	f.called = true
	return f.results
}

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) FetchText(_ context.Context, url string, maxChars int) string {
	text := f.pages[url]
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return text
}

type fakeSynth struct {
	answer  string
	err     error
	called  bool
	context string
}

func (f *fakeSynth) Synthesize(_ context.Context, contextText, _ string) (string, error) {
	f.called = true
	f.context = contextText
	return f.answer, f.err
}

func newService(t *testing.T, records []domain.Record, searcher *fakeSearcher, fetcher *fakeFetcher, synth *fakeSynth) *QAService {
	t.Helper()
	var ix *index.Index
	if len(records) > 0 {
		var err error
		ix, err = index.Build(records)
		require.NoError(t, err)
	}
	if searcher == nil {
		searcher = &fakeSearcher{}
	}
	if fetcher == nil {
		fetcher = &fakeFetcher{}
	}
	return New(ix, retrieval.DefaultBoosts(), retrieval.DefaultForceRules(), searcher, fetcher, synth, zap.NewNop().Sugar())
}

func richCorpus() []domain.Record {
	long := strings.Repeat("Email marketing strategy for growing brands. ", 20)
	return []domain.Record{
		{ID: "1", URL: "https://uploaddigital.co/services", Title: "Our Services", Content: long + "services offered", Source: domain.SourceWebsite},
		{ID: "2", URL: "https://uploaddigital.co/about", Title: "About", Content: long + "about the agency", Source: domain.SourceWebsite},
		{ID: "3", URL: "https://uploaddigital.co/blog", Title: "Blog", Content: long + "articles and tips", Source: domain.SourceWebsite},
	}
}

func TestAnswerQueryRejectsEmptyQuestion(t *testing.T) {
	synth := &fakeSynth{answer: "x"}
	svc := newService(t, richCorpus(), nil, nil, synth)
	_, err := svc.AnswerQuery(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrEmptyQuestion)
	require.False(t, synth.called)
}

func TestAnswerQueryHappyPath(t *testing.T) {
	synth := &fakeSynth{answer: "We offer email marketing."}
	svc := newService(t, richCorpus(), nil, nil, synth)
	ans, err := svc.AnswerQuery(context.Background(), "what services do you offer")
	require.NoError(t, err)
	require.Equal(t, "We offer email marketing.", ans.Answer)
	require.True(t, synth.called)
	require.NotEmpty(t, synth.context)
	require.NotEmpty(t, ans.Citations)
	require.LessOrEqual(t, len(ans.Citations), 6)
	require.Equal(t, "https://uploaddigital.co/services", ans.Citations[0].URL)
}

func TestAnswerQueryEmptyCorpusReturnsNotFound(t *testing.T) {
	synth := &fakeSynth{answer: "should not be used"}
	svc := newService(t, nil, nil, nil, synth)
	ans, err := svc.AnswerQuery(context.Background(), "anything at all")
	require.NoError(t, err)
	require.Equal(t, NotFoundMessage, ans.Answer)
	require.Empty(t, ans.Citations)
	require.False(t, synth.called, "synthesis must not run without context")
}

func TestAnswerQueryWeakLocalTriggersFallback(t *testing.T) {
	// Short records: three hits but well under the character threshold.
	records := []domain.Record{
		{ID: "1", URL: "https://uploaddigital.co/a", Title: "A", Content: "tiny snippet one", Source: domain.SourceWebsite},
		{ID: "2", URL: "https://uploaddigital.co/b", Title: "B", Content: "tiny snippet two", Source: domain.SourceWebsite},
		{ID: "3", URL: "https://uploaddigital.co/c", Title: "C", Content: "tiny snippet three", Source: domain.SourceWebsite},
	}
	searcher := &fakeSearcher{results: []domain.WebResult{
		{Title: "Ext 1", URL: "https://uploaddigital.co/ext1"},
		{Title: "Ext 2", URL: "https://uploaddigital.co/ext2"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://uploaddigital.co/ext1": "external page one text",
		"https://uploaddigital.co/ext2": "external page two text",
	}}
	synth := &fakeSynth{answer: "grounded answer"}
	svc := newService(t, records, searcher, fetcher, synth)

	ans, err := svc.AnswerQuery(context.Background(), "snippet question")
	require.NoError(t, err)
	require.True(t, searcher.called)
	require.Contains(t, synth.context, "external page one text")
	require.Contains(t, synth.context, "external page two text")
	// Citations: 3 local + 2 web.
	require.Len(t, ans.Citations, 5)
	require.Equal(t, "https://uploaddigital.co/ext1", ans.Citations[3].URL)
}

func TestAnswerQueryFallbackUnconfiguredDegradesSilently(t *testing.T) {
	records := []domain.Record{
		{ID: "1", URL: "https://uploaddigital.co/a", Title: "A", Content: "tiny snippet", Source: domain.SourceWebsite},
	}
	searcher := &fakeSearcher{} // returns nothing, like a credential-less client
	synth := &fakeSynth{answer: "still answers"}
	svc := newService(t, records, searcher, nil, synth)

	ans, err := svc.AnswerQuery(context.Background(), "snippet question")
	require.NoError(t, err)
	require.True(t, searcher.called)
	require.Equal(t, "still answers", ans.Answer)
}

func TestAnswerQueryStrongLocalSkipsFallback(t *testing.T) {
	searcher := &fakeSearcher{}
	synth := &fakeSynth{answer: "ok"}
	svc := newService(t, richCorpus(), searcher, nil, synth)
	_, err := svc.AnswerQuery(context.Background(), "email marketing strategy")
	require.NoError(t, err)
	require.False(t, searcher.called)
}

func TestAnswerQueryForcedContentComesFirst(t *testing.T) {
	records := append(richCorpus(), domain.Record{
		ID: "g1", URL: "https://docs.google.com/play", Title: "Newsletter playbook",
		Content: "FORCED-GDOC-CONTENT about newsletters", Source: domain.SourceGDoc,
	})
	synth := &fakeSynth{answer: "ok"}
	svc := newService(t, records, nil, nil, synth)
	_, err := svc.AnswerQuery(context.Background(), "how do newsletters work")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(synth.context, "FORCED-GDOC-CONTENT"),
		"forced content must lead the assembled context")
}

func TestAnswerQuerySynthesisErrorSurfaces(t *testing.T) {
	synth := &fakeSynth{err: errors.New("model unavailable")}
	svc := newService(t, richCorpus(), nil, nil, synth)
	_, err := svc.AnswerQuery(context.Background(), "what services do you offer")
	require.ErrorContains(t, err, "model unavailable")
}
