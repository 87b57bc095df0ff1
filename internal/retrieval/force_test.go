package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"uploadai/internal/domain"
)

func forceCorpus() []domain.Record {
	return []domain.Record{
		{ID: "web1", URL: "https://uploaddigital.co/blog", Title: "Blog", Content: "general blog content", Source: domain.SourceWebsite},
		{ID: "doc1", URL: "https://docs.google.com/abc", Title: "Playbook", Content: "gdoc newsletter playbook content", Source: domain.SourceGDoc},
		{ID: "doc2", URL: "https://docs.google.com/def", Title: "Second doc", Content: "another gdoc", Source: domain.SourceGDoc},
	}
}

func TestForceTopicalRuleSelectsFirstGDoc(t *testing.T) {
	parts := DefaultForceRules().Apply("How do I write a newsletter?", forceCorpus())
	require.Len(t, parts, 1)
	require.Equal(t, "gdoc newsletter playbook content", parts[0])
}

func TestForceTopicalRuleMatchesTitleRegex(t *testing.T) {
	records := []domain.Record{
		{ID: "web1", URL: "https://uploaddigital.co/landing", Title: "Landing page tips", Content: "landing page content", Source: domain.SourceWebsite},
	}
	parts := DefaultForceRules().Apply("tell me about landing pages", records)
	require.Len(t, parts, 1)
	require.Equal(t, "landing page content", parts[0])
}

func TestForceTopicalRuleTruncates(t *testing.T) {
	records := []domain.Record{
		{ID: "doc1", URL: "u", Title: "Doc", Content: strings.Repeat("x", 5000), Source: domain.SourceGDoc},
	}
	parts := DefaultForceRules().Apply("gen z marketing", records)
	require.Len(t, parts, 1)
	require.Len(t, parts[0], 2000)
}

func TestForceNoTriggerNoOutput(t *testing.T) {
	require.Empty(t, DefaultForceRules().Apply("what do you charge", forceCorpus()))
}

func TestForceIDRule(t *testing.T) {
	rules := DefaultForceRules()
	rules.IDRules = []IDRule{{Trigger: "pricing", RecordID: "web1"}}
	parts := rules.Apply("what is your PRICING like", forceCorpus())
	require.Len(t, parts, 1)
	require.Equal(t, "general blog content", parts[0])
}

func TestForceIDRuleMissingRecord(t *testing.T) {
	rules := DefaultForceRules()
	rules.IDRules = []IDRule{{Trigger: "pricing", RecordID: "nope"}}
	require.Empty(t, rules.Apply("pricing please", forceCorpus()))
}
