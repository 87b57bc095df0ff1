package retrieval

import (
	"regexp"
	"strings"

	"uploadai/internal/domain"
)

// forcedTopicalCap bounds the content length contributed by a topical rule.
const forcedTopicalCap = 2000

// IDRule forces a specific record into context when its trigger substring
// appears in the lowercased question.
type IDRule struct {
	Trigger  string
	RecordID string
}

// ForceRules guarantee that known-important records reach the context for
// known-important query intents, independent of retrieval score.
type ForceRules struct {
	// IDRules are evaluated in order; each matching trigger whose record id
	// exists in the corpus contributes that record's full content.
	IDRules []IDRule
	// TopicalTriggers select the first gdoc-source record, or the first
	// record whose title matches TopicalTitle, truncated to forcedTopicalCap.
	TopicalTriggers []string
	TopicalTitle    *regexp.Regexp
}

// DefaultForceRules returns the rule tables for the live corpus. ID rules are
// populated per deployment once the seeded rows exist.
func DefaultForceRules() ForceRules {
	return ForceRules{
		IDRules: nil,
		TopicalTriggers: []string{
			"newsletter", "gen z", "gen-z", "attention span", "jingle", "community", "landing",
		},
		TopicalTitle: regexp.MustCompile(`(?i)newsletter|landing`),
	}
}

// Apply returns the content blobs to prepend unconditionally to the context
// for the given question. Absent triggers or missing ids yield nothing.
func (fr ForceRules) Apply(question string, records []domain.Record) []string {
	qlower := strings.ToLower(question)
	var parts []string

	for _, rule := range fr.IDRules {
		if !strings.Contains(qlower, rule.Trigger) {
			continue
		}
		for _, rec := range records {
			if rec.ID == rule.RecordID {
				parts = append(parts, rec.Content)
				break
			}
		}
	}

	for _, trigger := range fr.TopicalTriggers {
		if !strings.Contains(qlower, trigger) {
			continue
		}
		for _, rec := range records {
			if rec.Source == domain.SourceGDoc || (fr.TopicalTitle != nil && fr.TopicalTitle.MatchString(rec.Title)) {
				content := rec.Content
				if len(content) > forcedTopicalCap {
					content = content[:forcedTopicalCap]
				}
				parts = append(parts, content)
				break
			}
		}
		break
	}
	return parts
}
