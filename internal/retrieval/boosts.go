package retrieval

import "strings"

// BoostRule adds Weight to a hit's score when Match returns true for the
// lowercased "title url" string of the record. Rules are cumulative: a record
// matching several rules accumulates every applicable weight.
type BoostRule struct {
	Name   string
	Weight float64
	Match  func(titleURL, url string) bool
}

func contains(sub string) func(string, string) bool {
	return func(t, _ string) bool { return strings.Contains(t, sub) }
}

func urlContains(sub string) func(string, string) bool {
	return func(_, u string) bool { return strings.Contains(u, sub) }
}

func containsAny(subs ...string) func(string, string) bool {
	return func(t, _ string) bool {
		for _, sub := range subs {
			if strings.Contains(t, sub) {
				return true
			}
		}
		return false
	}
}

// DefaultBoosts is the hand-tuned relevance boost table. The weights are
// empirically tuned against the live corpus; changing them changes ranking
// outcomes, so treat the table as versioned configuration.
func DefaultBoosts() []BoostRule {
	return []BoostRule{
		{Name: "service", Weight: 0.20, Match: contains("service")},
		{Name: "services", Weight: 0.30, Match: contains("services")},
		{Name: "services-url", Weight: 0.35, Match: urlContains("/services")},
		{Name: "what-we-do", Weight: 0.15, Match: contains("what we do")},
		{Name: "solutions", Weight: 0.10, Match: contains("solutions")},
		{Name: "contact-url", Weight: 0.10, Match: urlContains("/contact")},
		{Name: "about-url", Weight: 0.05, Match: urlContains("/about")},
		{Name: "newsletter", Weight: 0.35, Match: contains("newsletter")},
		{Name: "gen-z", Weight: 0.30, Match: containsAny("gen z", "gen-z")},
		{Name: "attention-span", Weight: 0.25, Match: containsAny("attention span", "attention-span")},
		{Name: "tips", Weight: 0.20, Match: containsAny("tips", "how to", "best practices")},
		{Name: "jingles", Weight: 0.20, Match: containsAny("jingle", "jingles", "earworm")},
		{Name: "community", Weight: 0.20, Match: containsAny("community", "community-first")},
		{Name: "case-study", Weight: 0.15, Match: contains("case study")},
		{Name: "landing", Weight: 0.15, Match: contains("landing")},
	}
}
