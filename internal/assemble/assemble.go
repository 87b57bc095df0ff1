// Package assemble packs context candidates into the character budget handed
// to answer synthesis.
package assemble

import "strings"

const (
	// DefaultMaxChars is the overall context budget.
	DefaultMaxChars = 9000
	// perItemCap truncates any single candidate before budgeting.
	perItemCap = 1400
	// separatorOverhead is charged per included candidate for the joiner.
	separatorOverhead = 8

	// Separator keeps passages visibly distinct for the synthesis model.
	Separator = "\n\n---\n"
)

// Dedup removes exact-duplicate candidates, preserving first-seen order.
// Callers concatenate [forced, retrieved, fallback] so earlier, higher-
// priority copies win.
func Dedup(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// BuildContext greedily packs candidates, in order, into a context string of
// at most maxChars characters. Candidates are truncated to the per-item cap;
// a candidate that would overflow the budget ends packing (no partial
// inclusion). An empty result means no usable context.
func BuildContext(candidates []string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	var parts []string
	total := 0
	for _, c := range candidates {
		piece := strings.TrimSpace(c)
		if piece == "" {
			continue
		}
		if len(piece) > perItemCap {
			piece = piece[:perItemCap]
		}
		if total+len(piece)+separatorOverhead > maxChars {
			break
		}
		parts = append(parts, piece)
		total += len(piece) + separatorOverhead
	}
	return strings.Join(parts, Separator)
}
