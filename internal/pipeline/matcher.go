package pipeline

import (
	"sort"
	"strings"
)

// trailingPunct is stripped from the end of URL-shaped matches; sentence
// punctuation and closing brackets routinely abut identifiers in prose.
const trailingPunct = ".,;:!?)]}"

// FindMatches scans normalized text with the full pattern table and
// returns matches in left-to-right order. Calling it again re-scans from
// the start; there is no shared scan state. An empty result is a normal
// outcome, not an error.
func FindMatches(text string) []Match {
	return FindMatchesMinSpecificity(text, 0)
}

// FindMatchesMinSpecificity is FindMatches restricted to patterns with at
// least the given specificity rank.
func FindMatchesMinSpecificity(text string, minSpecificity int) []Match {
	type candidate struct {
		Match
		specificity int
		order       int
	}

	var candidates []candidate

	for order, pattern := range patternTable {
		if pattern.Specificity < minSpecificity {
			continue
		}

		for _, idx := range pattern.Regex.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[0], idx[1]
			if len(idx) >= 4 && idx[2] >= 0 {
				start, end = idx[2], idx[3]
			}

			if isURLShaped(pattern.Type) {
				for end > start && strings.IndexByte(trailingPunct, text[end-1]) >= 0 {
					end--
				}
			}

			if start >= end {
				continue
			}

			candidates = append(candidates, candidate{
				Match: Match{
					Type:  pattern.Type,
					Value: text[start:end],
					Start: start,
					End:   end,
				},
				specificity: pattern.Specificity,
				order:       order,
			})
		}
	}

	// Overlap resolution: higher specificity first, then longer span, then
	// earlier table entry, then leftmost. A greedy sweep in that order
	// keeps exactly the preferred match of every overlapping cluster.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.specificity != b.specificity {
			return a.specificity > b.specificity
		}

		if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
			return la > lb
		}

		if a.order != b.order {
			return a.order < b.order
		}

		return a.Start < b.Start
	})

	var kept []Match

	for _, c := range candidates {
		overlaps := false

		for _, k := range kept {
			if c.Start < k.End && k.Start < c.End {
				overlaps = true
				break
			}
		}

		if !overlaps {
			kept = append(kept, c.Match)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	return kept
}

func isURLShaped(t IdentifierType) bool {
	switch t {
	case TypeDOI, TypeURL, TypeZenodo, TypeFigshare:
		return true
	default:
		return false
	}
}
