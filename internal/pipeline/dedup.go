package pipeline

import (
	"sort"
	"strings"
)

// CanonicalIdentifier reduces an identifier to the key used for
// cross-source merging. The rule, documented before implementation:
//
//   - DOIs: the bare https://doi.org/, dx.doi.org and doi:-prefixed forms
//     of the same DOI are THE SAME identifier. Key is "doi:" plus the
//     lower-cased 10.x/suffix with trailing punctuation stripped.
//   - GEO ids: "geo:" plus the lower-cased accession.
//   - Zenodo/Figshare URLs: scheme, www, query, fragment and trailing
//     slash are insignificant; Zenodo keys collapse /record/ and
//     /records/ paths to the numeric record id.
//   - Other accessions: "acc:" plus the upper-cased accession.
//   - Other URLs: "url:" plus host and path, lower-cased, without scheme,
//     www, query, fragment or trailing slash.
//
// Keys are class-prefixed, so a Zenodo DOI and the matching zenodo.org
// URL do NOT merge; they are distinct identifier classes.
func CanonicalIdentifier(value string, t IdentifierType) string {
	v := strings.TrimRight(strings.TrimSpace(value), trailingPunct)

	switch t {
	case TypeDOI:
		return "doi:" + bareDOI(v)
	case TypeGeoID:
		return "geo:" + strings.ToLower(v)
	case TypeZenodo:
		return "zenodo:" + zenodoPath(v)
	case TypeFigshare:
		return "figshare:" + strippedURL(v)
	case TypeAccession:
		return "acc:" + strings.ToUpper(v)
	default:
		return "url:" + strippedURL(v)
	}
}

// DisplayIdentifier renders the canonical human-facing form of an
// identifier: DOIs as a doi.org URL, accessions as issued, URLs with
// scheme noise removed.
func DisplayIdentifier(value string, t IdentifierType) string {
	v := strings.TrimRight(strings.TrimSpace(value), trailingPunct)

	switch t {
	case TypeDOI:
		return "https://doi.org/" + bareDOI(v)
	case TypeGeoID, TypeAccession:
		return strings.ToUpper(v)
	default:
		return "https://" + strippedURL(v)
	}
}

func bareDOI(v string) string {
	s := strings.ToLower(v)
	for _, prefix := range []string{
		"https://doi.org/", "http://doi.org/",
		"https://dx.doi.org/", "http://dx.doi.org/",
		"doi:",
	} {
		s = strings.TrimPrefix(s, prefix)
	}

	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "10."); idx > 0 {
		s = s[idx:]
	}

	return s
}

func strippedURL(v string) string {
	s := strings.ToLower(v)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")

	if idx := strings.IndexAny(s, "?#"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSuffix(s, "/")
}

func zenodoPath(v string) string {
	s := strippedURL(v)
	if path, ok := strings.CutPrefix(s, "zenodo.org/"); ok {
		path = strings.TrimPrefix(path, "records/")
		path = strings.TrimPrefix(path, "record/")

		if idx := strings.IndexByte(path, '/'); idx != -1 {
			path = path[:idx]
		}

		return path
	}

	return s
}

// Deduplicate merges mentions of the same canonical identifier across
// sources into one DeduplicatedMention per identifier. The merge is
// order-independent: input is first ordered PDF branch before XML, then
// by position, so grouping and context order do not depend on which
// source was processed first. Sources are unioned as a set; contexts
// are kept in first-seen order, one per contributing source even when
// the snippets read the same, so the context count reflects the
// supporting evidence. A mention with no duplicate becomes a group of
// one. Output is sorted by canonical key.
func Deduplicate(mentions []ContextualMention) []DeduplicatedMention {
	ordered := make([]ContextualMention, len(mentions))
	copy(ordered, mentions)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Kind != b.Kind {
			return kindRank(a.Kind) < kindRank(b.Kind)
		}

		if a.SourceID != b.SourceID {
			return a.SourceID < b.SourceID
		}

		return a.Start < b.Start
	})

	type contextKey struct {
		ref     SourceRef
		context string
	}

	groups := make(map[string]*DeduplicatedMention)
	seenContexts := make(map[string]map[contextKey]bool)
	keys := make([]string, 0)

	for _, m := range ordered {
		key := CanonicalIdentifier(m.Value, m.Type)

		group, ok := groups[key]
		if !ok {
			group = &DeduplicatedMention{
				Identifier: DisplayIdentifier(m.Value, m.Type),
				Type:       m.Type,
			}
			groups[key] = group
			keys = append(keys, key)
		}

		ref := SourceRef{SourceID: m.SourceID, Kind: m.Kind}
		if !containsSource(group.Sources, ref) {
			group.Sources = append(group.Sources, ref)
		}

		if m.Context != "" {
			ck := contextKey{ref: ref, context: m.Context}
			if !seenContexts[key][ck] {
				if seenContexts[key] == nil {
					seenContexts[key] = make(map[contextKey]bool)
				}

				seenContexts[key][ck] = true
				group.Contexts = append(group.Contexts, m.Context)
			}
		}
	}

	sort.Strings(keys)

	merged := make([]DeduplicatedMention, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		sortSources(group.Sources)
		merged = append(merged, *group)
	}

	return merged
}

func kindRank(k SourceKind) int {
	switch k {
	case SourcePDF:
		return 0
	case SourceXML:
		return 1
	default:
		return 2
	}
}

func sortSources(refs []SourceRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return kindRank(refs[i].Kind) < kindRank(refs[j].Kind)
		}

		return refs[i].SourceID < refs[j].SourceID
	})
}

func containsSource(refs []SourceRef, ref SourceRef) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}

	return false
}

