package pipeline

// SourceKind identifies which rendering of an article a value was derived from.
type SourceKind string

const (
	SourcePDF SourceKind = "pdf"
	SourceXML SourceKind = "xml"
)

// IdentifierType classifies a matched dataset identifier.
type IdentifierType string

const (
	TypeDOI       IdentifierType = "doi"
	TypeGeoID     IdentifierType = "geo_id"
	TypeZenodo    IdentifierType = "zenodo"
	TypeFigshare  IdentifierType = "figshare"
	TypeAccession IdentifierType = "accession"
	TypeURL       IdentifierType = "url"
)

// RawDocument is one rendering of an article as delivered by a text
// extractor. Immutable once created.
type RawDocument struct {
	SourceID string     `json:"source_id"`
	Kind     SourceKind `json:"source_kind"`
	Text     string     `json:"raw_text"`
}

// Match is a single pattern hit in normalized text. Start and End are byte
// offsets into the text the match was found in, with
// 0 <= Start < End <= len(text) and text[Start:End] == Value.
type Match struct {
	Type  IdentifierType `json:"identifier_type"`
	Value string         `json:"raw_value"`
	Start int            `json:"start"`
	End   int            `json:"end"`
}

// ContextualMention is a Match annotated with provenance and a
// human-readable context snippet.
type ContextualMention struct {
	Match
	SourceID string     `json:"source_id"`
	Kind     SourceKind `json:"source_kind"`
	Context  string     `json:"context"`
}

// SourceRef names one contributing source of a merged mention.
type SourceRef struct {
	SourceID string     `json:"source_id"`
	Kind     SourceKind `json:"source_kind"`
}

// DeduplicatedMention is the canonical form of one identifier across all
// sources of an article. Sources is a sorted set; Contexts preserves
// first-seen order (PDF branch before XML).
type DeduplicatedMention struct {
	Identifier string         `json:"canonical_identifier"`
	Type       IdentifierType `json:"identifier_type"`
	Sources    []SourceRef    `json:"sources"`
	Contexts   []string       `json:"contexts"`
}

// OutputRecord is one flat row for tabular output.
type OutputRecord struct {
	ArticleID    string         `json:"article_id"`
	Identifier   string         `json:"identifier"`
	Type         IdentifierType `json:"identifier_type"`
	Sources      string         `json:"sources"`
	Context      string         `json:"context"`
	ContextCount int            `json:"context_count"`
}

// Options configures a pipeline run. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// ContextWidth is the number of whitespace-delimited tokens captured on
	// each side of a match.
	ContextWidth int `json:"context_width"`
	// MinSpecificity drops matches from patterns below this rank. The
	// generic URL pattern sits at the bottom of the table, so a small
	// positive value filters catch-all URL noise.
	MinSpecificity int `json:"min_specificity"`
}

// DefaultOptions returns the options used when no overrides are given.
func DefaultOptions() Options {
	return Options{
		ContextWidth:   40,
		MinSpecificity: 0,
	}
}
