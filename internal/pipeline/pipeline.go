package pipeline

import (
	"strings"
	"sync"
)

// Article is the per-article input: an id plus whichever extracted texts
// exist. Either text may be empty.
type Article struct {
	ID      string
	PDFText string
	XMLText string
}

// Result is the outcome of processing one article. Diagnostics carry
// per-article degradation reasons (missing sources, extraction problems
// reported by the caller); they never abort a batch.
type Result struct {
	ArticleID   string         `json:"article_id"`
	Records     []OutputRecord `json:"records"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

// Process runs one article through the full pipeline: normalize, match
// and window each present source, then merge across sources and
// assemble records. The PDF and XML branches run concurrently; the
// deduplication step is the join point. An article with no usable text
// yields an empty result with a diagnostic, not an error.
func Process(article Article, opts Options) Result {
	result := Result{ArticleID: article.ID, Records: []OutputRecord{}}

	docs := make([]RawDocument, 0, 2)
	if strings.TrimSpace(article.PDFText) != "" {
		docs = append(docs, RawDocument{SourceID: article.ID, Kind: SourcePDF, Text: article.PDFText})
	}

	if strings.TrimSpace(article.XMLText) != "" {
		docs = append(docs, RawDocument{SourceID: article.ID, Kind: SourceXML, Text: article.XMLText})
	}

	if len(docs) == 0 {
		result.Diagnostics = append(result.Diagnostics, "no source text available")
		return result
	}

	branches := make([][]ContextualMention, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)

		go func(i int, doc RawDocument) {
			defer wg.Done()
			branches[i] = ExtractMentions(doc, opts)
		}(i, doc)
	}

	wg.Wait()

	var mentions []ContextualMention
	for _, branch := range branches {
		mentions = append(mentions, branch...)
	}

	result.Records = Assemble(article.ID, Deduplicate(mentions))

	return result
}

// ExtractMentions runs the single-source half of the pipeline:
// normalization, pattern matching and context windowing over one
// document. Offsets in the returned mentions refer to the normalized
// text, not the raw input.
func ExtractMentions(doc RawDocument, opts Options) []ContextualMention {
	text := Normalize(doc.Text)
	matches := FindMatchesMinSpecificity(text, opts.MinSpecificity)

	mentions := make([]ContextualMention, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, ContextualMention{
			Match:    m,
			SourceID: doc.SourceID,
			Kind:     doc.Kind,
			Context:  Window(text, m, opts.ContextWidth),
		})
	}

	return mentions
}
