package pipeline

import "strings"

// Assemble folds merged mentions into flat output records, one row per
// DeduplicatedMention. Sources are joined as semicolon-delimited
// "kind:source_id" pairs; the representative context is the first one
// seen. Every mention yields exactly one record.
func Assemble(articleID string, mentions []DeduplicatedMention) []OutputRecord {
	records := make([]OutputRecord, 0, len(mentions))

	for _, m := range mentions {
		sources := make([]string, 0, len(m.Sources))
		for _, ref := range m.Sources {
			sources = append(sources, string(ref.Kind)+":"+ref.SourceID)
		}

		context := ""
		if len(m.Contexts) > 0 {
			context = m.Contexts[0]
		}

		records = append(records, OutputRecord{
			ArticleID:    articleID,
			Identifier:   m.Identifier,
			Type:         m.Type,
			Sources:      strings.Join(sources, ";"),
			Context:      context,
			ContextCount: len(m.Contexts),
		})
	}

	return records
}
