package pipeline

import "testing"

func TestAssemble(t *testing.T) {
	mentions := []DeduplicatedMention{
		{
			Identifier: "https://doi.org/10.5061/dryad.ab12cd",
			Type:       TypeDOI,
			Sources: []SourceRef{
				{SourceID: "A1", Kind: SourcePDF},
				{SourceID: "A1", Kind: SourceXML},
			},
			Contexts: []string{"pdf context", "xml context"},
		},
		{
			Identifier: "GSE123456",
			Type:       TypeGeoID,
			Sources:    []SourceRef{{SourceID: "A1", Kind: SourceXML}},
			Contexts:   []string{"only context"},
		},
	}

	records := Assemble("A1", mentions)

	if len(records) != len(mentions) {
		t.Fatalf("expected one record per mention, got %d for %d mentions",
			len(records), len(mentions))
	}

	first := records[0]
	if first.ArticleID != "A1" {
		t.Errorf("expected article id A1, got %q", first.ArticleID)
	}

	if first.Sources != "pdf:A1;xml:A1" {
		t.Errorf("unexpected sources column %q", first.Sources)
	}

	if first.Context != "pdf context" {
		t.Errorf("representative context must be the first seen, got %q", first.Context)
	}

	if first.ContextCount != 2 {
		t.Errorf("expected context count 2, got %d", first.ContextCount)
	}

	second := records[1]
	if second.Sources != "xml:A1" || second.ContextCount != 1 {
		t.Errorf("unexpected single-source record: %+v", second)
	}
}

func TestAssembleNoContexts(t *testing.T) {
	mentions := []DeduplicatedMention{
		{
			Identifier: "SRR123456",
			Type:       TypeAccession,
			Sources:    []SourceRef{{SourceID: "A1", Kind: SourcePDF}},
		},
	}

	records := Assemble("A1", mentions)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	if records[0].Context != "" || records[0].ContextCount != 0 {
		t.Errorf("expected empty context column, got %+v", records[0])
	}
}

func TestAssembleEmpty(t *testing.T) {
	records := Assemble("A1", nil)
	if len(records) != 0 {
		t.Errorf("expected no records, got %+v", records)
	}
}
