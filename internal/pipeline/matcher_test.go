package pipeline

import (
	"strings"
	"testing"
)

func TestFindMatches(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string // expected match values, in order
	}{
		{
			name: "DOI URL form",
			text: "See dataset at https://doi.org/10.5061/dryad.ab12cd for details.",
			expected: []string{
				"https://doi.org/10.5061/dryad.ab12cd",
			},
		},
		{
			name: "DOI prefixed and bare forms",
			text: "Available as doi: 10.1234/example.2024 and cited as 10.5678/another.one elsewhere.",
			expected: []string{
				"10.1234/example.2024",
				"10.5678/another.one",
			},
		},
		{
			name: "GEO accessions",
			text: "Expression data are in GEO under GSE123456; sample GSM789012 used platform GPL570.",
			expected: []string{
				"GSE123456",
				"GSM789012",
				"GPL570",
			},
		},
		{
			name: "SRA and BioProject",
			text: "Reads were deposited as SRR123456 and ERR654321 under PRJNA789012.",
			expected: []string{
				"SRR123456",
				"ERR654321",
				"PRJNA789012",
			},
		},
		{
			name: "repository URLs",
			text: "Data at https://zenodo.org/record/123456 and https://figshare.com/articles/dataset/scpsm/19306661.",
			expected: []string{
				"https://zenodo.org/record/123456",
				"https://figshare.com/articles/dataset/scpsm/19306661",
			},
		},
		{
			name: "other accession families",
			text: "See EPI_ISL_402124, E-MTAB-5967, PXD012345, EMPIAR-10028, CHEMBL25, CVCL_0030, rs334 and rs1234567.",
			expected: []string{
				"EPI_ISL_402124",
				"E-MTAB-5967",
				"PXD012345",
				"EMPIAR-10028",
				"CHEMBL25",
				"CVCL_0030",
				"rs1234567",
			},
		},
		{
			name: "registry families from proteomics and structural databases",
			text: "See HPA004109, CAB000051, IPR000719, PF00069 and MODEL1006230101.",
			expected: []string{
				"HPA004109",
				"CAB000051",
				"IPR000719",
				"PF00069",
				"MODEL1006230101",
			},
		},
		{
			name: "genbank and ensembl accessions",
			text: "Genomes CP017291 and KX601166, clone BX284601, gene ENSBTAG00000012345.",
			expected: []string{
				"CP017291",
				"KX601166",
				"BX284601",
				"ENSBTAG00000012345",
			},
		},
		{
			name: "legacy GISAID id distinct from EPI_ISL form",
			text: "Isolates EPI_ISL_402124 and EPI402124 were submitted.",
			expected: []string{
				"EPI_ISL_402124",
				"EPI402124",
			},
		},
		{
			name: "uniprot and refseq",
			text: "Protein P01234 maps to transcript NM_000014.6 and genome NC_000001.11.",
			expected: []string{
				"P01234",
				"NM_000014.6",
				"NC_000001.11",
			},
		},
		{
			name:     "no identifiers",
			text:     "This article mentions no datasets whatsoever.",
			expected: nil,
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name: "trailing punctuation excluded from URL matches",
			text: "Deposited at https://zenodo.org/record/99887; see methods.",
			expected: []string{
				"https://zenodo.org/record/99887",
			},
		},
		{
			name: "lowercase accession lookalikes ignored",
			text: "the gse123456 label is prose, not an accession",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matches := FindMatches(tc.text)

			if len(matches) != len(tc.expected) {
				t.Fatalf("expected %d matches, got %d: %+v", len(tc.expected), len(matches), matches)
			}

			for i, expected := range tc.expected {
				if matches[i].Value != expected {
					t.Errorf("match %d: expected %q, got %q", i, expected, matches[i].Value)
				}
			}
		})
	}
}

func TestFindMatchesSpanValidity(t *testing.T) {
	texts := []string{
		"See dataset at https://doi.org/10.5061/dryad.ab12cd for details.",
		"Reads SRR123456 under PRJNA789012, also doi:10.1234/x.y and GSE1.",
		"Data: https://zenodo.org/record/123456, https://example.org/files/data.csv.",
		"Edge case: GSE123456",
		"10.1234/starts.at.zero and more text",
	}

	for _, text := range texts {
		for _, m := range FindMatches(text) {
			if m.Start < 0 || m.Start >= m.End || m.End > len(text) {
				t.Errorf("invalid span [%d,%d) for text of length %d", m.Start, m.End, len(text))
				continue
			}

			if text[m.Start:m.End] != m.Value {
				t.Errorf("span mismatch: text[%d:%d] = %q, value = %q",
					m.Start, m.End, text[m.Start:m.End], m.Value)
			}
		}
	}
}

func TestFindMatchesOverlapResolution(t *testing.T) {
	testCases := []struct {
		name         string
		text         string
		expectedType IdentifierType
		expectedVal  string
	}{
		{
			name:         "zenodo URL beats generic URL",
			text:         "see https://zenodo.org/record/123456 here",
			expectedType: TypeZenodo,
			expectedVal:  "https://zenodo.org/record/123456",
		},
		{
			name:         "figshare URL beats generic URL",
			text:         "see https://figshare.com/s/865e694ad06d5857db4b here",
			expectedType: TypeFigshare,
			expectedVal:  "https://figshare.com/s/865e694ad06d5857db4b",
		},
		{
			name:         "DOI URL beats generic URL",
			text:         "see https://doi.org/10.5061/dryad.ab12cd here",
			expectedType: TypeDOI,
			expectedVal:  "https://doi.org/10.5061/dryad.ab12cd",
		},
		{
			name:         "dataset file URL beats generic URL",
			text:         "download https://example.org/files/data.csv now",
			expectedType: TypeURL,
			expectedVal:  "https://example.org/files/data.csv",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matches := FindMatches(tc.text)

			if len(matches) != 1 {
				t.Fatalf("expected exactly 1 match after overlap resolution, got %d: %+v",
					len(matches), matches)
			}

			if matches[0].Type != tc.expectedType {
				t.Errorf("expected type %s, got %s", tc.expectedType, matches[0].Type)
			}

			if matches[0].Value != tc.expectedVal {
				t.Errorf("expected value %q, got %q", tc.expectedVal, matches[0].Value)
			}
		})
	}
}

func TestFindMatchesRestartable(t *testing.T) {
	text := "Data at https://doi.org/10.1234/abc and GSE123456."

	first := FindMatches(text)
	second := FindMatches(text)

	if len(first) != len(second) {
		t.Fatalf("re-scan returned %d matches, first scan %d", len(second), len(first))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("match %d differs between scans: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFindMatchesMinSpecificity(t *testing.T) {
	text := "See https://example.org/page and accession GSE123456."

	all := FindMatches(text)
	if len(all) != 2 {
		t.Fatalf("expected 2 matches without filter, got %d: %+v", len(all), all)
	}

	filtered := FindMatchesMinSpecificity(text, 50)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 match with min specificity 50, got %d: %+v", len(filtered), filtered)
	}

	if filtered[0].Value != "GSE123456" {
		t.Errorf("expected the accession to survive filtering, got %q", filtered[0].Value)
	}
}

func TestFindMatchesLeftToRightOrder(t *testing.T) {
	text := "First GSE111, then SRR222222, then https://zenodo.org/record/3 last."

	matches := FindMatches(text)

	for i := 1; i < len(matches); i++ {
		if matches[i].Start < matches[i-1].End {
			t.Errorf("matches out of order: %d starts at %d before previous end %d",
				i, matches[i].Start, matches[i-1].End)
		}
	}
}

func TestPatternsTableSanity(t *testing.T) {
	seen := make(map[string]bool)

	for _, p := range Patterns() {
		if p.Name == "" {
			t.Error("pattern with empty name")
		}

		if seen[p.Name] {
			t.Errorf("duplicate pattern name %q", p.Name)
		}

		seen[p.Name] = true

		if p.Regex == nil {
			t.Errorf("pattern %q has nil regex", p.Name)
		}

		if p.Specificity <= 0 {
			t.Errorf("pattern %q has non-positive specificity", p.Name)
		}

		if strings.TrimSpace(string(p.Type)) == "" {
			t.Errorf("pattern %q has empty type", p.Name)
		}
	}
}
