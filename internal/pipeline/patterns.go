package pipeline

import "regexp"

// Pattern is one entry of the identifier recognition table.
type Pattern struct {
	Name        string
	Regex       *regexp.Regexp
	Type        IdentifierType
	Specificity int
}

// Specificity ranks:
//   95  exact identifier grammars (DOI forms)
//   90  repository-specific URLs and accession families
//   80  known database hosts
//   70  URLs pointing at data files
//   60  code-hosting URLs that may hold datasets
//   10  generic catch-all URLs
//
// Overlapping spans resolve to the higher rank; ties go to the longer
// match, then to the earlier table entry. Each regex captures the
// identifier in group 1 and uses bounded quantifiers only, so the table
// cannot backtrack pathologically. A malformed entry panics at package
// init rather than at scan time.
var patternTable = []Pattern{
	{
		Name:        "DOI URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://(?:dx\.)?doi\.org/10\.\d{4,9}/[^\s"<>{}\[\]]{1,200})`),
		Type:        TypeDOI,
		Specificity: 95,
	},
	{
		Name:        "DOI Prefixed",
		Regex:       regexp.MustCompile(`(?i)\bdoi:\s{0,2}(10\.\d{4,9}/[^\s"<>{}\[\]]{1,200})`),
		Type:        TypeDOI,
		Specificity: 95,
	},
	{
		Name:        "DOI Bare",
		Regex:       regexp.MustCompile(`\b(10\.\d{4,9}/[^\s"<>{}\[\]]{1,200})`),
		Type:        TypeDOI,
		Specificity: 85,
	},

	{
		Name:        "Zenodo URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://(?:www\.)?zenodo\.org/[A-Za-z0-9/_.\-]{1,200})`),
		Type:        TypeZenodo,
		Specificity: 90,
	},
	{
		Name:        "Figshare URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://(?:www\.)?figshare\.com/[A-Za-z0-9/_.\-]{1,200})`),
		Type:        TypeFigshare,
		Specificity: 90,
	},
	{
		Name:        "Data Repository URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://(?:www\.)?(?:datadryad\.org|dryad\.org|osf\.io|data\.mendeley\.com|pangaea\.de|dataverse\.org)/[A-Za-z0-9/_.\-]{1,200})`),
		Type:        TypeURL,
		Specificity: 90,
	},
	{
		Name:        "Biological Database URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://(?:www\.)?(?:ncbi\.nlm\.nih\.gov|ebi\.ac\.uk|ddbj\.nig\.ac\.jp)/[^\s"<>{}\[\]]{1,200})`),
		Type:        TypeURL,
		Specificity: 80,
	},
	{
		Name:        "Dataset File URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://[A-Za-z0-9._/\-]{1,200}\.(?:csv|tsv|xlsx?|json|xml|h5|hdf5|parquet|zip|tar\.gz))\b`),
		Type:        TypeURL,
		Specificity: 70,
	},
	{
		Name:        "GitHub Repository",
		Regex:       regexp.MustCompile(`(?i)\b(https?://github\.com/[A-Za-z0-9_.\-]{1,50}/[A-Za-z0-9_.\-]{1,80}(?:/[A-Za-z0-9/_.\-]{0,120})?)`),
		Type:        TypeURL,
		Specificity: 60,
	},

	// Accession families, case sensitive by design: the original registries
	// issue them in upper case and lower-case lookalikes are ordinary words.
	{
		Name:        "GEO Accession",
		Regex:       regexp.MustCompile(`\b(G(?:SE|SM|PL|DS)\d{1,8})\b`),
		Type:        TypeGeoID,
		Specificity: 90,
	},
	{
		Name:        "SRA Accession",
		Regex:       regexp.MustCompile(`\b((?:SRR|SRX|SRS|SRP|ERR|ERX|ERP|DRR)\d{5,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "BioProject",
		Regex:       regexp.MustCompile(`\b(PRJ(?:NA|EB|DB)\d{1,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "BioSample",
		Regex:       regexp.MustCompile(`\b(SAMN\d{8,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "GISAID Isolate",
		Regex:       regexp.MustCompile(`\b(EPI_ISL_\d{5,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "GISAID Legacy",
		Regex:       regexp.MustCompile(`\b(EPI\d{6,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "ArrayExpress",
		Regex:       regexp.MustCompile(`\b(E-[A-Z]{4}-\d{1,7})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "ProteomeXchange",
		Regex:       regexp.MustCompile(`\b(PXD\d{6,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "EMPIAR",
		Regex:       regexp.MustCompile(`\b(EMPIAR-\d{5,6})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "ChEMBL",
		Regex:       regexp.MustCompile(`\b(CHEMBL\d{1,8})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "UniProt",
		Regex:       regexp.MustCompile(`\b([OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9][A-Z][A-Z0-9]{2}[0-9])\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "RefSeq",
		Regex:       regexp.MustCompile(`\b(N[CGMRTW]_\d{1,9}(?:\.\d{1,3})?)\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "Human Protein Atlas",
		Regex:       regexp.MustCompile(`\b((?:HPA|CAB)\d{6,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "GenBank Sequence",
		Regex:       regexp.MustCompile(`\b((?:CP|KX)\d{6,8}|BX\d{6,9})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "Ensembl",
		Regex:       regexp.MustCompile(`\b(ENS(?:[A-Z]{3})?[GTPE]\d{11})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "Protein Family",
		Regex:       regexp.MustCompile(`\b(IPR\d{6}|PF\d{5})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "BioModels",
		Regex:       regexp.MustCompile(`\b(MODEL\d{4,16})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "Cellosaurus",
		Regex:       regexp.MustCompile(`\b(CVCL_[A-Z0-9]{4})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},
	{
		Name:        "dbSNP",
		Regex:       regexp.MustCompile(`\b(rs\d{6,10})\b`),
		Type:        TypeAccession,
		Specificity: 90,
	},

	{
		Name:        "Generic URL",
		Regex:       regexp.MustCompile(`(?i)\b(https?://[A-Za-z0-9.\-]{1,100}\.[A-Za-z]{2,24}(?:/[^\s"<>{}\[\]]{0,200})?)`),
		Type:        TypeURL,
		Specificity: 10,
	},
}

// Patterns returns the identifier recognition table in declaration order.
// The table is fixed at build time; callers must not mutate it.
func Patterns() []Pattern {
	return patternTable
}
