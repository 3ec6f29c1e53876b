package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// mojibakeReplacer repairs the common UTF-8-decoded-as-Windows-1252
// sequences that PDF extractors leave behind. Only unambiguous sequences
// are listed; anything else passes through untouched.
var mojibakeReplacer = strings.NewReplacer(
	"â€™", "'",
	"â€˜", "'",
	"â€œ", `"`,
	"â€", `"`, // the 0x9d byte survives as U+009D
	"â€“", "-",
	"â€”", "-",
	"â€¦", "...",
	"Ã¡", "á",
	"Ã©", "é",
	"Ã­", "í",
	"Ã³", "ó",
	"Ãº", "ú",
	"Ã±", "ñ",
	"Ã¼", "ü",
	"Ã¶", "ö",
	"Ã¤", "ä",
	"Ã§", "ç",
	"Â ", " ", // a stray Â before a non-breaking space
)

// dashQuoteReplacer folds typographic dash and quote variants to ASCII so
// identifiers split across them compare equal.
var dashQuoteReplacer = strings.NewReplacer(
	"‐", "-", "‑", "-", "‒", "-",
	"–", "-", "—", "-", "−", "-",
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
)

// Normalize cleans raw extracted text into the canonical form the matcher
// operates on: valid UTF-8, repaired mojibake, NFKC-composed, control
// characters stripped, whitespace runs collapsed to single spaces and
// paragraph breaks to single newlines, trimmed. Pure and idempotent:
// Normalize(Normalize(s)) == Normalize(s). Never fails; undecodable bytes
// become replacement characters.
func Normalize(raw string) string {
	text := strings.ToValidUTF8(raw, string(utf8.RuneError))
	text = mojibakeReplacer.Replace(text)
	text, _, _ = transform.String(norm.NFKC, text)
	text = dashQuoteReplacer.Replace(text)

	return collapseWhitespace(text)
}

// collapseWhitespace drops control and format characters, folds runs of
// horizontal whitespace into one space, and folds runs containing a line
// break into one newline. Leading and trailing whitespace is trimmed.
func collapseWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	pendingBreak := false

	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\v' || r == '\f' || r == '\u2028' || r == '\u2029':
			pendingBreak = true
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r) || unicode.Is(unicode.Cf, r):
			// Treated like the whitespace they usually stand in for.
			pendingSpace = true
		default:
			if b.Len() > 0 {
				if pendingBreak {
					b.WriteByte('\n')
				} else if pendingSpace {
					b.WriteByte(' ')
				}
			}

			pendingSpace = false
			pendingBreak = false

			b.WriteRune(r)
		}
	}

	return b.String()
}
