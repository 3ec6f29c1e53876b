package textsource

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractXML extracts the text content of an XML file, joining text nodes
// with single spaces. The underlying parser recovers from malformed
// markup, so a damaged file yields partial text rather than an error;
// only a file with no text content at all fails.
func ExtractXML(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open XML file %q: %w", filename, err)
	}
	defer f.Close()

	text, err := ExtractXMLReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from XML file %q: %w", filename, err)
	}

	return text, nil
}

// ExtractXMLReader is ExtractXML over an arbitrary reader.
func ExtractXMLReader(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}

				b.WriteString(t)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no readable text found")
	}

	return b.String(), nil
}
