// Package textsource extracts plain text from the container formats
// articles arrive in. It is the I/O boundary of the tool: the extraction
// pipeline itself only ever sees the strings produced here.
package textsource

import (
	"fmt"
	"strings"

	"code.sajari.com/docconv/v2"
)

// ExtractPDF converts a PDF file to plain text.
func ExtractPDF(filename string) (string, error) {
	response, err := docconv.ConvertPath(filename)
	if err != nil {
		return "", fmt.Errorf("failed to convert PDF file %q: %w", filename, err)
	}

	if strings.TrimSpace(response.Body) == "" {
		return "", fmt.Errorf("no readable text found in PDF file %q", filename)
	}

	return response.Body, nil
}
