package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datatrail-dev/datatrail/internal/pipeline"
	"github.com/datatrail-dev/datatrail/internal/textsource"
)

var (
	textOutputFile string
	rawText        bool
)

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Extract and normalize the text of one article file",
	Long: `Extract plain text from a PDF or XML file and print it after the
same normalization the extraction pipeline applies: encoding repair,
Unicode composition, control-character removal and whitespace collapse.

Useful for inspecting what the pattern matcher actually sees.

Examples:
  datatrail text paper.pdf
  datatrail text --raw paper.xml
  datatrail text --output paper.txt paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&textOutputFile, "output", "o", "", "output file (default: stdout)")
	textCmd.Flags().BoolVar(&rawText, "raw", false, "print extracted text without normalization")
}

func runText(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Extracting text from %s...\n", filename)
	}

	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = textsource.ExtractPDF(filename)
	case ".xml":
		text, err = textsource.ExtractXML(filename)
	default:
		return fmt.Errorf("unsupported file type: %s (expected .pdf or .xml)", filename)
	}

	if err != nil {
		return err
	}

	if !rawText {
		text = pipeline.Normalize(text)
	}

	if textOutputFile != "" {
		if err := os.WriteFile(textOutputFile, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		if !quiet {
			fmt.Fprintf(os.Stderr, "Text written to %s\n", textOutputFile)
		}

		return nil
	}

	fmt.Println(text)

	return nil
}
