package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/datatrail-dev/datatrail/internal/pipeline"
	"github.com/datatrail-dev/datatrail/internal/textsource"
)

var (
	pdfDir         string
	xmlDir         string
	outputFormat   string
	contextWidth   int
	minSpecificity int
	numWorkers     int
	showProgress   bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract dataset references from article PDF/XML pairs",
	Long: `Extract dataset identifier mentions from scientific articles.

Articles are read as PDF/XML pairs: files in --pdf-dir and --xml-dir are
paired by basename, and every article id found in either directory is
processed. Explicit file arguments are treated as single-source articles.
Mentions of the same identifier found in both renderings of an article
are merged into one record with both sources attached.

Examples:
  datatrail extract --pdf-dir papers/pdf --xml-dir papers/xml
  datatrail extract --format csv --context-width 30 --pdf-dir papers/pdf
  datatrail extract paper.pdf paper.xml`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&pdfDir, "pdf-dir", "", "directory containing article PDFs")
	extractCmd.Flags().StringVar(&xmlDir, "xml-dir", "", "directory containing article XMLs")
	extractCmd.Flags().StringVar(&outputFormat, "format", "human", "output format (human, json, csv)")
	extractCmd.Flags().IntVar(&contextWidth, "context-width", pipeline.DefaultOptions().ContextWidth, "number of words of context on each side of a match")
	extractCmd.Flags().IntVar(&minSpecificity, "min-specificity", 0, "minimum pattern specificity rank for matches")
	extractCmd.Flags().IntVar(&numWorkers, "workers", runtime.NumCPU(), "number of parallel workers")
	extractCmd.Flags().BoolVar(&showProgress, "progress", true, "show progress while processing")
}

func runExtract(cmd *cobra.Command, args []string) error {
	opts := pipeline.Options{
		ContextWidth:   contextWidth,
		MinSpecificity: minSpecificity,
	}

	tasks, err := collectArticleTasks(args, opts)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		return fmt.Errorf("no input files found (use --pdf-dir/--xml-dir or pass files)")
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Processing %d articles with %d workers...\n", len(tasks), numWorkers)
	}

	results, failed := runPool(tasks)

	if len(failed) > 0 && !quiet {
		for _, r := range failed {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", r.Task.ID, r.Err)
		}
	}

	return outputResults(results)
}

// collectArticleTasks pairs PDF and XML files by basename. Every article
// id present in either directory becomes one task; explicit file
// arguments join the same map, so a lone PDF still gets processed.
func collectArticleTasks(args []string, opts pipeline.Options) ([]pipeline.ArticleTask, error) {
	pdfByID := make(map[string]string)
	xmlByID := make(map[string]string)

	if pdfDir != "" {
		paths, err := filepath.Glob(filepath.Join(pdfDir, "*.pdf"))
		if err != nil {
			return nil, fmt.Errorf("failed to list PDF directory: %w", err)
		}

		for _, p := range paths {
			pdfByID[articleID(p)] = p
		}
	}

	if xmlDir != "" {
		paths, err := filepath.Glob(filepath.Join(xmlDir, "*.xml"))
		if err != nil {
			return nil, fmt.Errorf("failed to list XML directory: %w", err)
		}

		for _, p := range paths {
			xmlByID[articleID(p)] = p
		}
	}

	for _, arg := range args {
		switch strings.ToLower(filepath.Ext(arg)) {
		case ".pdf":
			pdfByID[articleID(arg)] = arg
		case ".xml":
			xmlByID[articleID(arg)] = arg
		default:
			return nil, fmt.Errorf("unsupported file type: %s (expected .pdf or .xml)", arg)
		}
	}

	ids := make(map[string]bool)
	for id := range pdfByID {
		ids[id] = true
	}

	for id := range xmlByID {
		ids[id] = true
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}

	sort.Strings(sorted)

	tasks := make([]pipeline.ArticleTask, 0, len(sorted))
	for _, id := range sorted {
		tasks = append(tasks, pipeline.ArticleTask{
			ID:      id,
			PDFPath: pdfByID[id],
			XMLPath: xmlByID[id],
			Options: opts,
		})
	}

	return tasks, nil
}

func articleID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// processArticleTask is the worker body: extract whichever texts exist,
// run the pipeline on what was readable. Extraction failures degrade the
// article to its remaining source and are reported as diagnostics.
func processArticleTask(task pipeline.ArticleTask) (pipeline.Result, error) {
	article := pipeline.Article{ID: task.ID}

	var diagnostics []string

	if task.PDFPath != "" {
		text, err := textsource.ExtractPDF(task.PDFPath)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("pdf: %v", err))
		} else {
			article.PDFText = text
		}
	}

	if task.XMLPath != "" {
		text, err := textsource.ExtractXML(task.XMLPath)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("xml: %v", err))
		} else {
			article.XMLText = text
		}
	}

	result := pipeline.Process(article, task.Options)
	result.Diagnostics = append(diagnostics, result.Diagnostics...)

	return result, nil
}

func runPool(tasks []pipeline.ArticleTask) (results []pipeline.Result, failed []pipeline.ArticleTaskResult) {
	pool := pipeline.NewWorkerPool(numWorkers, processArticleTask)
	pool.Start()

	var progressTracker *pipeline.ProgressTracker
	if showProgress && !quiet {
		progressTracker = pipeline.NewProgressTracker()
	}

	var progressMu sync.Mutex

	progressDone := make(chan struct{})

	go func() {
		defer close(progressDone)

		for update := range pool.Progress() {
			if progressTracker != nil {
				progressMu.Lock()
				progressTracker.Update(update)
				progressMu.Unlock()
			}
		}
	}()

	tickerStop := make(chan struct{})
	if progressTracker != nil {
		go func() {
			ticker := time.NewTicker(500 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-tickerStop:
					return
				case <-ticker.C:
					progressMu.Lock()
					progressTracker.PrintProgress()
					progressMu.Unlock()
				}
			}
		}()
	}

	// The pool's channels are bounded, so submission must not wait for the
	// drain loop: a batch larger than the buffers would deadlock otherwise.
	go func() {
		for _, task := range tasks {
			pool.SubmitTask(task)
		}

		pool.Wait()
	}()

	for r := range pool.Results() {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}

		results = append(results, r.Result)
	}

	<-progressDone
	close(tickerStop)

	if progressTracker != nil {
		progressMu.Lock()
		progressTracker.PrintProgress()
		progressMu.Unlock()
		fmt.Println()
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ArticleID < results[j].ArticleID })

	return results, failed
}

func outputResults(results []pipeline.Result) error {
	switch strings.ToLower(outputFormat) {
	case "json":
		return outputJSON(results)
	case "csv":
		return outputCSV(results)
	case "human":
		return outputHuman(results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(results []pipeline.Result) error {
	totalRecords := 0
	for _, r := range results {
		totalRecords += len(r.Records)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(map[string]interface{}{
		"summary": map[string]interface{}{
			"articles_processed": len(results),
			"total_records":      totalRecords,
		},
		"articles": results,
	})
}

func outputCSV(results []pipeline.Result) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	header := []string{"article_id", "identifier", "identifier_type", "sources", "context", "context_count"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		for _, record := range result.Records {
			row := []string{
				record.ArticleID,
				record.Identifier,
				string(record.Type),
				record.Sources,
				record.Context,
				strconv.Itoa(record.ContextCount),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func outputHuman(results []pipeline.Result) error {
	totalRecords := 0
	byType := make(map[pipeline.IdentifierType]int)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Article", "Identifier", "Type", "Sources", "Contexts"})
	table.SetAutoWrapText(false)

	for _, result := range results {
		totalRecords += len(result.Records)

		for _, record := range result.Records {
			byType[record.Type]++

			table.Append([]string{
				record.ArticleID,
				truncate(record.Identifier, 60),
				string(record.Type),
				record.Sources,
				strconv.Itoa(record.ContextCount),
			})
		}

		for _, diag := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s\n", result.ArticleID, diag)
		}
	}

	table.Render()

	fmt.Printf("\nArticles: %d | Dataset references: %d\n", len(results), totalRecords)

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, string(t))
	}

	sort.Strings(types)

	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, byType[pipeline.IdentifierType(t)])
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-3]) + "..."
}
