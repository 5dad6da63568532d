package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"healthinfo-simplifier/internal/infra/fetcher"
	"healthinfo-simplifier/internal/infra/langdetect"
	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
)

// Output formats for --output.
const (
	outputText = "text"
	outputJSON = "json"
)

var (
	analyzeURL      string
	analyzeHTML     bool
	analyzeOutput   string
	analyzeNoDetect bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Score the readability of text",
	Long: `Score the readability of each file, or of stdin when no file is given.

With --html the input is treated as HTML and converted to text first.
With --url the readable content of the page is fetched and scored instead.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Fetch and score a web page")
	analyzeCmd.Flags().BoolVar(&analyzeHTML, "html", false, "Treat input as HTML")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", outputText, "Output format: text or json")
	analyzeCmd.Flags().BoolVar(&analyzeNoDetect, "no-detect", false, "Skip language detection")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzedDoc pairs a result with where its input came from.
type analyzedDoc struct {
	Name   string            `json:"name"`
	Result *analyzeUC.Result `json:"result"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(analyzeOutput); err != nil {
		return err
	}
	if analyzeURL != "" && (len(args) > 0 || analyzeHTML) {
		return fmt.Errorf("--url cannot be combined with files or --html")
	}

	svc, err := newAnalyzeService(analyzeURL != "", !analyzeNoDetect)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	docs := make([]analyzedDoc, 0, len(inputs))
	for _, in := range inputs {
		res, err := svc.Analyze(ctx, in.toInput())
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		docs = append(docs, analyzedDoc{Name: in.name, Result: res})
	}

	out := cmd.OutOrStdout()
	if analyzeOutput == outputJSON {
		return writeJSON(out, docs)
	}
	for i, d := range docs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printResult(out, d)
	}
	return nil
}

func newAnalyzeService(withFetcher, withDetector bool) (*analyzeUC.Service, error) {
	cfg, err := analyzeUC.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load analyze configuration: %w", err)
	}

	var pageFetcher analyzeUC.PageFetcher
	if withFetcher {
		fetchCfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load page fetch configuration: %w", err)
		}
		pageFetcher = fetcher.NewReadabilityFetcher(fetchCfg)
	}

	var detector analyzeUC.LanguageDetector
	if withDetector {
		detectCfg, err := langdetect.LoadConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load language detection configuration: %w", err)
		}
		detector = langdetect.NewDetector(detectCfg)
	}

	return analyzeUC.NewService(pageFetcher, fetcher.HTMLToText, detector, cfg), nil
}

type namedInput struct {
	name string
	body string
}

func (n namedInput) toInput() analyzeUC.Input {
	switch {
	case analyzeURL != "":
		return analyzeUC.Input{URL: analyzeURL}
	case analyzeHTML:
		return analyzeUC.Input{HTML: n.body}
	default:
		return analyzeUC.Input{Text: n.body}
	}
}

func collectInputs(stdin io.Reader, files []string) ([]namedInput, error) {
	if analyzeURL != "" {
		return []namedInput{{name: analyzeURL}}, nil
	}
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []namedInput{{name: "-", body: string(data)}}, nil
	}

	inputs := make([]namedInput, 0, len(files))
	for _, path := range files {
		// #nosec G304 -- paths are given by the user running the command
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, namedInput{name: path, body: string(data)})
	}
	return inputs, nil
}

func printResult(w io.Writer, d analyzedDoc) {
	r := d.Result
	m := r.Report.Metrics

	fmt.Fprintf(w, "== %s ==\n", d.Name)
	if r.Title != "" {
		fmt.Fprintf(w, "Title:               %s\n", r.Title)
	}
	fmt.Fprintf(w, "Grade level:         %.1f (%s)\n", m.FleschKincaidGrade, r.Report.GradeLabel)
	fmt.Fprintf(w, "Reading ease:        %.1f (%s)\n", m.FleschReadingEase, r.Report.EaseLabel)
	fmt.Fprintf(w, "Words:               %d\n", m.WordCount)
	fmt.Fprintf(w, "Sentences:           %d\n", m.SentenceCount)
	fmt.Fprintf(w, "Avg sentence length: %.1f\n", m.AvgSentenceLength)
	fmt.Fprintf(w, "Complex words:       %d\n", m.ComplexWordCount)
	fmt.Fprintf(w, "Meets target:        %s\n", yesNo(r.Report.MeetsTarget))
	if r.Language != nil {
		fmt.Fprintf(w, "Language:            %s\n", r.Language.Name)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

func checkOutputFormat(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
