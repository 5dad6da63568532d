package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"healthinfo-simplifier/internal/config"
	"healthinfo-simplifier/internal/infra/history"
	"healthinfo-simplifier/internal/infra/rewriter"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
	envconfig "healthinfo-simplifier/pkg/config"
)

var (
	simplifyPreset      string
	simplifyInstruction string
	simplifyLanguage    string
	simplifyBullets     bool
	simplifyOutput      string
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [text]",
	Short: "Rewrite text to a plainer reading level",
	Long: `Rewrite text through the provider selected by REWRITER_PROVIDER and print
the result with its readability before and after.

The text is taken from the arguments, or from stdin when none are given.
Presets come from PRESETS_FILE merged over the built-in ones.`,
	Example: `  readability simplify "Hypertension is a chronic condition."
  cat leaflet.txt | readability simplify --preset translate --language Spanish`,
	RunE: runSimplify,
}

func init() {
	simplifyCmd.Flags().StringVarP(&simplifyPreset, "preset", "p", "", "Instruction preset (default simplify)")
	simplifyCmd.Flags().StringVarP(&simplifyInstruction, "instruction", "i", "", "Custom instruction, overrides the preset")
	simplifyCmd.Flags().StringVarP(&simplifyLanguage, "language", "l", "", "Output language")
	simplifyCmd.Flags().BoolVar(&simplifyBullets, "bullets", false, "Format the result as bullet points")
	simplifyCmd.Flags().StringVarP(&simplifyOutput, "output", "o", outputText, "Output format: text or json")

	rootCmd.AddCommand(simplifyCmd)
}

func runSimplify(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(simplifyOutput); err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rwCfg, err := config.LoadRewriterConfig()
	if err != nil {
		return err
	}
	rw, closeRewriter, err := rewriter.New(ctx, rwCfg)
	if err != nil {
		return fmt.Errorf("failed to create rewriter: %w", err)
	}
	defer func() {
		if err := closeRewriter(); err != nil {
			slog.Warn("failed to close rewriter", slog.Any("error", err))
		}
	}()

	presets, err := cliPresets()
	if err != nil {
		return err
	}

	svc := simplifyUC.NewService(rw, history.NewMemoryStore(1), presets)
	res, err := svc.Process(ctx, simplifyUC.Input{
		Text:        text,
		Preset:      simplifyPreset,
		Instruction: simplifyInstruction,
		UseBullets:  simplifyBullets,
		Language:    simplifyLanguage,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if simplifyOutput == outputJSON {
		return writeJSON(out, res)
	}
	printSimplified(out, res)
	return nil
}

func cliPresets() ([]simplifyUC.Preset, error) {
	presets := simplifyUC.DefaultPresets()
	path := envconfig.GetEnvString("PRESETS_FILE", "")
	if path == "" {
		return presets, nil
	}
	specs, err := config.LoadPresets(path)
	if err != nil {
		return nil, err
	}
	return simplifyUC.MergePresets(presets, simplifyUC.PresetsFromSpecs(specs)), nil
}

func printSimplified(w io.Writer, res *simplifyUC.Output) {
	before, after := res.Before.Metrics, res.After.Metrics

	fmt.Fprintln(w, res.Result)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Preset:       %s (%s)\n", res.Preset, res.Provider)
	fmt.Fprintf(w, "Grade level:  %.1f -> %.1f (%+.1f)\n", before.FleschKincaidGrade, after.FleschKincaidGrade, res.Comparison.GradeDelta)
	fmt.Fprintf(w, "Reading ease: %.1f -> %.1f (%+.1f)\n", before.FleschReadingEase, after.FleschReadingEase, res.Comparison.EaseDelta)
	fmt.Fprintf(w, "Words:        %d -> %d\n", before.WordCount, after.WordCount)
	fmt.Fprintf(w, "Improved:     %s\n", yesNo(res.Comparison.Improved))
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
