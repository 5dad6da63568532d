package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"healthinfo-simplifier/internal/readability"
)

var (
	labelGrade float64
	labelEase  float64
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Describe a grade level or reading ease score",
	Long: `Print the display label for a Flesch-Kincaid grade level, a Flesch
reading ease score, or both.`,
	Example: `  readability label --grade 8.2
  readability label --ease 65 --grade 7`,
	Args: cobra.NoArgs,
	RunE: runLabel,
}

func init() {
	labelCmd.Flags().Float64Var(&labelGrade, "grade", 0, "Flesch-Kincaid grade level")
	labelCmd.Flags().Float64Var(&labelEase, "ease", 0, "Flesch reading ease score")

	rootCmd.AddCommand(labelCmd)
}

func runLabel(cmd *cobra.Command, _ []string) error {
	hasGrade := cmd.Flags().Changed("grade")
	hasEase := cmd.Flags().Changed("ease")
	if !hasGrade && !hasEase {
		return fmt.Errorf("at least one of --grade or --ease is required")
	}

	out := cmd.OutOrStdout()
	if hasGrade {
		if !isFinite(labelGrade) {
			return fmt.Errorf("--grade must be a finite number")
		}
		fmt.Fprintf(out, "Grade %.1f: %s\n", labelGrade, readability.GradeLabel(labelGrade))
	}
	if hasEase {
		if !isFinite(labelEase) {
			return fmt.Errorf("--ease must be a finite number")
		}
		fmt.Fprintf(out, "Ease %.1f: %s\n", labelEase, readability.EaseLabel(labelEase))
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
