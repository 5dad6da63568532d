// Command readability scores English text from the command line and can
// rewrite it through the configured language model provider.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"healthinfo-simplifier/internal/observability/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "readability",
	Short: "Readability analysis for health information",
	Long: `Readability computes Flesch-Kincaid grade level, Flesch reading ease
and related statistics for English text, and rewrites text to a plainer
reading level using the configured provider.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(logging.New(logging.Config{
			Level:  level,
			Format: logging.FormatText,
			Output: cmd.ErrOrStderr(),
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
