package analyze

import (
	"fmt"

	"healthinfo-simplifier/pkg/config"
)

// Config limits what a single analysis or batch may do.
type Config struct {
	// MaxInputChars caps the text analyzed per document, after HTML or
	// page extraction. Default: 100000.
	MaxInputChars int

	// ExcerptChars is the length of the text excerpt echoed in results.
	// Default: 200.
	ExcerptChars int

	// MaxBatchSize is the maximum number of documents per batch. Default: 50.
	MaxBatchSize int

	// BatchParallelism bounds concurrent analyses within a batch. Default: 8.
	BatchParallelism int
}

// DefaultConfig returns the default analysis limits.
func DefaultConfig() Config {
	return Config{
		MaxInputChars:    100000,
		ExcerptChars:     200,
		MaxBatchSize:     50,
		BatchParallelism: 8,
	}
}

// LoadConfigFromEnv reads ANALYZE_MAX_INPUT_CHARS, ANALYZE_EXCERPT_CHARS,
// ANALYZE_MAX_BATCH_SIZE and ANALYZE_BATCH_PARALLELISM.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		MaxInputChars:    config.GetEnvInt("ANALYZE_MAX_INPUT_CHARS", def.MaxInputChars),
		ExcerptChars:     config.GetEnvInt("ANALYZE_EXCERPT_CHARS", def.ExcerptChars),
		MaxBatchSize:     config.GetEnvInt("ANALYZE_MAX_BATCH_SIZE", def.MaxBatchSize),
		BatchParallelism: config.GetEnvInt("ANALYZE_BATCH_PARALLELISM", def.BatchParallelism),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("analyze config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c Config) Validate() error {
	if c.MaxInputChars < 100 {
		return fmt.Errorf("max input chars must be at least 100, got %d", c.MaxInputChars)
	}
	if c.ExcerptChars < 0 {
		return fmt.Errorf("excerpt chars must be non-negative, got %d", c.ExcerptChars)
	}
	if c.MaxBatchSize < 1 || c.MaxBatchSize > 1000 {
		return fmt.Errorf("max batch size must be between 1 and 1000, got %d", c.MaxBatchSize)
	}
	if c.BatchParallelism < 1 || c.BatchParallelism > 64 {
		return fmt.Errorf("batch parallelism must be between 1 and 64, got %d", c.BatchParallelism)
	}
	return nil
}
