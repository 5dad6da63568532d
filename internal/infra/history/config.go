package history

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"healthinfo-simplifier/pkg/config"
)

// DefaultCapacity is the number of transformations kept before the oldest
// entry is evicted.
const DefaultCapacity = 50

// Config controls the in-memory history.
type Config struct {
	// Capacity is the maximum number of stored transformations.
	Capacity int

	// Retention drops entries older than this on every sweep. Zero keeps
	// entries until they are evicted by capacity.
	Retention time.Duration

	// SweepSchedule is the cron expression for retention sweeps.
	SweepSchedule string
}

// DefaultConfig returns the default history configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:      DefaultCapacity,
		Retention:     0,
		SweepSchedule: "@every 10m",
	}
}

// LoadConfigFromEnv reads HISTORY_CAPACITY, HISTORY_RETENTION and
// HISTORY_SWEEP_SCHEDULE on top of the defaults.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Capacity:      config.GetEnvInt("HISTORY_CAPACITY", def.Capacity),
		Retention:     config.GetEnvDuration("HISTORY_RETENTION", def.Retention),
		SweepSchedule: config.GetEnvString("HISTORY_SWEEP_SCHEDULE", def.SweepSchedule),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("history config: %w", err)
	}
	return cfg, nil
}

// Validate checks capacity bounds and, when retention is enabled, the
// sweep schedule.
func (c Config) Validate() error {
	if err := config.InRange("HISTORY_CAPACITY", c.Capacity, 1, 10000); err != nil {
		return err
	}
	if err := config.AtLeast("HISTORY_RETENTION", c.Retention, 0); err != nil {
		return err
	}
	if c.Retention > 0 {
		if _, err := cron.ParseStandard(c.SweepSchedule); err != nil {
			return fmt.Errorf("invalid sweep schedule %q: %w", c.SweepSchedule, err)
		}
	}
	return nil
}
