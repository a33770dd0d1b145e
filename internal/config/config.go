// Package config holds this repository's run configuration: the flags
// cobra parses, overridable by GOOZE_REPAIR_* environment variables,
// validated once before any search begins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the fully resolved, validated configuration for one CLI
// invocation.
type Config struct {
	CompilerPath string
	HoleLevel    int
	Depth        int
	Debug        bool
	CheckTimeout time.Duration

	GA            bool
	Iterations    int
	Population    int
	MutationRate  float64
	CrossoverRate float64
	DropRate      float64
	StopOnResults bool
	ReplaceWinners bool
	Minimize      bool
	Islands       IslandConfig
	Tournament    TournamentConfig
	Seed          uint64
	Timeout       time.Duration

	ReportDir string
	Exclude   []string
}

// TournamentConfig carries C7's optional tournament-selection knobs; a
// zero Size means "use environmental selection with elitism" (spec.md
// §4.7's default when tournament is absent).
type TournamentConfig struct {
	Size   int
	Rounds int
}

// Enabled reports whether tournament selection was requested.
func (t TournamentConfig) Enabled() bool {
	return t.Size > 0
}

// IslandConfig carries C7's optional island-model knobs; a zero Count
// means "single population."
type IslandConfig struct {
	Count             int
	MigrationInterval int
	MigrationSize     int
	Ringwise          bool
}

// Enabled reports whether the island model was requested.
func (i IslandConfig) Enabled() bool {
	return i.Count > 1
}

// Default returns spec.md §4.7's documented GA defaults (mutationRate
// 0.2, crossoverRate 0.05, dropRate 0.2) plus fholes=2/fdepth=1.
func Default() Config {
	return Config{
		HoleLevel:     2,
		Depth:         1,
		CheckTimeout:  time.Second,
		Iterations:    20,
		Population:    32,
		MutationRate:  0.2,
		CrossoverRate: 0.05,
		DropRate:      0.2,
		Timeout:       5 * time.Minute,
	}
}

// ApplyEnv overlays GOOZE_REPAIR_* environment variables onto cfg,
// following the teacher's convention of flags-first with environment as a
// fallback layer: an unset or unparseable environment variable is
// silently ignored, leaving the flag-derived value in place.
func (c Config) ApplyEnv() Config {
	if v, ok := os.LookupEnv("GOOZE_REPAIR_COMPILER_PATH"); ok && v != "" {
		c.CompilerPath = v
	}

	if v, ok := os.LookupEnv("GOOZE_REPAIR_SEED"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}

	if v, ok := os.LookupEnv("GOOZE_REPAIR_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}

	return c
}

// Validate enforces spec.md §7's "Configuration invalid" row: negative
// depth/holes are fatal before any search begins.
func (c Config) Validate() error {
	if c.HoleLevel < 0 {
		return fmt.Errorf("config: -fholes must be >= 0, got %d", c.HoleLevel)
	}

	if c.Depth < 0 {
		return fmt.Errorf("config: -fdepth must be >= 0, got %d", c.Depth)
	}

	if c.GA {
		if c.Iterations < 1 {
			return fmt.Errorf("config: -iterations must be >= 1, got %d", c.Iterations)
		}

		if c.Population < 2 || c.Population%2 != 0 {
			return fmt.Errorf("config: -population must be even and >= 2, got %d", c.Population)
		}

		if c.Islands.Count < 0 {
			return fmt.Errorf("config: -islands must be >= 0, got %d", c.Islands.Count)
		}

		if c.Tournament.Size < 0 || c.Tournament.Rounds < 0 {
			return fmt.Errorf("config: -tournament size and rounds must be >= 0")
		}

		for _, rate := range []struct {
			name  string
			value float64
		}{
			{"-mutation-rate", c.MutationRate},
			{"-crossover-rate", c.CrossoverRate},
			{"-drop-rate", c.DropRate},
		} {
			if rate.value < 0 || rate.value > 1 {
				return fmt.Errorf("config: %s must be in [0,1], got %v", rate.name, rate.value)
			}
		}
	}

	return nil
}
