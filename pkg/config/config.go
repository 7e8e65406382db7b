// Package config loads skillwalk.toml: ExplorationBudget defaults, the
// cache directory layout, and an optional explicit strategy override
// (§4.10's "explicit override" branch, §7's Configuration error kind).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// Config is the parsed skillwalk.toml shape.
type Config struct {
	Budget       BudgetConfig `toml:"budget"`
	Cache        CacheConfig  `toml:"cache"`
	StrategyName string       `toml:"strategy,omitempty"`
}

// BudgetConfig mirrors model.ExplorationBudget with string durations (toml
// has no native duration type).
type BudgetConfig struct {
	MaxDepth           int      `toml:"max_depth,omitempty"`
	MaxScreens         int      `toml:"max_screens,omitempty"`
	MaxWallClock       string   `toml:"max_wall_clock,omitempty"`
	MaxInteractionsPer int      `toml:"max_interactions_per,omitempty"`
	ScrollAttemptsPer  int      `toml:"scroll_attempts_per,omitempty"`
	ScoutTapsPerScreen int      `toml:"scout_taps_per_screen,omitempty"`
	SkipPatterns       []string `toml:"skip_patterns,omitempty"`
	ScrollDedup        string   `toml:"scroll_dedup,omitempty"`
	ReplayVerify       bool     `toml:"replay_verify,omitempty"`
}

// CacheConfig lays out the on-disk cache directory (§9's models/components
// split: classification models and component definitions cache separately).
type CacheConfig struct {
	Dir           string `toml:"dir,omitempty"`
	ModelsDir     string `toml:"models_dir,omitempty"`
	ComponentsDir string `toml:"components_dir,omitempty"`
}

// Load parses a skillwalk.toml file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Find walks upward from dir looking for skillwalk.toml, stopping at a
// .git boundary. Returns ("", nil, nil) if none is found.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "skillwalk.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// Budget resolves the config's budget overrides onto model.DefaultBudget,
// leaving zero-valued fields at their default.
func (c *Config) Budget() (model.ExplorationBudget, error) {
	b := model.DefaultBudget()
	if c == nil {
		return b, nil
	}
	bc := c.Budget
	if bc.MaxDepth != 0 {
		b.MaxDepth = bc.MaxDepth
	}
	if bc.MaxScreens != 0 {
		b.MaxScreens = bc.MaxScreens
	}
	if bc.MaxWallClock != "" {
		d, err := time.ParseDuration(bc.MaxWallClock)
		if err != nil {
			return b, fmt.Errorf("budget.max_wall_clock: %w", err)
		}
		b.MaxWallClock = d
	}
	if bc.MaxInteractionsPer != 0 {
		b.MaxInteractionsPer = bc.MaxInteractionsPer
	}
	if bc.ScrollAttemptsPer != 0 {
		b.ScrollAttemptsPer = bc.ScrollAttemptsPer
	}
	if bc.ScoutTapsPerScreen != 0 {
		b.ScoutTapsPerScreen = bc.ScoutTapsPerScreen
	}
	if len(bc.SkipPatterns) > 0 {
		b.SkipPatterns = bc.SkipPatterns
	}
	if bc.ScrollDedup != "" {
		b.ScrollDedup = model.ScrollDedup(bc.ScrollDedup)
	}
	b.ReplayVerify = bc.ReplayVerify
	return b, nil
}

// CacheDirs resolves the models/ and components/ cache directories,
// expanding ${ENV_VAR} references and defaulting under Cache.Dir (or the
// user cache dir) when unset.
func (c *Config) CacheDirs() (models, components string, err error) {
	base := ""
	if c != nil && c.Cache.Dir != "" {
		base = expandEnvVars(c.Cache.Dir)
	} else {
		userCache, cerr := os.UserCacheDir()
		if cerr != nil {
			return "", "", cerr
		}
		base = filepath.Join(userCache, "skillwalk")
	}

	models = filepath.Join(base, "models")
	components = filepath.Join(base, "components")
	if c != nil && c.Cache.ModelsDir != "" {
		models = expandEnvVars(c.Cache.ModelsDir)
	}
	if c != nil && c.Cache.ComponentsDir != "" {
		components = expandEnvVars(c.Cache.ComponentsDir)
	}
	return models, components, nil
}

func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	})
}
