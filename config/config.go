// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	actionopts "github.com/reoring/actionopts"
	"github.com/reoring/actionopts/exprcheck"
	"github.com/reoring/actionopts/i18n"
)

// Config is the root configuration structure.
type Config struct {
	Speed       actionopts.Range  `yaml:"speed"`
	Expressions ExpressionsConfig `yaml:"expressions"`
	Language    string            `yaml:"language"` // "en" or "ja"
	Logging     LoggingConfig     `yaml:"logging"`
}

// ExpressionsConfig replaces built-in checks with expr-lang expressions over
// `value` and `field`. Empty entries keep the built-in check.
type ExpressionsConfig struct {
	Speed           string `yaml:"speed"`
	Integer         string `yaml:"integer"`
	PositiveInteger string `yaml:"positive_integer"`
	Boolean         string `yaml:"boolean"`
	Timeout         string `yaml:"timeout"` // assertion timeouts
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := base()
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML. ${VAR} references are expanded
// from the environment first.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	cfg := base()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies ACTIONOPTS_* environment variables to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ACTIONOPTS_LANG"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("ACTIONOPTS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ACTIONOPTS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("ACTIONOPTS_SPEED_MIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Speed.Min = f
		}
	}
	if v := os.Getenv("ACTIONOPTS_SPEED_MAX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Speed.Max = f
		}
	}
}

// base is the configuration decoding starts from, so a file or environment
// setting one speed bound keeps the default of the other.
func base() Config {
	return Config{Speed: actionopts.DefaultSpeedRange}
}

func setDefaults(cfg *Config) {
	// An explicit null "speed:" clears both bounds.
	if cfg.Speed == (actionopts.Range{}) {
		cfg.Speed = actionopts.DefaultSpeedRange
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	if cfg.Speed.Min > cfg.Speed.Max {
		return fmt.Errorf("speed.min (%g) must not exceed speed.max (%g)", cfg.Speed.Min, cfg.Speed.Max)
	}
	validLanguages := map[string]bool{"en": true, "ja": true}
	if !validLanguages[cfg.Language] {
		return fmt.Errorf("language must be 'en' or 'ja', got %q", cfg.Language)
	}
	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}
	if _, err := cfg.Predicates(); err != nil {
		return err
	}
	return nil
}

// Predicates builds the catalog predicate set: built-in checks bound to the
// configured speed range, with expression overrides applied.
func (c *Config) Predicates() (actionopts.Predicates, error) {
	r := c.Speed
	p := actionopts.Predicates{
		Integer:                  actionopts.IntegerPredicate(actionopts.ActionIntegerOption),
		PositiveInteger:          actionopts.PositiveIntegerPredicate(actionopts.ActionPositiveIntegerOption),
		Boolean:                  actionopts.BooleanPredicate(actionopts.ActionBooleanOption),
		Speed:                    actionopts.SpeedPredicate(actionopts.ActionSpeedOption, r),
		AssertionPositiveInteger: actionopts.PositiveIntegerPredicate(actionopts.AssertionPositiveIntegerOption),
		SpeedRange:               &r,
	}
	overrides := []struct {
		name string
		expr string
		kind actionopts.ErrorKind
		dst  *actionopts.Predicate
		ps   map[string]any
	}{
		{"speed", c.Expressions.Speed, actionopts.ActionSpeedOption, &p.Speed, map[string]any{"min": r.Min, "max": r.Max}},
		{"integer", c.Expressions.Integer, actionopts.ActionIntegerOption, &p.Integer, nil},
		{"positive_integer", c.Expressions.PositiveInteger, actionopts.ActionPositiveIntegerOption, &p.PositiveInteger, nil},
		{"boolean", c.Expressions.Boolean, actionopts.ActionBooleanOption, &p.Boolean, nil},
		{"timeout", c.Expressions.Timeout, actionopts.AssertionPositiveIntegerOption, &p.AssertionPositiveInteger, nil},
	}
	for _, o := range overrides {
		if o.expr == "" {
			continue
		}
		pred, err := exprcheck.New(o.kind, o.expr, o.ps)
		if err != nil {
			return actionopts.Predicates{}, fmt.Errorf("expressions.%s: %w", o.name, err)
		}
		*o.dst = pred
	}
	if c.Expressions.Speed != "" {
		// The range no longer describes what the expression enforces.
		p.SpeedRange = nil
	}
	return p, nil
}

// Catalog builds an option catalog from the configured predicates.
func (c *Config) Catalog() (*actionopts.Catalog, error) {
	p, err := c.Predicates()
	if err != nil {
		return nil, err
	}
	return actionopts.NewCatalog(p)
}

// Apply installs the configured message language.
func (c *Config) Apply() { i18n.SetLanguage(c.Language) }

// Logger builds a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if c.Logging.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
