package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the complete loan simulation configuration
type Config struct {
	Tiers      TierConfig       `json:"tiers" yaml:"tiers" toml:"tiers"`
	Loans      LoanConfig       `json:"loans" yaml:"loans" toml:"loans"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation" toml:"simulation"`
	Journal    JournalConfig    `json:"journal" yaml:"journal" toml:"journal"`
	Store      StoreConfig      `json:"store" yaml:"store" toml:"store"`
	Log        LogConfig        `json:"log" yaml:"log" toml:"log"`
}

// TierConfig holds the reputation thresholds and the per-tier caps.
type TierConfig struct {
	RepTier2 int `json:"rep_tier2" yaml:"rep_tier2" toml:"rep_tier2"`
	RepTier3 int `json:"rep_tier3" yaml:"rep_tier3" toml:"rep_tier3"`

	MaxLoansTier1 int `json:"max_loans_tier1" yaml:"max_loans_tier1" toml:"max_loans_tier1"`
	MaxLoansTier2 int `json:"max_loans_tier2" yaml:"max_loans_tier2" toml:"max_loans_tier2"`
	MaxLoansTier3 int `json:"max_loans_tier3" yaml:"max_loans_tier3" toml:"max_loans_tier3"`

	MaxPrincipalTier1 float64 `json:"max_principal_tier1" yaml:"max_principal_tier1" toml:"max_principal_tier1"`
	MaxPrincipalTier2 float64 `json:"max_principal_tier2" yaml:"max_principal_tier2" toml:"max_principal_tier2"`
	MaxPrincipalTier3 float64 `json:"max_principal_tier3" yaml:"max_principal_tier3" toml:"max_principal_tier3"`
}

// LoanConfig bounds the terms a new loan can be written with.
type LoanConfig struct {
	MaxTermMonths int     `json:"max_term_months" yaml:"max_term_months" toml:"max_term_months"`
	APRMin        float64 `json:"apr_min" yaml:"apr_min" toml:"apr_min"`
	APRMax        float64 `json:"apr_max" yaml:"apr_max" toml:"apr_max"`
}

// SimulationConfig describes the host clock and the scripted run.
type SimulationConfig struct {
	DaySeconds    float64 `json:"day_seconds" yaml:"day_seconds" toml:"day_seconds"`          // 6h Kerbin day
	MonthDays     int     `json:"month_days" yaml:"month_days" toml:"month_days"`             // days per payment period
	CheckInterval float64 `json:"check_interval" yaml:"check_interval" toml:"check_interval"` // seconds between sweeps

	StartUT         float64 `json:"start_ut" yaml:"start_ut" toml:"start_ut"`
	StartFunds      float64 `json:"start_funds" yaml:"start_funds" toml:"start_funds"`
	StartReputation float64 `json:"start_reputation" yaml:"start_reputation" toml:"start_reputation"`

	Steps []Step `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
}

// MonthSeconds is the length of one payment period on the simulation clock.
func (s SimulationConfig) MonthSeconds() float64 {
	return float64(s.MonthDays) * s.DaySeconds
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type         string `json:"type" yaml:"type" toml:"type"` // "none", "csv" or "sqlite"
	PaymentsFile string `json:"payments_file,omitempty" yaml:"payments_file,omitempty" toml:"payments_file,omitempty"`
	EventsFile   string `json:"events_file,omitempty" yaml:"events_file,omitempty" toml:"events_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty" toml:"db_path,omitempty"`
}

// StoreConfig selects where the saved game tree lives.
type StoreConfig struct {
	Type      string `json:"type" yaml:"type" toml:"type"` // "none", "file", "sqlite" or "redis"
	Path      string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" toml:"redis_addr,omitempty"`
	RedisDB   int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty" toml:"redis_db,omitempty"`
	RedisKey  string `json:"redis_key,omitempty" yaml:"redis_key,omitempty" toml:"redis_key,omitempty"`
}

// LogConfig controls the slog handler and the optional rotated log file.
type LogConfig struct {
	Level      string `json:"level" yaml:"level" toml:"level"`
	Format     string `json:"format" yaml:"format" toml:"format"` // "json" or "text"
	File       string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty" toml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty" toml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty" toml:"max_age_days,omitempty"`
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFromFile loads configuration from a file. TOML is picked by extension;
// everything else is tried as YAML first, then JSON. The result is clamped
// and validated.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	cfg.Simulation.Steps = nil

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config (toml): %w", err)
		}
	} else {
		// Try YAML first, fall back to JSON
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			err = json.Unmarshal(data, cfg)
			if err != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
			}
		}
	}

	cfg.Clamp()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (TOML, YAML or JSON based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch {
	case isTOML(path):
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	case isYAML(path):
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks the parts of the configuration that clamping cannot repair.
func (c *Config) Validate() error {
	if c.Simulation.DaySeconds <= 0 {
		return fmt.Errorf("simulation.day_seconds must be positive")
	}
	if c.Simulation.MonthDays < 1 {
		return fmt.Errorf("simulation.month_days must be at least 1")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.PaymentsFile == "" || c.Journal.EventsFile == "" {
			return fmt.Errorf("journal payments_file and events_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch c.Store.Type {
	case "", "none":
	case "file", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store path required for %s type", c.Store.Type)
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store redis_addr required for redis type")
		}
	default:
		return fmt.Errorf("store.type must be 'none', 'file', 'sqlite' or 'redis'")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format must be 'json' or 'text'")
	}

	for i, s := range c.Simulation.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("simulation.steps[%d]: %w", i, err)
		}
	}
	return nil
}

// Default returns the Normal preset with a CSV journal and file store.
func Default() *Config {
	cfg := &Config{
		Tiers: TierConfig{
			RepTier2:          200,
			RepTier3:          300,
			MaxLoansTier1:     1,
			MaxLoansTier2:     2,
			MaxLoansTier3:     3,
			MaxPrincipalTier1: 500_000,
			MaxPrincipalTier2: 2_000_000,
			MaxPrincipalTier3: 10_000_000,
		},
		Loans: LoanConfig{
			MaxTermMonths: 120,
			APRMin:        0.01,
			APRMax:        0.25,
		},
		Simulation: SimulationConfig{
			DaySeconds:      6 * 3600,
			MonthDays:       30,
			CheckInterval:   5,
			StartFunds:      250_000,
			StartReputation: 150,
			Steps: []Step{
				{Action: ActionTake, Amount: 100_000, Term: 24},
				{After: "6mo", Action: ActionAdvance},
				{Action: ActionReputation, Value: 320},
				{Action: ActionTake, Amount: 1_000_000, Term: 60},
				{After: "1y", Action: ActionPayOff, Loan: "0"},
				{After: "2y", Action: ActionAdvance},
			},
		},
		Journal: JournalConfig{
			Type:         "csv",
			PaymentsFile: "./payments.csv",
			EventsFile:   "./loan_events.csv",
		},
		Store: StoreConfig{
			Type: "file",
			Path: "./careerloans.save.yaml",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
	cfg.Clamp()
	return cfg
}
