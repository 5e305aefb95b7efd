package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 200, cfg.Tiers.RepTier2)
	assert.Equal(t, 300, cfg.Tiers.RepTier3)
	assert.Equal(t, 120, cfg.Loans.MaxTermMonths)
	assert.Equal(t, 0.01, cfg.Loans.APRMin)
	assert.Equal(t, 0.25, cfg.Loans.APRMax)
	assert.Equal(t, 30*6*3600.0, cfg.Simulation.MonthSeconds())
	assert.NoError(t, cfg.Validate())
}

func TestPreset(t *testing.T) {
	tests := []struct {
		name           string
		tier2, tier3   int
		aprMin, aprMax float64
	}{
		{"easy", 150, 250, 0.01, 0.20},
		{"normal", 200, 300, 0.01, 0.25},
		{"", 200, 300, 0.01, 0.25},
		{"hard", 220, 330, 0.02, 0.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Preset(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.tier2, cfg.Tiers.RepTier2)
			assert.Equal(t, tt.tier3, cfg.Tiers.RepTier3)
			assert.Equal(t, tt.aprMin, cfg.Loans.APRMin)
			assert.Equal(t, tt.aprMax, cfg.Loans.APRMax)
			assert.Equal(t, 120, cfg.Loans.MaxTermMonths)
		})
	}

	_, err := Preset("nightmare")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestClamp(t *testing.T) {
	cfg := Default()
	cfg.Tiers.RepTier2 = 1500
	cfg.Tiers.RepTier3 = 400
	cfg.Tiers.MaxLoansTier1 = -1
	cfg.Tiers.MaxLoansTier3 = 99
	cfg.Tiers.MaxPrincipalTier2 = -5
	cfg.Tiers.MaxPrincipalTier3 = 5e12
	cfg.Loans.MaxTermMonths = 0
	cfg.Loans.APRMin = 0.3
	cfg.Loans.APRMax = 0.1
	cfg.Simulation.CheckInterval = math.NaN()

	cfg.Clamp()

	assert.Equal(t, 1000, cfg.Tiers.RepTier2)
	assert.Equal(t, 1000, cfg.Tiers.RepTier3, "tier3 raised to tier2")
	assert.Equal(t, 0, cfg.Tiers.MaxLoansTier1)
	assert.Equal(t, 10, cfg.Tiers.MaxLoansTier3)
	assert.Equal(t, 0.0, cfg.Tiers.MaxPrincipalTier2)
	assert.Equal(t, 1e9, cfg.Tiers.MaxPrincipalTier3)
	assert.Equal(t, 1, cfg.Loans.MaxTermMonths)
	assert.Equal(t, 0.3, cfg.Loans.APRMin)
	assert.Equal(t, 0.3, cfg.Loans.APRMax, "apr_max raised to apr_min")
	assert.Equal(t, 0.0, cfg.Simulation.CheckInterval)

	cfg.Loans.MaxTermMonths = 500
	cfg.Loans.APRMin = -1
	cfg.Loans.APRMax = 7
	cfg.Clamp()
	assert.Equal(t, 240, cfg.Loans.MaxTermMonths)
	assert.Equal(t, 0.0, cfg.Loans.APRMin)
	assert.Equal(t, 1.0, cfg.Loans.APRMax)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "no journal no store",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: "none"}; c.Store = StoreConfig{} },
		},
		{
			name:    "zero day length",
			mutate:  func(c *Config) { c.Simulation.DaySeconds = 0 },
			wantErr: true,
			errMsg:  "simulation.day_seconds must be positive",
		},
		{
			name:    "zero month days",
			mutate:  func(c *Config) { c.Simulation.MonthDays = 0 },
			wantErr: true,
			errMsg:  "simulation.month_days must be at least 1",
		},
		{
			name:    "csv without files",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "csv"} },
			wantErr: true,
			errMsg:  "journal payments_file and events_file required for CSV type",
		},
		{
			name:    "sqlite without db",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} },
			wantErr: true,
			errMsg:  "journal db_path required for SQLite type",
		},
		{
			name:    "unknown journal",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name:    "file store without path",
			mutate:  func(c *Config) { c.Store = StoreConfig{Type: "file"} },
			wantErr: true,
			errMsg:  "store path required for file type",
		},
		{
			name:    "redis store without addr",
			mutate:  func(c *Config) { c.Store = StoreConfig{Type: "redis"} },
			wantErr: true,
			errMsg:  "store redis_addr required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad step action",
			mutate:  func(c *Config) { c.Simulation.Steps = []Step{{Action: "borrow"}} },
			wantErr: true,
			errMsg:  `simulation.steps[0]: unknown action "borrow"`,
		},
		{
			name:    "take without term",
			mutate:  func(c *Config) { c.Simulation.Steps = []Step{{Action: ActionTake, Amount: 10}} },
			wantErr: true,
			errMsg:  "take requires term >= 1",
		},
		{
			name:    "nan step delay",
			mutate:  func(c *Config) { c.Simulation.Steps = []Step{{Action: ActionAdvance, After: "NaN"}} },
			wantErr: true,
			errMsg:  "invalid duration",
		},
		{
			name:    "bad step delay",
			mutate:  func(c *Config) { c.Simulation.Steps = []Step{{Action: ActionAdvance, After: "soon"}} },
			wantErr: true,
			errMsg:  "invalid duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"toml format", ".toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Preset("hard")
			require.NoError(t, err)
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Tiers, loaded.Tiers)
			assert.Equal(t, cfg.Loans, loaded.Loans)
			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Store, loaded.Store)
			assert.Equal(t, cfg.Simulation.Steps, loaded.Simulation.Steps)
		})
	}
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clamp.yaml")
	doc := `
tiers:
  rep_tier2: 400
  rep_tier3: 100
loans:
  max_term_months: 999
  apr_min: 0.5
  apr_max: 0.2
journal:
  type: none
store:
  type: none
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Tiers.RepTier3)
	assert.Equal(t, 240, cfg.Loans.MaxTermMonths)
	assert.Equal(t, 0.5, cfg.Loans.APRMax)
	// unspecified sections keep defaults
	assert.Equal(t, 3, cfg.Tiers.MaxLoansTier3)
	assert.Empty(t, cfg.Simulation.Steps)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("tiers = ["), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestParseSimDuration(t *testing.T) {
	sim := Default().Simulation
	month := sim.MonthSeconds()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"90", 90, false},
		{"90s", 90, false},
		{"30m", 1800, false},
		{"6h", 21600, false},
		{"2d", 2 * 21600, false},
		{"1mo", month, false},
		{"1.5mo", 1.5 * month, false},
		{"1y", 12 * month, false},
		{"-1d", 0, true},
		{"soon", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
		{"-Inf", 0, true},
		{"1e400", 0, true},
		{"1e300y", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Step{After: tt.in}.Delay(sim)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
