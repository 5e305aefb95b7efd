package config

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned by Preset for names it does not know.
var ErrUnknownPreset = errors.New("unknown preset")

// Clamp pulls every numeric setting into its legal range. It is the only
// place configuration is normalized; the loan core trusts the result
// (tier3 >= tier2, apr_max >= apr_min).
func (c *Config) Clamp() {
	t := &c.Tiers
	t.RepTier2 = clampInt(t.RepTier2, 0, 1000)
	t.RepTier3 = clampInt(t.RepTier3, 0, 1000)
	if t.RepTier3 < t.RepTier2 {
		t.RepTier3 = t.RepTier2
	}

	t.MaxLoansTier1 = clampInt(t.MaxLoansTier1, 0, 10)
	t.MaxLoansTier2 = clampInt(t.MaxLoansTier2, 0, 10)
	t.MaxLoansTier3 = clampInt(t.MaxLoansTier3, 0, 10)

	t.MaxPrincipalTier1 = clampFloat(t.MaxPrincipalTier1, 0, 1_000_000_000)
	t.MaxPrincipalTier2 = clampFloat(t.MaxPrincipalTier2, 0, 1_000_000_000)
	t.MaxPrincipalTier3 = clampFloat(t.MaxPrincipalTier3, 0, 1_000_000_000)

	l := &c.Loans
	l.MaxTermMonths = clampInt(l.MaxTermMonths, 1, 240)
	l.APRMin = clampFloat(l.APRMin, 0, 1)
	l.APRMax = clampFloat(l.APRMax, 0, 1)
	if l.APRMax < l.APRMin {
		l.APRMax = l.APRMin
	}

	if c.Simulation.CheckInterval < 0 || c.Simulation.CheckInterval != c.Simulation.CheckInterval {
		c.Simulation.CheckInterval = 0
	}
}

// Preset returns the named difficulty preset (easy, normal or hard) on top
// of Default.
func Preset(name string) (*Config, error) {
	cfg := Default()

	switch name {
	case "easy":
		cfg.Tiers.RepTier2, cfg.Tiers.RepTier3 = 150, 250
		cfg.Loans.APRMin, cfg.Loans.APRMax = 0.01, 0.20
		cfg.Loans.MaxTermMonths = 120
	case "", "normal":
		cfg.Tiers.RepTier2, cfg.Tiers.RepTier3 = 200, 300
		cfg.Loans.APRMin, cfg.Loans.APRMax = 0.01, 0.25
		cfg.Loans.MaxTermMonths = 120
	case "hard":
		cfg.Tiers.RepTier2, cfg.Tiers.RepTier3 = 220, 330
		cfg.Loans.APRMin, cfg.Loans.APRMax = 0.02, 0.30
		cfg.Loans.MaxTermMonths = 120
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	cfg.Clamp()
	return cfg, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NaN clamps to lo.
func clampFloat(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
