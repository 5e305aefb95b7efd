package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Step actions understood by the scripted simulation.
const (
	ActionAdvance    = "advance"
	ActionTake       = "take"
	ActionPayOff     = "payoff"
	ActionReputation = "reputation"
	ActionFunds      = "funds"
)

// Step is one scripted event: the clock moves forward by After, then Action
// runs.
type Step struct {
	After  string  `json:"after,omitempty" yaml:"after,omitempty" toml:"after,omitempty"` // e.g. "90s", "6h", "30d", "6mo", "1y"
	Action string  `json:"action" yaml:"action" toml:"action"`
	Amount float64 `json:"amount,omitempty" yaml:"amount,omitempty" toml:"amount,omitempty"`
	Term   int     `json:"term,omitempty" yaml:"term,omitempty" toml:"term,omitempty"`
	Loan   string  `json:"loan,omitempty" yaml:"loan,omitempty" toml:"loan,omitempty"` // index into active loans, or an id
	Value  float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

func (s Step) validate() error {
	switch s.Action {
	case ActionAdvance, ActionReputation, ActionFunds:
	case ActionTake:
		if s.Amount <= 0 {
			return fmt.Errorf("take requires a positive amount")
		}
		if s.Term < 1 {
			return fmt.Errorf("take requires term >= 1")
		}
	case ActionPayOff:
		if strings.TrimSpace(s.Loan) == "" {
			return fmt.Errorf("payoff requires a loan index or id")
		}
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}

	if _, err := ParseSimDuration(s.After, Default().Simulation); err != nil {
		return err
	}
	return nil
}

// Delay converts After into simulation seconds using the calendar in sim.
func (s Step) Delay(sim SimulationConfig) (float64, error) {
	return ParseSimDuration(s.After, sim)
}

// ParseSimDuration parses a non-negative simulation duration such as "30d"
// or "1.5mo". Units are s, m, h, d (sim days), mo (payment months) and y
// (twelve payment months). A bare number is seconds; "" is zero.
func ParseSimDuration(v string, sim SimulationConfig) (float64, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return 0, nil
	}

	units := []struct {
		suffix string
		secs   float64
	}{
		{"mo", sim.MonthSeconds()},
		{"y", 12 * sim.MonthSeconds()},
		{"d", sim.DaySeconds},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}

	mult := 1.0
	num := v
	for _, u := range units {
		if strings.HasSuffix(v, u.suffix) {
			mult = u.secs
			num = strings.TrimSuffix(v, u.suffix)
			break
		}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative duration %q", v)
	}
	secs := n * mult
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("invalid duration %q: not finite", v)
	}
	return secs, nil
}
