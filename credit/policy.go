package credit

import "github.com/rustyeddy/careerloans/config"

const (
	// MaxReputation is the top of the reputation scale used for tiers and APR.
	MaxReputation = 1000.0

	baseAPRHigh = 0.20 // APR at zero reputation
	baseAPRLow  = 0.02 // APR at MaxReputation
)

// Caps is what a borrower with a given reputation may take on.
type Caps struct {
	Tier         int // 1..3
	MaxLoans     int
	MaxPrincipal float64
	APR          float64
}

// ClampReputation pulls reputation into [0, MaxReputation]. NaN is treated as 0.
func ClampReputation(rep float64) float64 {
	if rep != rep || rep < 0 {
		return 0
	}
	if rep > MaxReputation {
		return MaxReputation
	}
	return rep
}

// CapsFor maps reputation to the tier caps and the APR a new loan would get.
// Thresholds are inclusive: reputation == rep_tier2 is tier 2.
func CapsFor(reputation float64, cfg *config.Config) Caps {
	rep := ClampReputation(reputation)
	t := cfg.Tiers

	caps := Caps{APR: APRFor(rep, cfg)}
	switch {
	case rep >= float64(t.RepTier3):
		caps.Tier, caps.MaxLoans, caps.MaxPrincipal = 3, t.MaxLoansTier3, t.MaxPrincipalTier3
	case rep >= float64(t.RepTier2):
		caps.Tier, caps.MaxLoans, caps.MaxPrincipal = 2, t.MaxLoansTier2, t.MaxPrincipalTier2
	default:
		caps.Tier, caps.MaxLoans, caps.MaxPrincipal = 1, t.MaxLoansTier1, t.MaxPrincipalTier1
	}
	return caps
}

// APRFor interpolates linearly from 20% at zero reputation to 2% at
// MaxReputation, then clamps into [apr_min, apr_max].
func APRFor(reputation float64, cfg *config.Config) float64 {
	rep := ClampReputation(reputation)
	apr := baseAPRHigh - (rep/MaxReputation)*(baseAPRHigh-baseAPRLow)

	if apr < cfg.Loans.APRMin {
		apr = cfg.Loans.APRMin
	}
	if apr > cfg.Loans.APRMax {
		apr = cfg.Loans.APRMax
	}
	return apr
}
