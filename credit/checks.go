package credit

import (
	"fmt"
	"math"
)

// Violation codes.
const (
	CodeTooManyLoans  = "TOO_MANY_LOANS"
	CodeInvalidAmount = "INVALID_AMOUNT"
	CodeInvalidTerm   = "INVALID_TERM"
	CodeInvalidAPR    = "INVALID_APR"
)

// Violation is one reason a request was refused, with a stable code.
type Violation struct {
	Code string
	Msg  string
}

// Decision is the outcome of checking a loan request against caps. Amount
// and TermMonths carry the clamped values a loan would be written with.
type Decision struct {
	Allowed    bool
	Violations []Violation

	Amount     float64
	TermMonths int
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Has reports whether the decision carries a violation with code.
func (d Decision) Has(code string) bool {
	for _, v := range d.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Request is a borrower's ask, before any clamping.
type Request struct {
	Amount     float64
	APR        float64
	TermMonths int
}

// Evaluate checks a request against caps given the number of loans already
// active. Amount is clamped into [0, caps.MaxPrincipal] and the term into
// [1, maxTermMonths]; inputs that cannot be clamped into meaning (negative,
// non-finite, APR outside [0,1]) are violations.
func Evaluate(caps Caps, activeLoans int, maxTermMonths int, req Request) Decision {
	d := Decision{Allowed: true}

	if activeLoans >= caps.MaxLoans {
		d.add(CodeTooManyLoans,
			fmt.Sprintf("active loans %d >= max %d for tier %d", activeLoans, caps.MaxLoans, caps.Tier))
	}

	switch {
	case math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0):
		d.add(CodeInvalidAmount, "amount must be finite")
	case req.Amount <= 0:
		d.add(CodeInvalidAmount, fmt.Sprintf("amount %.2f must be positive", req.Amount))
	default:
		d.Amount = math.Min(req.Amount, caps.MaxPrincipal)
		if d.Amount <= 0 {
			d.add(CodeInvalidAmount, fmt.Sprintf("tier %d allows no principal", caps.Tier))
		}
	}

	if req.TermMonths < 1 {
		d.add(CodeInvalidTerm, fmt.Sprintf("term %d must be at least 1 month", req.TermMonths))
	} else {
		d.TermMonths = req.TermMonths
		if maxTermMonths >= 1 && d.TermMonths > maxTermMonths {
			d.TermMonths = maxTermMonths
		}
	}

	if math.IsNaN(req.APR) || req.APR < 0 || req.APR > 1 {
		d.add(CodeInvalidAPR, fmt.Sprintf("apr %v must be within [0, 1]", req.APR))
	}

	return d
}
