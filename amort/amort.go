// Package amort holds the fixed-payment amortization formulas used by the
// loan ledger. Everything here is pure and works in whole currency units
// expressed as float64.
package amort

import "math"

// zeroRate is the monthly rate below which a loan is treated as interest free.
const zeroRate = 1e-12

// MonthlyRate converts an annual percentage rate (0.12 == 12%) into the
// per-period rate.
func MonthlyRate(apr float64) float64 {
	return apr / 12.0
}

// MonthlyPayment returns the fixed installment that retires principal over
// termMonths at the given APR. termMonths must be >= 1; callers validate.
func MonthlyPayment(principal, apr float64, termMonths int) float64 {
	r := MonthlyRate(apr)
	if math.Abs(r) < zeroRate {
		return principal / float64(termMonths)
	}
	denom := 1.0 - math.Pow(1.0+r, -float64(termMonths))
	return principal * (r / denom)
}

// RemainingBalance returns the outstanding balance after paymentsMade fixed
// installments of monthlyPayment, from the closed form. Never negative.
func RemainingBalance(principal, apr float64, paymentsMade int, monthlyPayment float64) float64 {
	r := MonthlyRate(apr)
	k := float64(paymentsMade)
	if math.Abs(r) < zeroRate {
		return math.Max(0, principal-k*monthlyPayment)
	}
	pow := math.Pow(1+r, k)
	balance := principal*pow - monthlyPayment*((pow-1)/r)
	return math.Max(0, balance)
}

// RoundPayment rounds a payment to whole currency units. Midpoints go to the
// even unit.
func RoundPayment(p float64) float64 {
	return math.RoundToEven(p)
}
