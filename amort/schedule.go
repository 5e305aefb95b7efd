package amort

import "math"

// Installment is one row of an amortization table.
type Installment struct {
	Period    int
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64
}

// Schedule walks the loan period by period, subtracting the principal part of
// each payment. The final payment is trimmed so the balance lands on zero
// instead of going negative when monthlyPayment was rounded up.
func Schedule(principal, apr float64, termMonths int, monthlyPayment float64) []Installment {
	if termMonths < 1 {
		return nil
	}

	r := MonthlyRate(apr)
	balance := principal
	out := make([]Installment, 0, termMonths)

	for n := 1; n <= termMonths; n++ {
		interest := balance * r
		pay := monthlyPayment
		if pay > balance+interest {
			pay = balance + interest
		}
		princ := math.Max(0, pay-interest)
		balance = math.Max(0, balance-princ)

		out = append(out, Installment{
			Period:    n,
			Payment:   pay,
			Interest:  interest,
			Principal: princ,
			Balance:   balance,
		})
	}
	return out
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(s []Installment) float64 {
	var total float64
	for _, in := range s {
		total += in.Interest
	}
	return total
}

// TotalPaid sums the payment column of a schedule.
func TotalPaid(s []Installment) float64 {
	var total float64
	for _, in := range s {
		total += in.Payment
	}
	return total
}
