package loan

import (
	"math"
	"strconv"

	"github.com/rustyeddy/careerloans/internal/id"
)

// Persisted field names. They match the keys older saves were written with.
const (
	FieldID             = "Id"
	FieldPrincipal      = "Principal"
	FieldAPR            = "APR"
	FieldTermMonths     = "TermMonths"
	FieldMonthlyPayment = "MonthlyPayment"
	FieldPaymentsMade   = "PaymentsMade"
	FieldRemaining      = "Remaining"
	FieldStartUT        = "StartUT"
	FieldNextPaymentUT  = "NextPaymentUT"
)

// FieldNames lists every persisted field in save order.
var FieldNames = []string{
	FieldID,
	FieldPrincipal,
	FieldAPR,
	FieldTermMonths,
	FieldMonthlyPayment,
	FieldPaymentsMade,
	FieldRemaining,
	FieldStartUT,
	FieldNextPaymentUT,
}

// Field is one named scalar value of a persisted loan.
type Field struct {
	Name  string
	Value string
}

// Fields flattens the loan into named scalar values in FieldNames order.
// Floats are written with the shortest representation that round-trips.
func (l *Loan) Fields() []Field {
	return []Field{
		{FieldID, l.ID},
		{FieldPrincipal, ftoa(l.Principal)},
		{FieldAPR, ftoa(l.APR)},
		{FieldTermMonths, strconv.Itoa(l.TermMonths)},
		{FieldMonthlyPayment, ftoa(l.MonthlyPayment)},
		{FieldPaymentsMade, strconv.Itoa(l.PaymentsMade)},
		{FieldRemaining, ftoa(l.Remaining)},
		{FieldStartUT, ftoa(l.StartUT)},
		{FieldNextPaymentUT, ftoa(l.NextPaymentUT)},
	}
}

// Getter looks up a persisted value by field name.
type Getter func(name string) (string, bool)

// FromFields restores a loan. Missing or unparsable scalars become zero and
// a missing or invalid id is replaced with a fresh one; the names of the
// repaired fields are returned so the caller can report them. It never fails.
func FromFields(get Getter) (*Loan, []string) {
	var repaired []string
	l := &Loan{}

	floatField := func(name string) float64 {
		v, ok := get(name)
		if !ok {
			repaired = append(repaired, name)
			return 0
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			repaired = append(repaired, name)
			return 0
		}
		return f
	}
	intField := func(name string) int {
		v, ok := get(name)
		if !ok {
			repaired = append(repaired, name)
			return 0
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			repaired = append(repaired, name)
			return 0
		}
		return n
	}

	raw, _ := get(FieldID)
	if canon, ok := id.Parse(raw); ok {
		l.ID = canon
	} else {
		l.ID = id.New()
		repaired = append(repaired, FieldID)
	}

	l.Principal = floatField(FieldPrincipal)
	l.APR = floatField(FieldAPR)
	l.TermMonths = intField(FieldTermMonths)
	l.MonthlyPayment = floatField(FieldMonthlyPayment)
	l.PaymentsMade = intField(FieldPaymentsMade)
	l.Remaining = floatField(FieldRemaining)
	l.StartUT = floatField(FieldStartUT)
	l.NextPaymentUT = floatField(FieldNextPaymentUT)

	// 0 <= PaymentsMade <= TermMonths
	if l.PaymentsMade < 0 || (l.TermMonths >= 0 && l.PaymentsMade > l.TermMonths) {
		l.PaymentsMade = min(max(l.PaymentsMade, 0), max(l.TermMonths, 0))
		repaired = append(repaired, FieldPaymentsMade)
	}

	return l, repaired
}

// MapGetter adapts a plain map to a Getter.
func MapGetter(m map[string]string) Getter {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
