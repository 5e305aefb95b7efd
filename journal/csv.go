// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

var (
	paymentHeader = []string{"loan_id", "number", "due_ut", "paid_ut", "scheduled", "paid", "interest", "principal", "shortfall", "remaining"}
	eventHeader   = []string{"loan_id", "ut", "kind", "amount", "detail"}
)

type CSVJournal struct {
	payments *csv.Writer
	events   *csv.Writer
	pf, ef   *os.File
}

func NewCSV(paymentsPath, eventsPath string) (*CSVJournal, error) {
	pf, err := os.Create(paymentsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(eventsPath)
	if err != nil {
		_ = pf.Close()
		return nil, err
	}

	pw := csv.NewWriter(pf)
	ew := csv.NewWriter(ef)

	if err := pw.Write(paymentHeader); err != nil {
		return nil, err
	}
	if err := ew.Write(eventHeader); err != nil {
		return nil, err
	}

	pw.Flush()
	if err := pw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{pw, ew, pf, ef}, nil
}

func (j *CSVJournal) RecordPayment(p PaymentRecord) error {
	err := j.payments.Write([]string{
		p.LoanID,
		strconv.Itoa(p.Number),
		f(p.DueUT),
		f(p.PaidUT),
		f(p.Scheduled),
		f(p.Paid),
		f(p.Interest),
		f(p.Principal),
		f(p.Shortfall),
		f(p.Remaining),
	})
	if err != nil {
		return err
	}

	j.payments.Flush()
	return j.payments.Error()
}

func (j *CSVJournal) RecordEvent(e LoanEvent) error {
	err := j.events.Write([]string{
		e.LoanID,
		f(e.UT),
		e.Kind,
		f(e.Amount),
		e.Detail,
	})
	if err != nil {
		return err
	}

	j.events.Flush()
	return j.events.Error()
}

func (j *CSVJournal) Close() error {
	j.payments.Flush()
	if err := j.payments.Error(); err != nil {
		return err
	}
	j.events.Flush()
	if err := j.events.Error(); err != nil {
		return err
	}

	if err := j.pf.Close(); err != nil {
		return err
	}
	if err := j.ef.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
