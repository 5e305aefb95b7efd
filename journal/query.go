package journal

import (
	"database/sql"
	"fmt"
)

const paymentColumns = `loan_id, number, due_ut, paid_ut, scheduled, paid, interest, principal, shortfall, remaining`

// ListPayments returns every installment recorded for a loan, oldest first.
func (j *SQLite) ListPayments(loanID string) ([]PaymentRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE loan_id = ?
		ORDER BY number ASC`, loanID)
	if err != nil {
		return nil, err
	}
	return scanPayments(rows)
}

// ListPaymentsBetween returns installments that fell due within [start, end).
func (j *SQLite) ListPaymentsBetween(start, end float64) ([]PaymentRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE due_ut >= ? AND due_ut < ?
		ORDER BY due_ut ASC, loan_id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return scanPayments(rows)
}

// LastPayment returns the most recent installment of a loan.
func (j *SQLite) LastPayment(loanID string) (PaymentRecord, error) {
	var p PaymentRecord
	row := j.db.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE loan_id = ?
		ORDER BY number DESC
		LIMIT 1`, loanID)

	err := row.Scan(
		&p.LoanID, &p.Number, &p.DueUT, &p.PaidUT, &p.Scheduled,
		&p.Paid, &p.Interest, &p.Principal, &p.Shortfall, &p.Remaining,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return PaymentRecord{}, fmt.Errorf("payments for loan %q: %w", loanID, ErrNotFound)
		}
		return PaymentRecord{}, err
	}
	return p, nil
}

// ListEvents returns the lifecycle events of a loan in the order they happened.
func (j *SQLite) ListEvents(loanID string) ([]LoanEvent, error) {
	rows, err := j.db.Query(`
		SELECT loan_id, ut, kind, amount, detail
		FROM loan_events
		WHERE loan_id = ?
		ORDER BY ut ASC, rowid ASC`, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LoanEvent
	for rows.Next() {
		var e LoanEvent
		if err := rows.Scan(&e.LoanID, &e.UT, &e.Kind, &e.Amount, &e.Detail); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPayments(rows *sql.Rows) ([]PaymentRecord, error) {
	defer rows.Close()

	var out []PaymentRecord
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(
			&p.LoanID,
			&p.Number,
			&p.DueUT,
			&p.PaidUT,
			&p.Scheduled,
			&p.Paid,
			&p.Interest,
			&p.Principal,
			&p.Shortfall,
			&p.Remaining,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
