package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordPayment(p PaymentRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO payments
		(loan_id, number, due_ut, paid_ut, scheduled, paid, interest, principal, shortfall, remaining)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.LoanID, p.Number, p.DueUT, p.PaidUT, p.Scheduled,
		p.Paid, p.Interest, p.Principal, p.Shortfall, p.Remaining,
	)
	return err
}

func (j *SQLite) RecordEvent(e LoanEvent) error {
	_, err := j.db.Exec(`
		INSERT INTO loan_events
		(loan_id, ut, kind, amount, detail)
		VALUES (?, ?, ?, ?, ?)`,
		e.LoanID, e.UT, e.Kind, e.Amount, e.Detail,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
