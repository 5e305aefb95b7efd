// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS payments (
	loan_id TEXT NOT NULL,
	number INTEGER NOT NULL,
	due_ut REAL NOT NULL,
	paid_ut REAL NOT NULL,
	scheduled REAL NOT NULL,
	paid REAL NOT NULL,
	interest REAL NOT NULL,
	principal REAL NOT NULL,
	shortfall REAL NOT NULL,
	remaining REAL NOT NULL,
	PRIMARY KEY (loan_id, number)
);

CREATE TABLE IF NOT EXISTS loan_events (
	loan_id TEXT NOT NULL,
	ut REAL NOT NULL,
	kind TEXT NOT NULL,
	amount REAL NOT NULL,
	detail TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payments_due ON payments(due_ut);
CREATE INDEX IF NOT EXISTS idx_events_loan ON loan_events(loan_id);
`
