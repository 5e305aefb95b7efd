package ledger

import (
	"strings"

	"github.com/rustyeddy/careerloans/internal/id"
	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/loan"
	"github.com/rustyeddy/careerloans/store"
)

// NodeLoan is the child node name each loan is saved under.
const NodeLoan = "Loan"

// Save replaces the loan children of node with the active loans.
func (l *Ledger) Save(node *store.Node) {
	node.RemoveNodes(NodeLoan)
	for _, ln := range l.loans {
		n := node.AddNode(NodeLoan)
		for _, f := range ln.Fields() {
			n.AddValue(f.Name, f.Value)
		}
	}
}

// Load replaces the active loans with the ones saved under node. Damaged
// fields are repaired rather than failing the load, and a repeated id is
// replaced with a fresh one. The sweep debounce is reset.
func (l *Ledger) Load(node *store.Node) {
	for i := range l.loans {
		l.loans[i] = nil
	}
	l.loans = l.loans[:0]
	l.lastCheck = 0

	seen := make(map[string]bool)
	for _, n := range node.GetNodes(NodeLoan) {
		ln, repaired := loan.FromFields(n.GetValue)
		if seen[ln.ID] {
			ln.ID = id.New()
			repaired = append(repaired, loan.FieldID)
		}
		seen[ln.ID] = true

		if len(repaired) > 0 {
			l.log.Warn("repaired saved loan", "loan", ln.ID, "fields", repaired)
			l.recordEvent(journal.LoanEvent{
				LoanID: ln.ID,
				Kind:   journal.EventRepaired,
				Detail: strings.Join(repaired, ","),
			})
		}
		l.loans = append(l.loans, ln)
	}

	l.log.Debug("loans loaded", "count", len(l.loans))
	l.metrics.SetActive(len(l.loans))
}
