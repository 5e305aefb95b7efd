package sim

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/careerloans/config"
	"github.com/rustyeddy/careerloans/internal/id"
	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/ledger"
)

// RunScript plays steps in order. Each step first moves the clock forward by
// its delay, running the payment sweep, then performs its action. Rejected
// loans and payoffs are noted in the report rather than stopping the run.
func (e *Engine) RunScript(ctx context.Context, steps []config.Step) (*journal.RunReport, error) {
	rep := &journal.RunReport{
		RunID:      id.New(),
		Created:    time.Now(),
		StartUT:    e.UT(),
		StartFunds: e.Funds(),
	}
	startLoans := len(e.Loans())

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		delay, err := step.Delay(e.cfg.Simulation)
		if err != nil {
			return rep, fmt.Errorf("step %d: %w", i, err)
		}
		paid, err := e.Advance(delay)
		if err != nil {
			return rep, fmt.Errorf("step %d: %w", i, err)
		}
		tally(rep, paid)

		switch step.Action {
		case config.ActionAdvance:
		case config.ActionTake:
			res := e.TakeLoan(step.Amount, step.Term)
			if !res.OK {
				rep.Rejected++
				rep.Notes = append(rep.Notes, fmt.Sprintf("step %d: loan of %.0f rejected (%s)", i, step.Amount, res.Reason))
				continue
			}
			rep.Originated++
			rep.Borrowed += res.Amount
		case config.ActionPayOff:
			loanID, ok := e.resolveLoan(step.Loan)
			if !ok {
				rep.Notes = append(rep.Notes, fmt.Sprintf("step %d: no active loan %q to pay off", i, step.Loan))
				continue
			}
			res := e.PayOff(loanID)
			if !res.OK {
				rep.Notes = append(rep.Notes, fmt.Sprintf("step %d: payoff of %s rejected (%s)", i, id.Short(loanID), res.Reason))
				continue
			}
			rep.PaidOff++
			rep.Repaid += res.Amount
		case config.ActionReputation:
			e.SetReputation(step.Value)
		case config.ActionFunds:
			e.AddFunds(step.Value)
		default:
			return rep, fmt.Errorf("step %d: unknown action %q", i, step.Action)
		}
	}

	sum := e.Summary()
	rep.EndUT = e.UT()
	rep.EndFunds = e.Funds()
	rep.ActiveLoans = len(sum.Loans)
	rep.OutstandingDue = sum.TotalRemaining
	rep.Retired = startLoans + rep.Originated - rep.ActiveLoans
	return rep, nil
}

// resolveLoan accepts an index into the active loans or a loan id.
func (e *Engine) resolveLoan(ref string) (string, bool) {
	loans := e.Loans()
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(loans) {
			return "", false
		}
		return loans[i].ID, true
	}
	for _, l := range loans {
		if l.ID == ref {
			return l.ID, true
		}
	}
	return "", false
}

func tally(rep *journal.RunReport, paid []ledger.Installment) {
	for _, in := range paid {
		rep.Installments++
		rep.Repaid += in.Paid
		if in.Shortfall > 0 {
			rep.ShortPays++
			rep.ShortfallLost += in.Shortfall
		}
	}
}
