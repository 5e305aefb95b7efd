package sim

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/rustyeddy/careerloans/config"
	"github.com/rustyeddy/careerloans/credit"
	"github.com/rustyeddy/careerloans/ledger"
	"github.com/rustyeddy/careerloans/loan"
	"github.com/rustyeddy/careerloans/store"
)

// Saved node and value names.
const (
	NodeGame     = "GAME"
	NodeScenario = "LOAN_SCENARIO"

	valueUT         = "UT"
	valueFunds      = "Funds"
	valueReputation = "Reputation"
)

// InstallmentListener is told about every installment the engine's sweeps
// process. It is called after the engine lock is released.
type InstallmentListener interface {
	OnInstallment(in ledger.Installment)
}

// Engine plays the host game around a loan ledger: it owns the clock, the
// funds pool and the reputation score and feeds them to the ledger.
type Engine struct {
	mu         sync.Mutex
	cfg        *config.Config
	ut         float64
	acct       *Account
	reputation float64
	ledger     *ledger.Ledger
	log        *slog.Logger
	listener   InstallmentListener
}

// NewEngine starts a game at the configured start time, funds and
// reputation. opts are passed to the ledger.
func NewEngine(cfg *config.Config, log *slog.Logger, opts ...ledger.Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	opts = append([]ledger.Option{ledger.WithLogger(log)}, opts...)

	return &Engine{
		cfg:        cfg,
		ut:         cfg.Simulation.StartUT,
		acct:       NewAccount(cfg.Simulation.StartFunds),
		reputation: cfg.Simulation.StartReputation,
		ledger:     ledger.New(cfg, opts...),
		log:        log.With("component", "sim"),
	}
}

// SetInstallmentListener sets an optional listener for processed
// installments.
func (e *Engine) SetInstallmentListener(l InstallmentListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

func (e *Engine) UT() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ut
}

func (e *Engine) Funds() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acct.Balance()
}

func (e *Engine) Reputation() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reputation
}

func (e *Engine) SetReputation(rep float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reputation = rep
}

// AddFunds credits the funds pool; a negative delta withdraws.
func (e *Engine) AddFunds(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.acct.Add(delta)
}

// Warp jumps the clock to ut and runs the payment sweep. The clock never
// runs backwards.
func (e *Engine) Warp(ut float64) ([]ledger.Installment, error) {
	if math.IsNaN(ut) || math.IsInf(ut, 0) {
		return nil, fmt.Errorf("warp to %v: time must be finite", ut)
	}

	e.mu.Lock()

	if ut < e.ut {
		now := e.ut
		e.mu.Unlock()
		return nil, fmt.Errorf("warp to %.0f: clock is already at %.0f", ut, now)
	}
	e.ut = ut
	paid := e.ledger.AdvanceTime(ut, e.acct)

	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		for _, in := range paid {
			listener.OnInstallment(in)
		}
	}
	return paid, nil
}

// Advance moves the clock forward by dt seconds.
func (e *Engine) Advance(dt float64) ([]ledger.Installment, error) {
	if dt < 0 {
		return nil, fmt.Errorf("advance: negative step %v", dt)
	}
	return e.Warp(e.UT() + dt)
}

// TakeLoan borrows at the APR the current reputation earns.
func (e *Engine) TakeLoan(amount float64, termMonths int) ledger.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ledger.Originate(ledger.Request{
		Amount:     amount,
		TermMonths: termMonths,
		APR:        credit.APRFor(e.reputation, e.cfg),
		Reputation: e.reputation,
		Now:        e.ut,
	}, e.acct)
}

func (e *Engine) PayOff(loanID string) ledger.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.PayOff(loanID, e.ut, e.acct)
}

// Quote prices a loan at the current reputation without taking it.
func (e *Engine) Quote(amount float64, termMonths int) ledger.Quote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Quote(amount, termMonths, e.reputation)
}

func (e *Engine) Summary() ledger.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Summary(e.ut, e.acct)
}

func (e *Engine) Loans() []*loan.Loan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Loans()
}

// Save writes the game values and the loan scenario into root, replacing
// any earlier copy.
func (e *Engine) Save(root *store.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()

	root.RemoveNodes(NodeGame)
	root.RemoveNodes(NodeScenario)

	game := root.AddNode(NodeGame)
	game.AddValue(valueUT, ftoa(e.ut))
	game.AddValue(valueFunds, ftoa(e.acct.Balance()))
	game.AddValue(valueReputation, ftoa(e.reputation))

	e.ledger.Save(root.AddNode(NodeScenario))
}

// Load restores a game written by Save. Missing game values keep their
// current setting; the loans are replaced.
func (e *Engine) Load(root *store.Node) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if game := root.GetNode(NodeGame); game != nil {
		ut, err := floatValue(game, valueUT, e.ut)
		if err != nil {
			return err
		}
		funds, err := floatValue(game, valueFunds, e.acct.Balance())
		if err != nil {
			return err
		}
		rep, err := floatValue(game, valueReputation, e.reputation)
		if err != nil {
			return err
		}
		e.ut = ut
		e.acct.Set(funds)
		e.reputation = rep
	}

	scen := root.GetNode(NodeScenario)
	if scen == nil {
		scen = store.NewNode(NodeScenario)
	}
	e.ledger.Load(scen)

	e.log.Info("game loaded", "ut", e.ut, "funds", e.acct.Balance(), "loans", e.ledger.Len())
	return nil
}

func floatValue(n *store.Node, name string, def float64) (float64, error) {
	v, ok := n.GetValue(name)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("saved %s %q: %w", name, v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("saved %s %q: not a finite number", name, v)
	}
	return f, nil
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
