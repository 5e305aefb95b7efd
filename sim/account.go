package sim

import "sync"

// Account is the host's funds pool. It satisfies ledger.Funds and never
// refuses a withdrawal; the balance may go negative.
type Account struct {
	mu    sync.Mutex
	funds float64
}

func NewAccount(funds float64) *Account {
	return &Account{funds: funds}
}

func (a *Account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.funds
}

func (a *Account) Add(delta float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.funds += delta
}

// Set replaces the balance, as when a saved game is restored.
func (a *Account) Set(funds float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.funds = funds
}
