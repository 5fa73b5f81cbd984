// Package account implements the per-client transaction state machine.
package account

import (
	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Outcome reports how an account handled a transaction.
type Outcome uint8

// Possible outcomes of Apply. Everything except Applied is a silent no-op.
const (
	Applied Outcome = iota
	IgnoredInsufficientFunds
	IgnoredUnknownTx
	IgnoredNotDisputed
	IgnoredUnknownKind
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case IgnoredInsufficientFunds:
		return "insufficient funds"
	case IgnoredUnknownTx:
		return "unknown transaction"
	case IgnoredNotDisputed:
		return "transaction not disputed"
	default:
		return "unknown kind"
	}
}

// Account holds one client's balances and the entries it has accepted.
//
// Entries are keyed by tx id within this account only, so two clients may reuse
// the same tx id. A later deposit or withdrawal with an existing tx id replaces
// the previous entry.
type Account struct {
	clientID  uint16
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
	entries   map[uint32]*domain.Entry
}

// New returns an empty unlocked account for the client.
func New(clientID uint16) *Account {
	return &Account{
		clientID:  clientID,
		available: decimal.Zero,
		held:      decimal.Zero,
		entries:   make(map[uint32]*domain.Entry),
	}
}

// ClientID returns the owning client.
func (a *Account) ClientID() uint16 { return a.clientID }

// Available returns the funds the client can withdraw.
func (a *Account) Available() decimal.Decimal { return a.available }

// Held returns the funds frozen by open disputes.
func (a *Account) Held() decimal.Decimal { return a.held }

// Total returns available plus held.
func (a *Account) Total() decimal.Decimal { return a.available.Add(a.held) }

// Locked reports whether a chargeback has ever been applied to the account.
func (a *Account) Locked() bool { return a.locked }

// Entry returns a copy of the entry recorded for txID.
func (a *Account) Entry(txID uint32) (domain.Entry, bool) {
	e, ok := a.entries[txID]
	if !ok {
		return domain.Entry{}, false
	}

	return *e, true
}

// State returns a snapshot of the account.
func (a *Account) State() domain.AccountState {
	return domain.AccountState{
		ClientID:  a.clientID,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}

// Apply executes tx against the account. Amounts arrive already rounded by
// the domain constructors.
//
// Business rule failures (insufficient funds, unknown or wrong-state tx ids)
// leave the account untouched and are reported through the returned Outcome.
// A locked account keeps accepting transactions.
func (a *Account) Apply(tx domain.Transaction) Outcome {
	switch tx.Kind() {
	case domain.KindDeposit:
		amount, _ := tx.Amount()
		return a.deposit(tx.TxID(), amount)
	case domain.KindWithdrawal:
		amount, _ := tx.Amount()
		return a.withdraw(tx.TxID(), amount)
	case domain.KindDispute:
		return a.dispute(tx.TxID())
	case domain.KindResolve:
		return a.resolve(tx.TxID())
	case domain.KindChargeback:
		return a.chargeback(tx.TxID())
	default:
		return IgnoredUnknownKind
	}
}

func (a *Account) deposit(txID uint32, amount decimal.Decimal) Outcome {
	a.available = a.available.Add(amount)
	a.entries[txID] = &domain.Entry{TxID: txID, Kind: domain.KindDeposit, Amount: amount}

	return Applied
}

func (a *Account) withdraw(txID uint32, amount decimal.Decimal) Outcome {
	if amount.GreaterThan(a.available) {
		return IgnoredInsufficientFunds
	}

	a.available = a.available.Sub(amount)
	a.entries[txID] = &domain.Entry{TxID: txID, Kind: domain.KindWithdrawal, Amount: amount}

	return Applied
}

// dispute holds the entry's amount. A disputed withdrawal only raises held:
// its debit of available already happened.
func (a *Account) dispute(txID uint32) Outcome {
	e, ok := a.entries[txID]
	if !ok {
		return IgnoredUnknownTx
	}

	e.Disputed = true

	if e.Kind == domain.KindDeposit {
		a.available = a.available.Sub(e.Amount)
	}
	a.held = a.held.Add(e.Amount)

	return Applied
}

func (a *Account) resolve(txID uint32) Outcome {
	e, outcome := a.disputedEntry(txID)
	if outcome != Applied {
		return outcome
	}

	e.Disputed = false

	if e.Kind == domain.KindDeposit {
		a.available = a.available.Add(e.Amount)
	}
	a.held = a.held.Sub(e.Amount)

	return Applied
}

func (a *Account) chargeback(txID uint32) Outcome {
	e, outcome := a.disputedEntry(txID)
	if outcome != Applied {
		return outcome
	}

	e.Disputed = false

	if e.Kind == domain.KindWithdrawal {
		a.available = a.available.Add(e.Amount)
	}
	a.held = a.held.Sub(e.Amount)
	a.locked = true

	return Applied
}

func (a *Account) disputedEntry(txID uint32) (*domain.Entry, Outcome) {
	e, ok := a.entries[txID]
	if !ok {
		return nil, IgnoredUnknownTx
	}

	if !e.Disputed {
		return nil, IgnoredNotDisputed
	}

	return e, Applied
}
