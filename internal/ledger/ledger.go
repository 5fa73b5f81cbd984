// Package ledger routes transactions to client accounts and enforces the
// account invariants after every applied transaction.
package ledger

import (
	"context"
	"sort"

	"github.com/go-petr/payments-engine/internal/account"
	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Ledger owns every client account of a single replay run.
//
// It is not safe for concurrent use: transactions must be applied one at a time
// in arrival order, because disputes refer to transactions applied earlier.
type Ledger struct {
	accounts map[uint16]*account.Account
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[uint16]*account.Account)}
}

// Apply routes tx to its client's account, creating the account on first use.
//
// The returned error wraps domain.ErrInvariantViolation when the account is left
// with negative available or held funds. Such an error is fatal for the run.
func (l *Ledger) Apply(ctx context.Context, tx domain.Transaction) error {
	log := zerolog.Ctx(ctx)

	acc := l.getOrCreate(tx.ClientID())

	outcome := acc.Apply(tx)
	if outcome != account.Applied {
		log.Debug().
			Uint16("client", tx.ClientID()).
			Uint32("tx", tx.TxID()).
			Stringer("type", tx.Kind()).
			Stringer("reason", outcome).
			Msg("transaction ignored")
	}

	if err := checkInvariants(acc); err != nil {
		log.Error().Stack().Err(err).Uint32("tx", tx.TxID()).Stringer("type", tx.Kind()).Send()
		return err
	}

	return nil
}

// Account returns the state of the client's account.
func (l *Ledger) Account(clientID uint16) (domain.AccountState, bool) {
	acc, ok := l.accounts[clientID]
	if !ok {
		return domain.AccountState{}, false
	}

	return acc.State(), true
}

// Accounts returns the state of every account ordered by client id.
func (l *Ledger) Accounts() []domain.AccountState {
	states := make([]domain.AccountState, 0, len(l.accounts))
	for _, acc := range l.accounts {
		states = append(states, acc.State())
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].ClientID < states[j].ClientID
	})

	return states
}

func (l *Ledger) getOrCreate(clientID uint16) *account.Account {
	acc, ok := l.accounts[clientID]
	if !ok {
		acc = account.New(clientID)
		l.accounts[clientID] = acc
	}

	return acc
}

func checkInvariants(acc *account.Account) error {
	if acc.Available().IsNegative() || acc.Held().IsNegative() {
		return errors.Wrapf(domain.ErrInvariantViolation,
			"client %d: available=%s held=%s", acc.ClientID(), acc.Available(), acc.Held())
	}

	return nil
}
