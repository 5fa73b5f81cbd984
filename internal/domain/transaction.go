// Package domain provides definitions of all entities.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places every amount is rounded to.
const Scale = 4

// RoundAmount rounds d to Scale decimal places using banker's rounding.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Scale)
}

// Kind enumerates the instructions a client can submit.
type Kind uint8

// Supported transaction kinds.
const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// HasAmount reports whether transactions of this kind carry an amount.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind converts a type tag into a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}

	return 0, ErrUnknownKind
}

// Transaction is a single parsed instruction. It is immutable once constructed;
// use the Deposit, Withdrawal, Dispute, Resolve and Chargeback constructors.
type Transaction struct {
	clientID uint16
	txID     uint32
	kind     Kind
	amount   decimal.Decimal
}

// Deposit returns a deposit of amount into the client's account.
func Deposit(clientID uint16, txID uint32, amount decimal.Decimal) Transaction {
	return Transaction{clientID: clientID, txID: txID, kind: KindDeposit, amount: RoundAmount(amount)}
}

// Withdrawal returns a withdrawal of amount from the client's account.
func Withdrawal(clientID uint16, txID uint32, amount decimal.Decimal) Transaction {
	return Transaction{clientID: clientID, txID: txID, kind: KindWithdrawal, amount: RoundAmount(amount)}
}

// Dispute returns a dispute of the client's transaction txID.
func Dispute(clientID uint16, txID uint32) Transaction {
	return Transaction{clientID: clientID, txID: txID, kind: KindDispute}
}

// Resolve returns a resolution of the client's disputed transaction txID.
func Resolve(clientID uint16, txID uint32) Transaction {
	return Transaction{clientID: clientID, txID: txID, kind: KindResolve}
}

// Chargeback returns a chargeback of the client's disputed transaction txID.
func Chargeback(clientID uint16, txID uint32) Transaction {
	return Transaction{clientID: clientID, txID: txID, kind: KindChargeback}
}

// ClientID returns the client the transaction belongs to.
func (t Transaction) ClientID() uint16 { return t.clientID }

// TxID returns the transaction id, unique only within one client.
func (t Transaction) TxID() uint32 { return t.txID }

// Kind returns the transaction kind.
func (t Transaction) Kind() Kind { return t.kind }

// Amount returns the rounded amount. ok is false for kinds without an amount.
func (t Transaction) Amount() (amount decimal.Decimal, ok bool) {
	if !t.kind.HasAmount() {
		return decimal.Zero, false
	}

	return t.amount, true
}
