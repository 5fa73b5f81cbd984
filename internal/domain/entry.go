package domain

import "github.com/shopspring/decimal"

// Entry is a client's private record of one accepted deposit or withdrawal.
// Disputes, resolutions and chargebacks refer to it by TxID.
type Entry struct {
	TxID     uint32
	Kind     Kind // KindDeposit or KindWithdrawal
	Amount   decimal.Decimal
	Disputed bool
}
