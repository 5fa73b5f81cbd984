package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AccountState is a point-in-time view of a client's account.
type AccountState struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

type accountStateJSON struct {
	ClientID  uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// MarshalJSON encodes amounts as strings with exactly Scale decimal places.
func (s AccountState) MarshalJSON() ([]byte, error) {
	return json.Marshal(accountStateJSON{
		ClientID:  s.ClientID,
		Available: s.Available.StringFixed(Scale),
		Held:      s.Held.StringFixed(Scale),
		Total:     s.Total.StringFixed(Scale),
		Locked:    s.Locked,
	})
}
