package csvdelivery

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/go-petr/payments-engine/internal/domain"
)

var reportHeader = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts writes one record per account, preceded by a header row.
// Amounts are written with exactly domain.Scale decimal places.
func WriteAccounts(w io.Writer, states []domain.AccountState) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return err
	}

	for _, s := range states {
		record := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(domain.Scale),
			s.Held.StringFixed(domain.Scale),
			s.Total.StringFixed(domain.Scale),
			strconv.FormatBool(s.Locked),
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
