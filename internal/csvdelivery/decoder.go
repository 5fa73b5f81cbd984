// Package csvdelivery reads transactions from and writes account reports to CSV.
package csvdelivery

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Input column names.
const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"
)

// Decoder streams transactions from CSV input with a header row.
//
// Fields are trimmed, the type tag is case-insensitive, and the amount column
// may be missing or empty for dispute, resolve and chargeback records.
type Decoder struct {
	r       *csv.Reader
	columns map[string]int
	eof     bool
}

// NewDecoder reads the header row of r. Empty input yields a decoder with no records.
func NewDecoder(r io.Reader) (*Decoder, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	d := &Decoder{r: cr, columns: make(map[string]int)}

	header, err := cr.Read()
	if err == io.EOF {
		d.eof = true
		return d, nil
	}
	if err != nil {
		return nil, wrapReadErr(err)
	}

	for i, name := range header {
		d.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range []string{colType, colClient, colTx} {
		if _, ok := d.columns[name]; !ok {
			return nil, errors.Wrapf(domain.ErrMissingField, "header: %q column", name)
		}
	}

	return d, nil
}

// Next returns the next transaction, or io.EOF when the input is exhausted.
// Errors wrap one of the domain.ErrMalformedInput family and name the input line.
func (d *Decoder) Next() (domain.Transaction, error) {
	if d.eof {
		return domain.Transaction{}, io.EOF
	}

	record, err := d.r.Read()
	if err == io.EOF {
		d.eof = true
		return domain.Transaction{}, io.EOF
	}
	if err != nil {
		return domain.Transaction{}, wrapReadErr(err)
	}

	line, _ := d.r.FieldPos(0)

	tx, err := d.parse(record)
	if err != nil {
		return domain.Transaction{}, errors.Wrapf(err, "line %d", line)
	}

	return tx, nil
}

func (d *Decoder) parse(record []string) (domain.Transaction, error) {
	kindField, ok := d.field(record, colType)
	if !ok {
		return domain.Transaction{}, errors.Wrap(domain.ErrMissingField, colType)
	}

	kind, err := domain.ParseKind(kindField)
	if err != nil {
		return domain.Transaction{}, errors.Wrapf(err, "%q", kindField)
	}

	client, err := d.parseUint(record, colClient, 16)
	if err != nil {
		return domain.Transaction{}, err
	}

	txID, err := d.parseUint(record, colTx, 32)
	if err != nil {
		return domain.Transaction{}, err
	}

	if !kind.HasAmount() {
		switch kind {
		case domain.KindDispute:
			return domain.Dispute(uint16(client), uint32(txID)), nil
		case domain.KindResolve:
			return domain.Resolve(uint16(client), uint32(txID)), nil
		default:
			return domain.Chargeback(uint16(client), uint32(txID)), nil
		}
	}

	amountField, ok := d.field(record, colAmount)
	if !ok {
		return domain.Transaction{}, errors.Wrap(domain.ErrMissingField, colAmount)
	}

	amount, err := decimal.NewFromString(amountField)
	if err != nil {
		return domain.Transaction{}, errors.Wrapf(domain.ErrInvalidAmount, "%q", amountField)
	}

	if amount.IsNegative() {
		return domain.Transaction{}, errors.Wrapf(domain.ErrNegativeAmount, "%q", amountField)
	}

	if kind == domain.KindDeposit {
		return domain.Deposit(uint16(client), uint32(txID), amount), nil
	}

	return domain.Withdrawal(uint16(client), uint32(txID), amount), nil
}

// field returns the trimmed value of the named column; ok is false when it is absent or empty.
func (d *Decoder) field(record []string, name string) (string, bool) {
	i, ok := d.columns[name]
	if !ok || i >= len(record) {
		return "", false
	}

	v := strings.TrimSpace(record[i])

	return v, v != ""
}

func (d *Decoder) parseUint(record []string, name string, bitSize int) (uint64, error) {
	v, ok := d.field(record, name)
	if !ok {
		return 0, errors.Wrap(domain.ErrMissingField, name)
	}

	n, err := strconv.ParseUint(v, 10, bitSize)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrInvalidField, "%s %q", name, v)
	}

	return n, nil
}

func wrapReadErr(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return errors.Wrap(domain.ErrMalformedInput, parseErr.Error())
	}

	return errors.WithStack(err)
}
