package csvdelivery

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/go-petr/payments-engine/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var compareTransactions = cmp.Comparer(func(x, y domain.Transaction) bool {
	xAmount, xOK := x.Amount()
	yAmount, yOK := y.Amount()

	return x.ClientID() == y.ClientID() &&
		x.TxID() == y.TxID() &&
		x.Kind() == y.Kind() &&
		xOK == yOK &&
		xAmount.Equal(yAmount)
})

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decodeAll(t *testing.T, input string) ([]domain.Transaction, error) {
	t.Helper()

	d, err := NewDecoder(strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	var txs []domain.Transaction

	for {
		tx, err := d.Next()
		if err == io.EOF {
			return txs, nil
		}
		if err != nil {
			return txs, err
		}

		txs = append(txs, tx)
	}
}

func TestDecoder(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    []domain.Transaction
		wantErr error
	}{
		{
			name: "OK",
			input: "type,client,tx,amount\n" +
				"deposit,1,1,1.0\n" +
				"withdrawal,1,2,0.5\n" +
				"dispute,1,1,\n" +
				"resolve,1,1,\n" +
				"chargeback,1,1,\n",
			want: []domain.Transaction{
				domain.Deposit(1, 1, amount("1.0")),
				domain.Withdrawal(1, 2, amount("0.5")),
				domain.Dispute(1, 1),
				domain.Resolve(1, 1),
				domain.Chargeback(1, 1),
			},
		},
		{
			name: "WhitespaceAndCase",
			input: "type, client, tx, amount\n" +
				"  DEPOSIT ,  2 , 7 ,  3.14159 \n" +
				"Dispute, 2, 7\n",
			want: []domain.Transaction{
				domain.Deposit(2, 7, amount("3.1416")),
				domain.Dispute(2, 7),
			},
		},
		{
			name: "ReorderedColumns",
			input: "client,amount,tx,type\n" +
				"3,2.5,9,deposit\n",
			want: []domain.Transaction{
				domain.Deposit(3, 9, amount("2.5")),
			},
		},
		{
			name:  "AmountIgnoredForDispute",
			input: "type,client,tx,amount\ndispute,1,1,99\n",
			want:  []domain.Transaction{domain.Dispute(1, 1)},
		},
		{
			name:  "EmptyInput",
			input: "",
		},
		{
			name:  "HeaderOnly",
			input: "type,client,tx,amount\n",
		},
		{
			name:    "MissingHeaderColumn",
			input:   "type,client,amount\ndeposit,1,1.0\n",
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "UnknownType",
			input:   "type,client,tx,amount\ntransfer,1,1,1.0\n",
			wantErr: domain.ErrUnknownKind,
		},
		{
			name:    "MissingAmount",
			input:   "type,client,tx,amount\ndeposit,1,1,\n",
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "MissingAmountColumn",
			input:   "type,client,tx\nwithdrawal,1,1\n",
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "InvalidAmount",
			input:   "type,client,tx,amount\ndeposit,1,1,ten\n",
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			input:   "type,client,tx,amount\nwithdrawal,1,1,-1\n",
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name:    "ClientOutOfRange",
			input:   "type,client,tx,amount\ndeposit,65536,1,1\n",
			wantErr: domain.ErrInvalidField,
		},
		{
			name:    "TxNotANumber",
			input:   "type,client,tx,amount\ndeposit,1,x,1\n",
			wantErr: domain.ErrInvalidField,
		},
		{
			name:    "MissingClient",
			input:   "type,client,tx,amount\ndeposit,,1,1\n",
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "BrokenQuotes",
			input:   "type,client,tx,amount\ndeposit,\"1,1,1\n",
			wantErr: domain.ErrMalformedInput,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := decodeAll(t, tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, domain.ErrMalformedInput)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got, compareTransactions); diff != "" {
				t.Errorf("decoded transactions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderErrorNamesLine(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"deposit,1,2,oops\n"

	txs, err := decodeAll(t, input)
	require.Len(t, txs, 1)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	require.Contains(t, err.Error(), "line 3")
}

func TestDecoderRandomDeposits(t *testing.T) {
	var (
		sb   strings.Builder
		want []domain.Transaction
	)

	sb.WriteString("type,client,tx,amount\n")

	for i := 0; i < 50; i++ {
		client := randompkg.ClientID()
		txID := randompkg.TxID()
		money := randompkg.MoneyAmountBetween(0, 1_000_000)

		fmt.Fprintf(&sb, "deposit, %d, %d, %s\n", client, txID, money)
		want = append(want, domain.Deposit(client, txID, amount(money)))
	}

	got, err := decodeAll(t, sb.String())
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, compareTransactions); diff != "" {
		t.Errorf("decoded transactions mismatch (-want +got):\n%s", diff)
	}
}
