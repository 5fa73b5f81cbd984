package replayservice

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/go-petr/payments-engine/internal/csvdelivery"
	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/go-petr/payments-engine/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var equateDecimals = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })

func TestReplay(t *testing.T) {
	const okInput = "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"deposit,1,2,2.0\n"

	okStates := []domain.AccountState{{
		ClientID:  1,
		Available: decimal.RequireFromString("3"),
		Held:      decimal.Zero,
		Total:     decimal.RequireFromString("3"),
	}}

	testCases := []struct {
		name       string
		input      string
		buildStubs func(sink *MockSink)
		want       []domain.AccountState
		wantErr    error
	}{
		{
			name:  "OK",
			input: okInput,
			buildStubs: func(sink *MockSink) {
				sink.EXPECT().Save(gomock.Any(), gomock.Len(1)).Times(1).Return(nil)
			},
			want: okStates,
		},
		{
			name:  "MalformedInput",
			input: "type,client,tx,amount\ndeposit,1,1,1.0\nrefund,1,1,\n",
			buildStubs: func(sink *MockSink) {
				sink.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnknownKind,
		},
		{
			name: "InvariantViolation",
			input: "type,client,tx,amount\n" +
				"deposit,1,1,10\n" +
				"withdrawal,1,2,10\n" +
				"dispute,1,1,\n" +
				"deposit,2,3,1\n",
			buildStubs: func(sink *MockSink) {
				sink.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvariantViolation,
		},
		{
			name:  "SinkError",
			input: okInput,
			buildStubs: func(sink *MockSink) {
				sink.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).Return(errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
		{
			name:  "EmptyInput",
			input: "",
			buildStubs: func(sink *MockSink) {
				sink.EXPECT().Save(gomock.Any(), gomock.Len(0)).Times(1).Return(nil)
			},
			want: []domain.AccountState{},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sink := NewMockSink(ctrl)
			tc.buildStubs(sink)

			got, err := New(sink).Replay(context.Background(), strings.NewReader(tc.input))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got, equateDecimals); diff != "" {
				t.Errorf("Replay() returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplayFileMissing(t *testing.T) {
	_, err := New().ReplayFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

// TestReplayGoldenFiles replays every testdata/*.in file and compares the report
// with the matching .out file. Rows are compared as an unordered set.
func TestReplayGoldenFiles(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.in"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)

	for _, in := range inputs {
		in := in
		out := strings.TrimSuffix(in, ".in") + ".out"

		t.Run(filepath.Base(in), func(t *testing.T) {
			t.Parallel()

			states, err := New().ReplayFile(context.Background(), in)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, csvdelivery.WriteAccounts(&buf, states))

			want, err := os.ReadFile(out)
			require.NoError(t, err)

			require.Equal(t, sortLines(string(want)), sortLines(buf.String()))
		})
	}
}

func sortLines(content string) []string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	sort.Strings(lines)

	return lines
}
