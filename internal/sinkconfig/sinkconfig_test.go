package sinkconfig

import (
	"context"
	"testing"

	"github.com/go-petr/payments-engine/internal/snapshotpublisher"
	"github.com/go-petr/payments-engine/pkg/configpkg"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	testCases := []struct {
		name      string
		config    configpkg.Config
		wantSinks int
		wantErr   bool
	}{
		{
			name:      "NoSinks",
			config:    configpkg.Config{},
			wantSinks: 0,
		},
		{
			name:      "Kafka",
			config:    configpkg.Config{KafkaBrokers: "localhost:9092", KafkaTopic: "account_states"},
			wantSinks: 1,
		},
		{
			name:    "UnknownDBDriver",
			config:  configpkg.Config{DBDriver: "nope", DBSource: "nowhere"},
			wantErr: true,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sinks, closeAll, err := FromConfig(context.Background(), tc.config)
			require.NotNil(t, closeAll)
			defer closeAll()

			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, sinks, tc.wantSinks)

			if tc.wantSinks == 1 {
				require.IsType(t, &snapshotpublisher.Publisher{}, sinks[0])
			}
		})
	}
}
