// Package replayservice replays a transaction stream into a fresh ledger.
package replayservice

import (
	"context"
	"io"
	"os"

	"github.com/go-petr/payments-engine/internal/csvdelivery"
	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/go-petr/payments-engine/internal/ledger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Sink receives the final account states of a successful replay.
//
//go:generate mockgen -source service.go -destination service_mock.go -package replayservice
type Sink interface {
	Save(ctx context.Context, states []domain.AccountState) error
}

// Service facilitates replay logic.
type Service struct {
	sinks []Sink
}

// New returns a replay service that hands final states to the given sinks.
func New(sinks ...Sink) *Service {
	return &Service{sinks: sinks}
}

// Replay applies every transaction of the CSV source in arrival order and
// returns the final account states ordered by client id.
//
// Malformed input and invariant violations abort the replay; no states are
// returned and no sink is called.
func (s *Service) Replay(ctx context.Context, r io.Reader) ([]domain.AccountState, error) {
	l := zerolog.Ctx(ctx)

	dec, err := csvdelivery.NewDecoder(r)
	if err != nil {
		l.Info().Err(err).Send()
		return nil, err
	}

	led := ledger.New()

	var count int

	for {
		tx, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.Info().Err(err).Int("applied", count).Send()
			return nil, err
		}

		if err := led.Apply(ctx, tx); err != nil {
			return nil, err
		}

		count++
	}

	states := led.Accounts()

	for _, sink := range s.sinks {
		if err := sink.Save(ctx, states); err != nil {
			l.Error().Err(err).Send()
			return nil, err
		}
	}

	l.Info().Int("transactions", count).Int("accounts", len(states)).Msg("replay finished")

	return states, nil
}

// ReplayFile replays the CSV file at path.
func (s *Service) ReplayFile(ctx context.Context, path string) ([]domain.AccountState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open input")
	}
	defer f.Close()

	return s.Replay(ctx, f)
}
