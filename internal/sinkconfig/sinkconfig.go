// Package sinkconfig builds the replay sinks enabled by configuration.
package sinkconfig

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-petr/payments-engine/internal/replayservice"
	"github.com/go-petr/payments-engine/internal/snapshotpublisher"
	"github.com/go-petr/payments-engine/internal/snapshotrepo"
	"github.com/go-petr/payments-engine/pkg/configpkg"
	"github.com/go-petr/payments-engine/pkg/dbpkg"
)

// FromConfig returns the sinks enabled in config: a PostgreSQL repo when
// DB_SOURCE is set and a Kafka publisher when KAFKA_BROKERS is set.
// The returned close function releases their connections.
func FromConfig(ctx context.Context, config configpkg.Config) ([]replayservice.Sink, func(), error) {
	l := zerolog.Ctx(ctx)

	var (
		sinks   []replayservice.Sink
		closers []io.Closer
	)

	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				l.Warn().Err(err).Msg("cannot close sink")
			}
		}
	}

	if config.DBSource != "" {
		db, err := dbpkg.Setup(ctx, config.DBDriver, config.DBSource)
		if err != nil {
			return nil, closeAll, errors.Wrap(err, "cannot connect to database")
		}

		closers = append(closers, db)
		sinks = append(sinks, snapshotrepo.NewRepoPGS(db))
		l.Debug().Str("driver", config.DBDriver).Msg("postgres sink enabled")
	}

	if brokers := config.Brokers(); len(brokers) > 0 {
		w := snapshotpublisher.NewWriter(brokers, config.KafkaTopic)

		closers = append(closers, w)
		sinks = append(sinks, snapshotpublisher.New(w))
		l.Debug().Strs("brokers", brokers).Str("topic", config.KafkaTopic).Msg("kafka sink enabled")
	}

	return sinks, closeAll, nil
}
