// Package main replays a CSV transaction file and prints the final account
// states as CSV to stdout.
//
//	payments-engine transactions.csv > accounts.csv
package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/payments-engine/internal/csvdelivery"
	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/go-petr/payments-engine/internal/middleware"
	"github.com/go-petr/payments-engine/internal/replayservice"
	"github.com/go-petr/payments-engine/internal/sinkconfig"
	"github.com/go-petr/payments-engine/pkg/configpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)
	ctx := logger.WithContext(context.Background())

	if err := run(ctx, os.Args[1:], config, os.Stdout); err != nil {
		logger.Fatal().Stack().Err(err).Msg("replay failed")
	}
}

// run replays the file named by args[0] and writes the report to out.
// Nothing is written to out unless the whole file replays successfully.
func run(ctx context.Context, args []string, config configpkg.Config, out io.Writer) error {
	if len(args) == 0 {
		return domain.ErrNoInputFile
	}

	sinks, closeSinks, err := sinkconfig.FromConfig(ctx, config)
	if err != nil {
		return err
	}
	defer closeSinks()

	states, err := replayservice.New(sinks...).ReplayFile(ctx, args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := csvdelivery.WriteAccounts(&buf, states); err != nil {
		return errors.Wrap(err, "cannot write report")
	}

	_, err = buf.WriteTo(out)

	return err
}
