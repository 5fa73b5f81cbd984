// Package main starts the HTTP replay server.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/payments-engine/cmd/httpserver"
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

	sinks, closeSinks, err := sinkconfig.FromConfig(ctx, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot set up sinks")
	}
	defer closeSinks()

	server, err := httpserver.New(replayservice.New(sinks...), logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("PAYMENTS ENGINE SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
