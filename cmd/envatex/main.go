package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/envatex/internal/adapters/repo/postgres"
	"github.com/phenrril/envatex/internal/app"
	"github.com/phenrril/envatex/internal/config"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "aplica migraciones y termina")
	seedOnly := flag.Bool("seed-only", false, "aplica migraciones, crea el admin y termina")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	db, err := postgres.Open(cfg.DatabaseURL(), cfg.DBDebug)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}

	application, err := app.NewApp(cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}
	if err := application.Migrate(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}
	if *migrateOnly {
		zlog.Info().Msg("migraciones completas")
		return
	}
	if err := application.Seed(context.Background()); err != nil {
		zlog.Fatal().Err(err).Msg("failed to seed database")
	}
	if *seedOnly {
		return
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      application.HTTPHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info().Str("addr", server.Addr).Str("env", cfg.AppEnv).Msg("servidor escuchando")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("apagando servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
