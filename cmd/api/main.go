package main

import (
	"context"
	"net/http"
	"os"

	"financial_viability/pkg/api/plan"
	"financial_viability/pkg/core/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds the server settings loaded from config/engine.yaml. Missing
// file or fields fall back to the defaults below.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func loadConfig() Config {
	var cfg Config
	data, err := os.ReadFile("config/engine.yaml")
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Warn().Err(err).Msg("failed to parse config/engine.yaml, using defaults")
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := loadConfig()
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Run history is optional: the engine works without a database.
	if err := store.InitDB(context.Background()); err != nil {
		log.Warn().Err(err).Msg("scenario-run history disabled")
	} else {
		defer store.Close()
		log.Info().Msg("scenario-run history enabled")
	}

	http.HandleFunc("/api/plan/projections", plan.HandleProjections)
	http.HandleFunc("/api/plan/monthly", plan.HandleMonthly)
	http.HandleFunc("/api/plan/breakeven", plan.HandleBreakEven)
	http.HandleFunc("/api/plan/viability", plan.HandleViability)
	http.HandleFunc("/api/plan/runs", plan.HandleRuns)
	http.HandleFunc("/api/plan/tax", plan.HandleTax)

	log.Info().Str("addr", cfg.Server.Addr).Msg("API server starting")
	if err := http.ListenAndServe(cfg.Server.Addr, nil); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
