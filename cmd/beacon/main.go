package main

import (
	"context"
	"net/http"
	"os"

	"beacon/internal/app/events"
	"beacon/internal/http/middleware"
	"beacon/internal/httpapi"
	"beacon/internal/logging"
	"beacon/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	var eventStore events.Store
	if cfg.DatabaseURL != "" {
		db, err := openDatabase(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("database unavailable")
		}
		defer db.Close()
		eventStore = store.New(db)
		logger.Info().Msg("using postgres event store")
	} else {
		eventStore = store.NewSeededMemoryStore()
		logger.Info().Msg("DATABASE_URL not set, using seeded in-memory event store")
	}

	eventsSvc := events.New(eventStore)
	handler := httpapi.NewServer(eventsSvc).Routes()
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)

	logger.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
