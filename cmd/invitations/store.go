package main

import (
	"context"
	"fmt"

	"github.com/jonathan/invitation-letters/internal/db"
	"github.com/jonathan/invitation-letters/internal/grammar"
	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/localstore"
	"github.com/jonathan/invitation-letters/internal/roster"
	"go.uber.org/zap"
)

// store is a roster repository that also keeps the run history.
type store interface {
	roster.Repository
	letters.RunStore
}

// openStore connects to PostgreSQL when a URL is configured, else opens the
// SQLite file.
func openStore(ctx context.Context) (store, error) {
	if cfg.UsesPostgres() {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Debug("using PostgreSQL store")
		return database, nil
	}

	s, err := localstore.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.SQLitePath, err)
	}
	logger.Debug("using SQLite store", zap.String("path", s.Path()))
	return s, nil
}

// loadDictionary returns the configured grammar dictionary, or the embedded one.
func loadDictionary() (*grammar.Dictionary, error) {
	if cfg.Dictionary == "" {
		return grammar.Default(), nil
	}
	dict, err := grammar.Load(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded grammar dictionary", zap.String("path", cfg.Dictionary), zap.Int("entries", len(dict.Entries())))
	return dict, nil
}
