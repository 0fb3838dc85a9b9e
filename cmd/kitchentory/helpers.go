package main

import (
	"context"

	"github.com/jburchel/kitchentory/internal/common"
	"github.com/jburchel/kitchentory/internal/config"
	"github.com/jburchel/kitchentory/internal/parser"
	"github.com/jburchel/kitchentory/internal/storage"
)

// newParser builds the parsing engine from the active configuration.
func newParser() (*parser.Parser, error) {
	cfg, err := config.LoadParserConfig()
	if err != nil {
		return nil, common.NewUserError("Invalid parsing configuration, check your config file", err)
	}

	vocab, err := config.LoadVocabulary()
	if err != nil {
		return nil, common.NewUserError("Could not load the vocabulary file", err)
	}

	return parser.NewWithConfig(vocab, cfg), nil
}

// initStorage opens the receipt history database and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, common.NewUserError("Could not open the receipt history database", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("Could not migrate the receipt history database", err)
	}
	return store, nil
}
