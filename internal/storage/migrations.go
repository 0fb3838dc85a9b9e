package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial receipt history schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS receipts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					store TEXT NOT NULL,
					order_id TEXT,
					sender TEXT,
					subject TEXT,
					received_at DATETIME,
					overall_confidence REAL NOT NULL,
					skipped_lines INTEGER NOT NULL DEFAULT 0,
					decision TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_receipts_store ON receipts(store)`,
				`CREATE INDEX idx_receipts_decision ON receipts(decision)`,

				`CREATE TABLE IF NOT EXISTS receipt_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					receipt_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					quantity REAL NOT NULL,
					unit TEXT NOT NULL,
					price REAL,
					category TEXT NOT NULL,
					item_confidence REAL NOT NULL,
					notes TEXT,
					FOREIGN KEY (receipt_id) REFERENCES receipts(id)
				)`,
				`CREATE INDEX idx_receipt_items_receipt ON receipt_items(receipt_id)`,

				`CREATE TABLE IF NOT EXISTS receipt_errors (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					receipt_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					kind TEXT NOT NULL,
					detail TEXT NOT NULL,
					line_offset INTEGER NOT NULL DEFAULT -1,
					FOREIGN KEY (receipt_id) REFERENCES receipts(id)
				)`,
				`CREATE INDEX idx_receipt_errors_receipt ON receipt_errors(receipt_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("Applying migration", "version", m.Version, "description", m.Description)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
