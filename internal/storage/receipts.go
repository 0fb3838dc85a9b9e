package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jburchel/kitchentory/internal/common"
	"github.com/jburchel/kitchentory/internal/model"
)

// StoredReceipt is a receipt row joined with its items and errors.
type StoredReceipt struct {
	CreatedAt time.Time
	Receipt   model.ParsedReceipt
	Sender    string
	Subject   string
	Decision  model.ImportDecision
	ID        int64
}

// SaveReceipt persists a parse result and returns the new receipt id.
func (s *SQLiteStorage) SaveReceipt(ctx context.Context, receipt *model.ParsedReceipt, decision model.ImportDecision) (int64, error) {
	if receipt == nil {
		return 0, fmt.Errorf("receipt cannot be nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var sender, subject string
	var receivedAt *time.Time
	if receipt.RawEmail != nil {
		sender = receipt.RawEmail.Sender
		subject = receipt.RawEmail.Subject
		receivedAt = &receipt.RawEmail.ReceivedAt
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO receipts (store, order_id, sender, subject, received_at, overall_confidence, skipped_lines, decision)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(receipt.Store), receipt.OrderID, sender, subject, receivedAt,
		receipt.OverallConfidence, receipt.SkippedLines, string(decision))
	if err != nil {
		return 0, fmt.Errorf("failed to insert receipt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get receipt id: %w", err)
	}

	for i, item := range receipt.Items {
		var price any
		if item.Price != nil {
			price = *item.Price
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO receipt_items (receipt_id, position, name, quantity, unit, price, category, item_confidence, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, item.Name, item.Quantity, item.Unit, price, item.Category,
			item.ItemConfidence, strings.Join(item.Notes, "; ")); err != nil {
			return 0, fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	for i, perr := range receipt.ParsingErrors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO receipt_errors (receipt_id, position, kind, detail, line_offset)
			VALUES (?, ?, ?, ?, ?)`,
			id, i, string(perr.Kind), perr.Detail, perr.LineOffset); err != nil {
			return 0, fmt.Errorf("failed to insert error %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit receipt: %w", err)
	}
	return id, nil
}

// GetReceipt loads one stored receipt with items and errors.
func (s *SQLiteStorage) GetReceipt(ctx context.Context, id int64) (*StoredReceipt, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, store, order_id, sender, subject, overall_confidence, skipped_lines, decision, created_at
		FROM receipts WHERE id = ?`, id)

	stored, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("receipt %d: %w", id, common.ErrNotFound)
		}
		return nil, err
	}

	if err := s.loadItems(ctx, stored); err != nil {
		return nil, err
	}
	if err := s.loadErrors(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// ListReceipts returns the most recent receipts, newest first, without
// their items.
func (s *SQLiteStorage) ListReceipts(ctx context.Context, limit int) ([]StoredReceipt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, store, order_id, sender, subject, overall_confidence, skipped_lines, decision, created_at
		FROM receipts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var receipts []StoredReceipt
	for rows.Next() {
		stored, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *stored)
	}
	return receipts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*StoredReceipt, error) {
	var stored StoredReceipt
	var store, decision string
	var orderID, sender, subject sql.NullString

	if err := row.Scan(&stored.ID, &store, &orderID, &sender, &subject,
		&stored.Receipt.OverallConfidence, &stored.Receipt.SkippedLines,
		&decision, &stored.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}

	stored.Receipt.Store = model.StoreIdentity(store)
	stored.Receipt.OrderID = orderID.String
	stored.Sender = sender.String
	stored.Subject = subject.String
	stored.Decision = model.ImportDecision(decision)
	return &stored, nil
}

func (s *SQLiteStorage) loadItems(ctx context.Context, stored *StoredReceipt) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, quantity, unit, price, category, item_confidence, notes
		FROM receipt_items WHERE receipt_id = ? ORDER BY position`, stored.ID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item model.ParsedReceiptItem
		var price sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(&item.Name, &item.Quantity, &item.Unit, &price,
			&item.Category, &item.ItemConfidence, &notes); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		if price.Valid {
			p := price.Float64
			item.Price = &p
		}
		if notes.String != "" {
			item.Notes = strings.Split(notes.String, "; ")
		}
		stored.Receipt.Items = append(stored.Receipt.Items, item)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadErrors(ctx context.Context, stored *StoredReceipt) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, detail, line_offset
		FROM receipt_errors WHERE receipt_id = ? ORDER BY position`, stored.ID)
	if err != nil {
		return fmt.Errorf("failed to load errors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var perr model.ParseError
		var kind string
		if err := rows.Scan(&kind, &perr.Detail, &perr.LineOffset); err != nil {
			return fmt.Errorf("failed to scan error: %w", err)
		}
		perr.Kind = model.ParseErrorKind(kind)
		stored.Receipt.ParsingErrors = append(stored.Receipt.ParsingErrors, perr)
	}
	return rows.Err()
}
