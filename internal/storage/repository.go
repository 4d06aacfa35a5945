// Package storage implements the ledger store on SQLite.
//
// The repository owns all persisted state. Every exported operation is a
// single statement against the database, so each one is atomic on its own
// and no partial write is ever observable.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"

	_ "modernc.org/sqlite"
)

// createdAtLayout is how created_at timestamps are persisted, matching the
// schema default.
const createdAtLayout = "2006-01-02T15:04:05Z"

type Repository struct {
	db *sql.DB
}

// New opens (creating if absent) the ledger database at dbPath, runs the
// schema migrations and seeds the default category set. Idempotent: calling
// it against an existing database changes nothing.
func New(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.seedCategories(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed categories: %w", err)
	}

	return repo, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// seedCategories inserts the default categories, skipping any name already
// present. Never overwrites or duplicates.
func (r *Repository) seedCategories(ctx context.Context) error {
	for _, c := range core.DefaultCategories {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (name, type) VALUES (?, ?)`,
			c.Name, string(c.Type))
		if err != nil {
			return fmt.Errorf("insert category %s: %w", c.Name, err)
		}
	}
	return nil
}

// AddTransaction appends a new ledger entry and returns its assigned id.
// The caller is expected to have validated the transaction already.
func (r *Repository) AddTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	createdAt := time.Now().UTC().Format(createdAtLayout)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, category, description, amount, transaction_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Date.String(), tx.Category, tx.Description, tx.Amount.String(), string(tx.Type), createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"date", tx.Date.String(),
		"category", tx.Category,
		"amount", tx.Amount.String(),
		"transaction_type", tx.Type)

	return id, nil
}

// ListTransactions returns the ledger entries inside rng, both bounds
// inclusive, one-sided when only one bound is set, and the full ledger when
// the range is unbounded. Ordered by date descending, then id descending so
// same-day entries keep a deterministic order.
func (r *Repository) ListTransactions(ctx context.Context, rng core.DateRange) ([]core.Transaction, error) {
	query := `SELECT id, date, category, description, amount, transaction_type, created_at
	          FROM transactions`
	var args []any

	switch {
	case !rng.Start.IsZero() && !rng.End.IsZero():
		query += ` WHERE date BETWEEN ? AND ?`
		args = append(args, rng.Start.String(), rng.End.String())
	case !rng.Start.IsZero():
		query += ` WHERE date >= ?`
		args = append(args, rng.Start.String())
	case !rng.End.IsZero():
		query += ` WHERE date <= ?`
		args = append(args, rng.End.String())
	}

	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

// ListCategories returns categories of the given kind, or all categories
// when kind is nil. Ordered by name for stable output.
func (r *Repository) ListCategories(ctx context.Context, kind *core.TransactionType) ([]core.Category, error) {
	query := `SELECT id, name, type FROM categories`
	var args []any
	if kind != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		var kindStr string
		if err := rows.Scan(&c.ID, &c.Name, &kindStr); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.TransactionType(kindStr)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// DeleteTransaction removes the entry with the given id. Deleting an id that
// does not exist is a no-op, not an error; the freed id is never reused for
// later inserts.
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
	}

	return nil
}

// CountTransactions returns the total number of ledger entries.
func (r *Repository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		tx           core.Transaction
		dateStr      string
		amountStr    string
		kindStr      string
		createdAtStr string
	)
	if err := rows.Scan(&tx.ID, &dateStr, &tx.Category, &tx.Description, &amountStr, &kindStr, &createdAtStr); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	tx.Date = date

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amountStr, err)
	}
	tx.Amount = amount
	tx.Type = core.TransactionType(kindStr)

	createdAt, err := time.Parse(createdAtLayout, createdAtStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored created_at %q: %w", createdAtStr, err)
	}
	tx.CreatedAt = createdAt

	return tx, nil
}
