// Package services orchestrates validation, the ledger store and the
// aggregation engine behind a single in-process API.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

// Store is the ledger persistence the service depends on.
type Store interface {
	AddTransaction(ctx context.Context, tx core.Transaction) (int64, error)
	ListTransactions(ctx context.Context, rng core.DateRange) ([]core.Transaction, error)
	ListCategories(ctx context.Context, kind *core.TransactionType) ([]core.Category, error)
	DeleteTransaction(ctx context.Context, id int64) error
	CountTransactions(ctx context.Context) (int64, error)
}

// TransactionInput is a raw transaction-entry request as supplied by the
// presentation layer. All fields arrive as strings and are validated here,
// before any storage access.
type TransactionInput struct {
	Date        string
	Type        string
	Amount      string
	Category    string
	Description string
}

// StatisticsReport carries the per-kind single-value statistics for the
// analysis view.
type StatisticsReport struct {
	Income  core.TypeStats `json:"income"`
	Expense core.TypeStats `json:"expense"`
}

type LedgerService struct {
	store Store
}

func NewLedgerService(store Store) *LedgerService {
	return &LedgerService{store: store}
}

// AddTransaction validates the raw input and appends it to the ledger,
// returning the assigned id. Validation failures surface before the store is
// touched. The category is recorded as given; it is not required to be a
// seeded category name.
func (s *LedgerService) AddTransaction(ctx context.Context, in TransactionInput) (int64, error) {
	tx, err := parseInput(in)
	if err != nil {
		return 0, err
	}

	id, err := s.store.AddTransaction(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	return id, nil
}

// DeleteTransaction removes the entry with the given id; absent ids are a
// no-op.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Transactions returns ledger entries inside rng, optionally restricted to
// one transaction kind.
func (s *LedgerService) Transactions(ctx context.Context, rng core.DateRange, kind *core.TransactionType) ([]core.Transaction, error) {
	txs, err := s.listRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	if kind != nil {
		txs = core.FilterByType(txs, *kind)
	}
	return txs, nil
}

// Categories returns the category set, optionally restricted to one kind.
func (s *LedgerService) Categories(ctx context.Context, kind *core.TransactionType) ([]core.Category, error) {
	categories, err := s.store.ListCategories(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Summary computes the aggregate totals over the range.
func (s *LedgerService) Summary(ctx context.Context, rng core.DateRange) (core.Summary, error) {
	txs, err := s.listRange(ctx, rng)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(txs), nil
}

// CategoryReport computes the per-category breakdown over the range.
func (s *LedgerService) CategoryReport(ctx context.Context, rng core.DateRange) ([]core.CategoryTotal, error) {
	txs, err := s.listRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	return core.CategorySummary(txs), nil
}

// TrendReport computes the monthly income/expense/balance series over the
// range.
func (s *LedgerService) TrendReport(ctx context.Context, rng core.DateRange) ([]core.MonthlyPoint, error) {
	txs, err := s.listRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	return core.MonthlyTrend(txs), nil
}

// StatisticsReport computes per-kind average and maximum amounts over the
// range.
func (s *LedgerService) StatisticsReport(ctx context.Context, rng core.DateRange) (StatisticsReport, error) {
	txs, err := s.listRange(ctx, rng)
	if err != nil {
		return StatisticsReport{}, err
	}
	return StatisticsReport{
		Income:  core.Statistics(txs, core.Income),
		Expense: core.Statistics(txs, core.Expense),
	}, nil
}

// TransactionCount reports the ledger size, used by health checks.
func (s *LedgerService) TransactionCount(ctx context.Context) (int64, error) {
	count, err := s.store.CountTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func (s *LedgerService) listRange(ctx context.Context, rng core.DateRange) ([]core.Transaction, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	slog.DebugContext(ctx, "Loaded transaction set", "range", rng.String(), "count", len(txs))
	return txs, nil
}

func parseInput(in TransactionInput) (core.Transaction, error) {
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	kind, err := core.ParseTransactionType(in.Type)
	if err != nil {
		return core.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	tx := core.Transaction{
		Date:        date,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Type:        kind,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}
