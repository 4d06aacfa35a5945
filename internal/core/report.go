// Package core holds the shared ledger types and the aggregation engine.
//
// Everything in this file is a pure reduction over a transaction slice: no
// storage access, no mutation of the input, and a defined result for every
// input including the empty set.
package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

type (
	// Summary is the aggregate view of a transaction set.
	Summary struct {
		TotalIncome  decimal.Decimal `json:"total_income"`
		TotalExpense decimal.Decimal `json:"total_expense"`
		Balance      decimal.Decimal `json:"balance"`
		IncomeCount  int             `json:"income_count"`
		ExpenseCount int             `json:"expense_count"`
	}

	// CategoryTotal is one row of the per-category breakdown: the summed
	// amount for a distinct (category, type) pair.
	CategoryTotal struct {
		Category string          `json:"category"`
		Type     TransactionType `json:"transaction_type"`
		Amount   decimal.Decimal `json:"amount"`
	}

	// MonthlyPoint is one month of the trend series. Months where one kind
	// never occurred carry an explicit zero, never a missing value.
	MonthlyPoint struct {
		Month   string          `json:"month"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
		Balance decimal.Decimal `json:"balance"`
	}

	// TypeStats are the single-value statistics for one transaction kind.
	// Average and Max are invalid when the kind never occurs in the input;
	// rendering "no data" is the caller's concern.
	TypeStats struct {
		Count   int                 `json:"count"`
		Total   decimal.Decimal     `json:"total"`
		Average decimal.NullDecimal `json:"average"`
		Max     decimal.NullDecimal `json:"max"`
	}
)

// Summarize reduces a transaction set to its totals. All fields are zero for
// an empty input.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
			s.IncomeCount++
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
			s.ExpenseCount++
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// SavingsRate returns balance/income as a percentage. Invalid when there is
// no income to divide by.
func (s Summary) SavingsRate() decimal.NullDecimal {
	if !s.TotalIncome.IsPositive() {
		return decimal.NullDecimal{}
	}
	rate := s.Balance.Div(s.TotalIncome).Mul(decimal.NewFromInt(100))
	return decimal.NullDecimal{Decimal: rate, Valid: true}
}

// CategorySummary groups by (category, type) and sums amounts per group.
// Rows are ordered by category name, then type, so output is deterministic.
func CategorySummary(txs []Transaction) []CategoryTotal {
	type groupKey struct {
		category string
		kind     TransactionType
	}

	sums := make(map[groupKey]decimal.Decimal)
	for _, tx := range txs {
		key := groupKey{category: tx.Category, kind: tx.Type}
		sums[key] = sums[key].Add(tx.Amount)
	}

	rows := make([]CategoryTotal, 0, len(sums))
	for key, amount := range sums {
		rows = append(rows, CategoryTotal{
			Category: key.category,
			Type:     key.kind,
			Amount:   amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Type < rows[j].Type
	})
	return rows
}

// MonthlyTrend groups by calendar month and sums income and expense
// separately. A month present in the input always yields a row with both
// kinds filled in, zero for the kind that never occurred. Rows are ordered
// by month ascending.
func MonthlyTrend(txs []Transaction) []MonthlyPoint {
	type monthSums struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}

	byMonth := make(map[string]monthSums)
	for _, tx := range txs {
		month := tx.Date.MonthKey()
		sums := byMonth[month]
		switch tx.Type {
		case Income:
			sums.income = sums.income.Add(tx.Amount)
		case Expense:
			sums.expense = sums.expense.Add(tx.Amount)
		}
		byMonth[month] = sums
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]MonthlyPoint, 0, len(months))
	for _, month := range months {
		sums := byMonth[month]
		points = append(points, MonthlyPoint{
			Month:   month,
			Income:  sums.income,
			Expense: sums.expense,
			Balance: sums.income.Sub(sums.expense),
		})
	}
	return points
}

// Statistics computes count, total, average and maximum amount for one
// transaction kind. Average and Max stay invalid on an empty subset instead
// of dividing by zero or inventing a maximum.
func Statistics(txs []Transaction, kind TransactionType) TypeStats {
	var stats TypeStats
	for _, tx := range txs {
		if tx.Type != kind {
			continue
		}
		stats.Total = stats.Total.Add(tx.Amount)
		if stats.Count == 0 || tx.Amount.GreaterThan(stats.Max.Decimal) {
			stats.Max = decimal.NullDecimal{Decimal: tx.Amount, Valid: true}
		}
		stats.Count++
	}
	if stats.Count > 0 {
		avg := stats.Total.Div(decimal.NewFromInt(int64(stats.Count)))
		stats.Average = decimal.NullDecimal{Decimal: avg, Valid: true}
	}
	return stats
}

// FilterByType returns the subset of transactions of the given kind,
// preserving order.
func FilterByType(txs []Transaction, kind TransactionType) []Transaction {
	filtered := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == kind {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
