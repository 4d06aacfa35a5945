package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func tx(date Date, category string, amount int64, kind TransactionType) Transaction {
	return Transaction{
		Date:     date,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		Type:     kind,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalIncome.IsZero() || !s.TotalExpense.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("expected all-zero summary, got %+v", s)
	}
	if s.IncomeCount != 0 || s.ExpenseCount != 0 {
		t.Fatalf("expected zero counts, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 1, 5), "salary", 1000, Income),
		tx(NewDate(2024, 1, 10), "food", 300, Expense),
		tx(NewDate(2024, 1, 15), "food", 200, Expense),
	}
	s := Summarize(txs)
	if !s.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("total income: got %s", s.TotalIncome)
	}
	if !s.TotalExpense.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("total expense: got %s", s.TotalExpense)
	}
	if !s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)) {
		t.Fatalf("balance %s != income - expense", s.Balance)
	}
	if s.IncomeCount != 1 || s.ExpenseCount != 2 {
		t.Fatalf("counts: got %d/%d", s.IncomeCount, s.ExpenseCount)
	}
}

func TestSavingsRate(t *testing.T) {
	s := Summarize([]Transaction{
		tx(NewDate(2024, 1, 5), "salary", 1000, Income),
		tx(NewDate(2024, 1, 10), "food", 250, Expense),
	})
	rate := s.SavingsRate()
	if !rate.Valid {
		t.Fatal("expected a valid savings rate")
	}
	if !rate.Decimal.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected 75, got %s", rate.Decimal)
	}
}

func TestSavingsRateNoIncome(t *testing.T) {
	s := Summarize([]Transaction{
		tx(NewDate(2024, 1, 10), "food", 250, Expense),
	})
	if rate := s.SavingsRate(); rate.Valid {
		t.Fatalf("expected invalid rate without income, got %s", rate.Decimal)
	}
}

func TestCategorySummary(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 1, 5), "food", 300, Expense),
		tx(NewDate(2024, 1, 20), "transport", 100, Expense),
		tx(NewDate(2024, 1, 10), "food", 200, Expense),
	}
	rows := CategorySummary(txs)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Category != "food" || !rows[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("row 0: %+v", rows[0])
	}
	if rows[1].Category != "transport" || !rows[1].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("row 1: %+v", rows[1])
	}
}

func TestCategorySummarySplitsByType(t *testing.T) {
	// Same category name used by both kinds stays two rows, expense first.
	txs := []Transaction{
		tx(NewDate(2024, 1, 5), "misc", 100, Income),
		tx(NewDate(2024, 1, 6), "misc", 40, Expense),
	}
	rows := CategorySummary(txs)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Type != Expense || rows[1].Type != Income {
		t.Fatalf("expected deterministic type order, got %+v", rows)
	}
}

func TestCategorySummaryEmpty(t *testing.T) {
	if rows := CategorySummary(nil); len(rows) != 0 {
		t.Fatalf("expected empty result, got %+v", rows)
	}
}

func TestMonthlyTrendZeroFill(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 2, 10), "food", 400, Expense),
		tx(NewDate(2024, 1, 5), "salary", 1000, Income),
	}
	points := MonthlyTrend(txs)
	if len(points) != 2 {
		t.Fatalf("expected 2 months, got %d", len(points))
	}

	jan := points[0]
	if jan.Month != "2024-01" {
		t.Fatalf("expected months ascending, got %s first", jan.Month)
	}
	if !jan.Income.Equal(decimal.NewFromInt(1000)) || !jan.Expense.IsZero() {
		t.Fatalf("january: %+v", jan)
	}
	if !jan.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("january balance: %s", jan.Balance)
	}

	feb := points[1]
	if !feb.Income.IsZero() || !feb.Expense.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("february: %+v", feb)
	}
	if !feb.Balance.Equal(decimal.NewFromInt(-400)) {
		t.Fatalf("february balance: %s", feb.Balance)
	}
}

func TestMonthlyTrendSumsWithinMonth(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 3, 1), "food", 100, Expense),
		tx(NewDate(2024, 3, 15), "transport", 50, Expense),
		tx(NewDate(2024, 3, 25), "salary", 900, Income),
	}
	points := MonthlyTrend(txs)
	if len(points) != 1 {
		t.Fatalf("expected 1 month, got %d", len(points))
	}
	p := points[0]
	if !p.Expense.Equal(decimal.NewFromInt(150)) || !p.Income.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("march: %+v", p)
	}
}

func TestStatistics(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 1, 5), "food", 300, Expense),
		tx(NewDate(2024, 1, 10), "food", 100, Expense),
		tx(NewDate(2024, 1, 15), "salary", 1000, Income),
	}
	stats := Statistics(txs, Expense)
	if stats.Count != 2 {
		t.Fatalf("count: got %d", stats.Count)
	}
	if !stats.Total.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("total: got %s", stats.Total)
	}
	if !stats.Average.Valid || !stats.Average.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("average: got %+v", stats.Average)
	}
	if !stats.Max.Valid || !stats.Max.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("max: got %+v", stats.Max)
	}
}

func TestStatisticsEmptySubset(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 1, 5), "food", 300, Expense),
	}
	stats := Statistics(txs, Income)
	if stats.Count != 0 || !stats.Total.IsZero() {
		t.Fatalf("expected zero count and total, got %+v", stats)
	}
	if stats.Average.Valid || stats.Max.Valid {
		t.Fatalf("expected invalid average and max on empty subset, got %+v", stats)
	}
}

func TestFilterByType(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, 1, 5), "salary", 1000, Income),
		tx(NewDate(2024, 1, 10), "food", 300, Expense),
		tx(NewDate(2024, 1, 15), "bonus", 200, Income),
	}
	incomes := FilterByType(txs, Income)
	if len(incomes) != 2 {
		t.Fatalf("expected 2 income rows, got %d", len(incomes))
	}
	if incomes[0].Category != "salary" || incomes[1].Category != "bonus" {
		t.Fatalf("expected input order preserved, got %+v", incomes)
	}
}
