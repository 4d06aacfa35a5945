package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// dateLayout is the ISO 8601 calendar date format used for all ledger dates.
const dateLayout = "2006-01-02"

type (
	TransactionType string

	// Date is a calendar day with no time component. The zero Date means
	// "unset" and is valid only inside a DateRange bound.
	Date struct {
		time.Time
	}

	// Transaction is a single ledger entry. Amount is always non-negative;
	// the sign is carried by Type.
	Transaction struct {
		ID          int64
		Date        Date
		Category    string
		Description string
		Amount      decimal.Decimal
		Type        TransactionType
		CreatedAt   time.Time
	}

	// Category is a named bucket scoped to one transaction kind.
	Category struct {
		ID   int64
		Name string
		Type TransactionType
	}

	// DateRange filters transactions by date, inclusive on both ends.
	// A zero bound leaves that side open.
	DateRange struct {
		Start Date
		End   Date
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidRange  = errors.New("start date after end date")
)

// DefaultCategories is the fixed set seeded at first initialization.
var DefaultCategories = []Category{
	{Name: "food", Type: Expense},
	{Name: "transport", Type: Expense},
	{Name: "utilities", Type: Expense},
	{Name: "communication", Type: Expense},
	{Name: "entertainment", Type: Expense},
	{Name: "medical", Type: Expense},
	{Name: "education", Type: Expense},
	{Name: "salary", Type: Income},
	{Name: "bonus", Type: Income},
	{Name: "side-job", Type: Income},
	{Name: "investment-income", Type: Income},
}

// ParseTransactionType validates and converts a raw string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidType
	}
}

func (t TransactionType) Validate() error {
	if t != Income && t != Expense {
		return ErrInvalidType
	}
	return nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD, so string ordering matches
// chronological ordering.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the YYYY-MM grouping key for monthly aggregation.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks that a closed range is ordered. Open bounds are always valid.
func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End.Time) {
		return ErrInvalidRange
	}
	return nil
}

// IsUnbounded reports whether the range places no restriction at all.
func (r DateRange) IsUnbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether d falls inside the range, bounds inclusive.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start.Time) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End.Time) {
		return false
	}
	return true
}

// String renders the range for logging and cache keys, e.g. "2024-01-01..2024-01-31".
func (r DateRange) String() string {
	start, end := "", ""
	if !r.Start.IsZero() {
		start = r.Start.String()
	}
	if !r.End.IsZero() {
		end = r.End.String()
	}
	return start + ".." + end
}

// Validate checks the invariants enforced before a transaction reaches
// storage: a real date, a known type, a non-negative amount and a category
// name. The category is recorded as free text; membership in the seeded
// category set is deliberately not checked.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
