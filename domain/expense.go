package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int64           `json:"id,string"`
	AccountID   int64           `json:"account_id,string"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"desc"`
	ExpenseDate time.Time       `json:"expense_date"`
	// TagID is a loose reference: a tag id rendered as a string, not a
	// foreign key. A dangling value resolves to "no tag" at read time.
	TagID     string    `json:"tag_id,omitempty"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Tag is the read-time snapshot resolved from TagID, never persisted.
	Tag *Tag `json:"tag,omitempty" gorm:"-"`
}

// ExpenseQuery filters an owner-scoped listing. Date bounds are inclusive.
type ExpenseQuery struct {
	Skip      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	TagID     string
}

type MonthlySummary struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// SummaryRow is the minimal projection the reporting engine aggregates over.
type SummaryRow struct {
	ExpenseDate time.Time
	Amount      decimal.Decimal
}

type ExpenseRepo interface {
	Create(expense *Expense) error
	Get(expenseID int64) (*Expense, error)
	// List excludes soft-deleted expenses and orders by expense date
	// descending.
	List(accountID int64, query ExpenseQuery) ([]*Expense, error)
	// Update and SoftDelete are owner-scoped and report rows affected.
	Update(expense *Expense) (int64, error)
	SoftDelete(expenseID, accountID int64) (int64, error)
	// GetSummaryRows returns non-deleted rows for an owner, bounded to the
	// calendar year when year is non-zero.
	GetSummaryRows(accountID int64, year int) ([]*SummaryRow, error)
}

type CreateExpenseRequest struct {
	Amount      decimal.Decimal
	Description string
	ExpenseDate time.Time
	TagID       string
}

type ExpenseUseCase interface {
	Create(ctx context.Context, accountID int64, req CreateExpenseRequest) (*Expense, error)
	Update(ctx context.Context, accountID, expenseID int64, req CreateExpenseRequest) (*Expense, error)
	Delete(ctx context.Context, accountID, expenseID int64) error
	List(ctx context.Context, accountID int64, query ExpenseQuery) ([]*Expense, error)
	ListCurrentMonth(ctx context.Context, accountID int64, skip, limit int) ([]*Expense, error)
	ListCurrentYear(ctx context.Context, accountID int64, skip, limit int) ([]*Expense, error)
	ListByTag(ctx context.Context, accountID, tagID int64, skip, limit int) ([]*Expense, error)
	// MonthlySummary groups by calendar (year, month) ascending; year 0
	// means all years.
	MonthlySummary(ctx context.Context, accountID int64, year int) ([]*MonthlySummary, error)
}
