package repository

import (
	"time"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

type expenseEntity struct {
	domain.Expense
}

func (expenseEntity) TableName() string {
	return "expense"
}

type expenseRepo struct {
	db *ormKit.DB
}

func CreateExpenseRepo(db *ormKit.DB) domain.ExpenseRepo {
	return &expenseRepo{
		db: db,
	}
}

func (e *expenseRepo) Create(expense *domain.Expense) error {
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return errors.Wrap(err, "generate unique id failed")
	}

	now := time.Now()
	expense.ID = uniqueIDGenerate.Generate().GetInt64()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if err := e.db.Create(&expenseEntity{Expense: *expense}).Error; err != nil {
		return errors.Wrap(err, "create expense failed")
	}

	return nil
}

func (e *expenseRepo) Get(expenseID int64) (*domain.Expense, error) {
	var expense expenseEntity
	if err := e.db.First(&expense, "id = ?", expenseID); err != nil {
		return nil, errors.Wrap(err, "get expense failed")
	}
	return &expense.Expense, nil
}

func (e *expenseRepo) List(accountID int64, query domain.ExpenseQuery) ([]*domain.Expense, error) {
	tx := e.db.
		Model(&expenseEntity{}).
		Where("account_id = ? AND deleted = ?", accountID, false)
	if query.StartDate != nil {
		tx = tx.Where("expense_date >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		tx = tx.Where("expense_date <= ?", *query.EndDate)
	}
	if query.TagID != "" {
		tx = tx.Where("tag_id = ?", query.TagID)
	}

	var expenses []*expenseEntity
	if err := tx.
		Order("expense_date DESC").
		Offset(query.Skip).
		Limit(query.Limit).
		Find(&expenses).Error; err != nil {
		return nil, errors.Wrap(err, "list expenses failed")
	}

	results := make([]*domain.Expense, len(expenses))
	for idx, expense := range expenses {
		results[idx] = &expense.Expense
	}
	return results, nil
}

func (e *expenseRepo) Update(expense *domain.Expense) (int64, error) {
	tx := e.db.
		Model(&expenseEntity{}).
		Where("id = ? AND account_id = ? AND deleted = ?", expense.ID, expense.AccountID, false).
		Updates(map[string]interface{}{
			"amount":       expense.Amount,
			"description":  expense.Description,
			"expense_date": expense.ExpenseDate,
			"tag_id":       expense.TagID,
			"updated_at":   time.Now(),
		})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "update expense failed")
	}
	return tx.RowsAffected, nil
}

func (e *expenseRepo) SoftDelete(expenseID, accountID int64) (int64, error) {
	tx := e.db.
		Model(&expenseEntity{}).
		Where("id = ? AND account_id = ? AND deleted = ?", expenseID, accountID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "soft delete expense failed")
	}
	return tx.RowsAffected, nil
}

func (e *expenseRepo) GetSummaryRows(accountID int64, year int) ([]*domain.SummaryRow, error) {
	tx := e.db.
		Table("expense").
		Select("expense_date", "amount").
		Where("account_id = ? AND deleted = ?", accountID, false)
	if year != 0 {
		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		tx = tx.Where("expense_date >= ? AND expense_date < ?", yearStart, yearStart.AddDate(1, 0, 0))
	}

	var rows []*domain.SummaryRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "get summary rows failed")
	}
	return rows, nil
}
