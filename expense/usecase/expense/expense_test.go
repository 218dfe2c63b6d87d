package expense

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/moneybook/expense-tracker/domain"
	expenseMySQLRepo "github.com/moneybook/expense-tracker/expense/repository/expense/mysql"
	tagMySQLRepo "github.com/moneybook/expense-tracker/expense/repository/tag/mysql"
	tagUseCaseLib "github.com/moneybook/expense-tracker/expense/usecase/tag"
	"github.com/moneybook/expense-tracker/kit/code"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
)

type testExpenseSetup struct {
	expenseUseCase domain.ExpenseUseCase
	tagUseCase     domain.TagUseCase
	tagRepo        domain.TagRepo
}

func createTestExpenseUseCase(t *testing.T) *testExpenseSetup {
	logger, err := loggerKit.NewLogger(filepath.Join(t.TempDir(), "go.log"), loggerKit.InfoLevel, loggerKit.NoStdout)
	assert.Nil(t, err)

	ormDB, err := ormKit.CreateDB(ormKit.UseSQLite(filepath.Join(t.TempDir(), "test.db")))
	assert.Nil(t, err)
	for _, schemaPath := range []string{
		filepath.Join("../../repository/expense/mysql", "schema.sql"),
		filepath.Join("../../repository/tag/mysql", "schema.sql"),
	} {
		schema, err := os.ReadFile(schemaPath)
		assert.Nil(t, err)
		for _, statement := range strings.Split(string(schema), ";") {
			if strings.TrimSpace(statement) == "" {
				continue
			}
			assert.Nil(t, ormDB.Exec(statement).Error)
		}
	}

	tagRepo := tagMySQLRepo.CreateTagRepo(ormDB)
	expenseUseCase, err := CreateExpenseUseCase(expenseMySQLRepo.CreateExpenseRepo(ormDB), tagRepo, logger)
	assert.Nil(t, err)
	tagUseCase, err := tagUseCaseLib.CreateTagUseCase(tagRepo, logger)
	assert.Nil(t, err)

	return &testExpenseSetup{
		expenseUseCase: expenseUseCase,
		tagUseCase:     tagUseCase,
		tagRepo:        tagRepo,
	}
}

func createRequest(amount string, expenseDate time.Time) domain.CreateExpenseRequest {
	return domain.CreateExpenseRequest{
		Amount:      decimal.RequireFromString(amount),
		Description: "lunch",
		ExpenseDate: expenseDate,
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	setup := createTestExpenseUseCase(t)
	ctx := context.Background()
	accountID := int64(1)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("amount at the threshold is rejected", func(t *testing.T) {
		_, err := setup.expenseUseCase.Create(ctx, accountID, createRequest("1000", date))
		assert.Error(t, err)
		assert.Equal(t, "amount must be greater than 1000", code.ParseErrorCode(err).Message)
	})

	t.Run("amount below the threshold is rejected", func(t *testing.T) {
		_, err := setup.expenseUseCase.Create(ctx, accountID, createRequest("999.99", date))
		assert.Error(t, err)
	})

	t.Run("amount just above the threshold is accepted", func(t *testing.T) {
		expense, err := setup.expenseUseCase.Create(ctx, accountID, createRequest("1000.01", date))
		assert.Nil(t, err)
		assert.True(t, expense.Amount.Equal(decimal.RequireFromString("1000.01")))
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := setup.expenseUseCase.Create(ctx, accountID, createRequest("2000", time.Time{}))
		assert.Error(t, err)
		assert.Equal(t, "expense date is required", code.ParseErrorCode(err).Message)
	})

	t.Run("overlong description", func(t *testing.T) {
		req := createRequest("2000", date)
		req.Description = strings.Repeat("x", 256)
		_, err := setup.expenseUseCase.Create(ctx, accountID, req)
		assert.Error(t, err)
		assert.Equal(t, "description must be at most 255 characters", code.ParseErrorCode(err).Message)
	})

	t.Run("unknown tag reference", func(t *testing.T) {
		req := createRequest("2000", date)
		req.TagID = "12345"
		_, err := setup.expenseUseCase.Create(ctx, accountID, req)
		assert.Error(t, err)
		assert.Equal(t, "not found", code.ParseErrorCode(err).Message)
	})
}

func TestExpenseLifecycle(t *testing.T) {
	setup := createTestExpenseUseCase(t)
	ctx := context.Background()
	accountID := int64(1)
	otherAccountID := int64(2)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tag, err := setup.tagUseCase.Create(ctx, accountID, "food", "#ff0000")
	assert.Nil(t, err)

	req := createRequest("2000", date)
	req.TagID = strconv.FormatInt(tag.ID, 10)
	expense, err := setup.expenseUseCase.Create(ctx, accountID, req)
	assert.Nil(t, err)
	assert.NotNil(t, expense.Tag)
	assert.Equal(t, "food", expense.Tag.Name)

	t.Run("update by another account is not found", func(t *testing.T) {
		_, err := setup.expenseUseCase.Update(ctx, otherAccountID, expense.ID, createRequest("3000", date))
		assert.Error(t, err)
		assert.Equal(t, "not found", code.ParseErrorCode(err).Message)
	})

	t.Run("owner update", func(t *testing.T) {
		updated, err := setup.expenseUseCase.Update(ctx, accountID, expense.ID, createRequest("3000", date))
		assert.Nil(t, err)
		assert.True(t, updated.Amount.Equal(decimal.NewFromInt(3000)))
	})

	t.Run("listing resolves tag snapshots", func(t *testing.T) {
		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{Limit: 10})
		assert.Nil(t, err)
		assert.Len(t, expenses, 1)
		assert.NotNil(t, expenses[0].Tag)
	})

	t.Run("soft-deleted tag still renders on old expenses", func(t *testing.T) {
		assert.Nil(t, setup.tagUseCase.Delete(ctx, accountID, tag.ID))
		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{Limit: 10})
		assert.Nil(t, err)
		assert.NotNil(t, expenses[0].Tag)
	})

	t.Run("delete by another account is not found", func(t *testing.T) {
		err := setup.expenseUseCase.Delete(ctx, otherAccountID, expense.ID)
		assert.Error(t, err)
		assert.Equal(t, "not found", code.ParseErrorCode(err).Message)
	})

	t.Run("owner delete hides the expense", func(t *testing.T) {
		assert.Nil(t, setup.expenseUseCase.Delete(ctx, accountID, expense.ID))

		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{Limit: 10})
		assert.Nil(t, err)
		assert.Empty(t, expenses)

		// Deleting twice reports not found.
		err = setup.expenseUseCase.Delete(ctx, accountID, expense.ID)
		assert.Error(t, err)
	})
}

func TestListFilters(t *testing.T) {
	setup := createTestExpenseUseCase(t)
	ctx := context.Background()
	accountID := int64(1)

	for _, day := range []int{5, 10, 20} {
		_, err := setup.expenseUseCase.Create(ctx, accountID, createRequest("2000", time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)))
		assert.Nil(t, err)
	}

	t.Run("ordered by expense date descending", func(t *testing.T) {
		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{Limit: 10})
		assert.Nil(t, err)
		assert.Len(t, expenses, 3)
		assert.True(t, expenses[0].ExpenseDate.After(expenses[1].ExpenseDate))
		assert.True(t, expenses[1].ExpenseDate.After(expenses[2].ExpenseDate))
	})

	t.Run("date bounds are inclusive", func(t *testing.T) {
		start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{
			Limit:     10,
			StartDate: &start,
			EndDate:   &end,
		})
		assert.Nil(t, err)
		assert.Len(t, expenses, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{Skip: 1, Limit: 1})
		assert.Nil(t, err)
		assert.Len(t, expenses, 1)
		assert.Equal(t, 10, expenses[0].ExpenseDate.Day())
	})

	t.Run("other account sees nothing", func(t *testing.T) {
		expenses, err := setup.expenseUseCase.List(ctx, int64(99), domain.ExpenseQuery{Limit: 10})
		assert.Nil(t, err)
		assert.Empty(t, expenses)
	})
}

func TestListByTag(t *testing.T) {
	setup := createTestExpenseUseCase(t)
	ctx := context.Background()
	accountID := int64(1)
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tag, err := setup.tagUseCase.Create(ctx, accountID, "travel", "")
	assert.Nil(t, err)

	req := createRequest("2000", date)
	req.TagID = strconv.FormatInt(tag.ID, 10)
	_, err = setup.expenseUseCase.Create(ctx, accountID, req)
	assert.Nil(t, err)
	_, err = setup.expenseUseCase.Create(ctx, accountID, createRequest("2000", date))
	assert.Nil(t, err)

	expenses, err := setup.expenseUseCase.ListByTag(ctx, accountID, tag.ID, 0, 10)
	assert.Nil(t, err)
	assert.Len(t, expenses, 1)

	_, err = setup.expenseUseCase.ListByTag(ctx, accountID, 12345, 0, 10)
	assert.Error(t, err)
	assert.Equal(t, "not found", code.ParseErrorCode(err).Message)
}

func TestMonthlySummary(t *testing.T) {
	setup := createTestExpenseUseCase(t)
	ctx := context.Background()
	accountID := int64(1)

	fixtures := []struct {
		amount string
		date   time.Time
	}{
		{"1500.50", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2499.50", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{"3000", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"5000", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, fixture := range fixtures {
		_, err := setup.expenseUseCase.Create(ctx, accountID, createRequest(fixture.amount, fixture.date))
		assert.Nil(t, err)
	}

	t.Run("bounded to a year, ascending by month", func(t *testing.T) {
		summaries, err := setup.expenseUseCase.MonthlySummary(ctx, accountID, 2024)
		assert.Nil(t, err)
		assert.Len(t, summaries, 2)

		assert.Equal(t, 2024, summaries[0].Year)
		assert.Equal(t, 1, summaries[0].Month)
		assert.True(t, summaries[0].Total.Equal(decimal.NewFromInt(4000)))
		assert.Equal(t, 2, summaries[0].Count)

		assert.Equal(t, 2024, summaries[1].Year)
		assert.Equal(t, 2, summaries[1].Month)
		assert.True(t, summaries[1].Total.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, 1, summaries[1].Count)
	})

	t.Run("all years when unbounded", func(t *testing.T) {
		summaries, err := setup.expenseUseCase.MonthlySummary(ctx, accountID, 0)
		assert.Nil(t, err)
		assert.Len(t, summaries, 3)
		assert.Equal(t, 2023, summaries[0].Year)
		assert.Equal(t, 12, summaries[0].Month)
	})

	t.Run("deleted expenses drop out of the summary", func(t *testing.T) {
		expenses, err := setup.expenseUseCase.List(ctx, accountID, domain.ExpenseQuery{Limit: 10})
		assert.Nil(t, err)
		var january5 *domain.Expense
		for _, expense := range expenses {
			if expense.ExpenseDate.Equal(fixtures[0].date) {
				january5 = expense
			}
		}
		assert.NotNil(t, january5)
		assert.Nil(t, setup.expenseUseCase.Delete(ctx, accountID, january5.ID))

		summaries, err := setup.expenseUseCase.MonthlySummary(ctx, accountID, 2024)
		assert.Nil(t, err)
		assert.True(t, summaries[0].Total.Equal(decimal.RequireFromString("2499.50")))
		assert.Equal(t, 1, summaries[0].Count)
	})
}

func TestBuildMonthlySummary(t *testing.T) {
	assert.Empty(t, buildMonthlySummary(nil))

	rows := []*domain.SummaryRow{
		{ExpenseDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("0.1")},
		{ExpenseDate: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("0.2")},
		{ExpenseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("1")},
	}
	summaries := buildMonthlySummary(rows)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[0].Month)
	// Decimal accumulation keeps 0.1 + 0.2 exact.
	assert.True(t, summaries[1].Total.Equal(decimal.RequireFromString("0.3")))
}
