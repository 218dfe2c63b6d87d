package expense

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
)

const maxDescriptionLength = 255

// minimumAmount is an exclusive lower bound: an expense must cost strictly
// more than this to be worth recording.
var minimumAmount = decimal.NewFromInt(1000)

type expenseUseCase struct {
	expenseRepo domain.ExpenseRepo
	tagRepo     domain.TagRepo
	logger      *loggerKit.Logger
}

func CreateExpenseUseCase(expenseRepo domain.ExpenseRepo, tagRepo domain.TagRepo, logger *loggerKit.Logger) (domain.ExpenseUseCase, error) {
	if logger == nil {
		return nil, errors.New("create expense use case failed")
	}
	return &expenseUseCase{
		expenseRepo: expenseRepo,
		tagRepo:     tagRepo,
		logger:      logger,
	}, nil
}

func (e *expenseUseCase) Create(ctx context.Context, accountID int64, req domain.CreateExpenseRequest) (*domain.Expense, error) {
	validated, err := e.validateRequest(req)
	if err != nil {
		return nil, err
	}

	expense := domain.Expense{
		AccountID:   accountID,
		Amount:      validated.Amount,
		Description: validated.Description,
		ExpenseDate: validated.ExpenseDate,
		TagID:       validated.TagID,
	}
	if err := e.expenseRepo.Create(&expense); err != nil {
		return nil, errors.Wrap(err, "create expense failed")
	}

	e.attachTagSnapshots([]*domain.Expense{&expense})

	return &expense, nil
}

func (e *expenseUseCase) Update(ctx context.Context, accountID, expenseID int64, req domain.CreateExpenseRequest) (*domain.Expense, error) {
	validated, err := e.validateRequest(req)
	if err != nil {
		return nil, err
	}

	expense := domain.Expense{
		ID:          expenseID,
		AccountID:   accountID,
		Amount:      validated.Amount,
		Description: validated.Description,
		ExpenseDate: validated.ExpenseDate,
		TagID:       validated.TagID,
	}
	rowsAffected, err := e.expenseRepo.Update(&expense)
	if err != nil {
		return nil, errors.Wrap(err, "update expense failed")
	}
	if rowsAffected == 0 {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	}

	updated, err := e.expenseRepo.Get(expenseID)
	if err != nil {
		return nil, errors.Wrap(err, "get expense failed")
	}
	e.attachTagSnapshots([]*domain.Expense{updated})

	return updated, nil
}

func (e *expenseUseCase) Delete(ctx context.Context, accountID, expenseID int64) error {
	rowsAffected, err := e.expenseRepo.SoftDelete(expenseID, accountID)
	if err != nil {
		return errors.Wrap(err, "delete expense failed")
	}
	if rowsAffected == 0 {
		return code.CreateErrorCode(http.StatusNotFound)
	}
	return nil
}

func (e *expenseUseCase) List(ctx context.Context, accountID int64, query domain.ExpenseQuery) ([]*domain.Expense, error) {
	expenses, err := e.expenseRepo.List(accountID, query)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses failed")
	}
	e.attachTagSnapshots(expenses)
	return expenses, nil
}

func (e *expenseUseCase) ListCurrentMonth(ctx context.Context, accountID int64, skip, limit int) ([]*domain.Expense, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return e.List(ctx, accountID, domain.ExpenseQuery{
		Skip:      skip,
		Limit:     limit,
		StartDate: &start,
		EndDate:   &end,
	})
}

func (e *expenseUseCase) ListCurrentYear(ctx context.Context, accountID int64, skip, limit int) ([]*domain.Expense, error) {
	now := time.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	return e.List(ctx, accountID, domain.ExpenseQuery{
		Skip:      skip,
		Limit:     limit,
		StartDate: &start,
		EndDate:   &end,
	})
}

func (e *expenseUseCase) ListByTag(ctx context.Context, accountID, tagID int64, skip, limit int) ([]*domain.Expense, error) {
	if _, err := e.tagRepo.Get(tagID); errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "get tag failed")
	}
	return e.List(ctx, accountID, domain.ExpenseQuery{
		Skip:  skip,
		Limit: limit,
		TagID: strconv.FormatInt(tagID, 10),
	})
}

func (e *expenseUseCase) MonthlySummary(ctx context.Context, accountID int64, year int) ([]*domain.MonthlySummary, error) {
	rows, err := e.expenseRepo.GetSummaryRows(accountID, year)
	if err != nil {
		return nil, errors.Wrap(err, "get summary rows failed")
	}
	return buildMonthlySummary(rows), nil
}

// buildMonthlySummary groups rows by calendar month, accumulating totals in
// decimal so cents never drift. Results come back in chronological order.
func buildMonthlySummary(rows []*domain.SummaryRow) []*domain.MonthlySummary {
	type monthKey struct {
		year  int
		month int
	}

	groups := make(map[monthKey]*domain.MonthlySummary)
	for _, row := range rows {
		key := monthKey{year: row.ExpenseDate.Year(), month: int(row.ExpenseDate.Month())}
		summary, ok := groups[key]
		if !ok {
			summary = &domain.MonthlySummary{
				Year:  key.year,
				Month: key.month,
				Total: decimal.Zero,
			}
			groups[key] = summary
		}
		summary.Total = summary.Total.Add(row.Amount)
		summary.Count++
	}

	results := make([]*domain.MonthlySummary, 0, len(groups))
	for _, summary := range groups {
		results = append(results, summary)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Year != results[j].Year {
			return results[i].Year < results[j].Year
		}
		return results[i].Month < results[j].Month
	})
	return results
}

func (e *expenseUseCase) validateRequest(req domain.CreateExpenseRequest) (*domain.CreateExpenseRequest, error) {
	if !req.Amount.GreaterThan(minimumAmount) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.AmountTooSmall, minimumAmount.String())
	}
	if req.ExpenseDate.IsZero() {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.DateRequired)
	}
	description := strings.TrimSpace(req.Description)
	if len(description) > maxDescriptionLength {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.DescriptionTooLong, maxDescriptionLength)
	}
	tagID := strings.TrimSpace(req.TagID)
	if tagID != "" {
		parsedTagID, err := strconv.ParseInt(tagID, 10, 64)
		if err != nil {
			return nil, code.CreateErrorCode(http.StatusNotFound)
		}
		if _, err := e.tagRepo.Get(parsedTagID); errors.Is(err, ormKit.ErrRecordNotFound) {
			return nil, code.CreateErrorCode(http.StatusNotFound)
		} else if err != nil {
			return nil, errors.Wrap(err, "get tag failed")
		}
	}
	return &domain.CreateExpenseRequest{
		Amount:      req.Amount,
		Description: description,
		ExpenseDate: req.ExpenseDate,
		TagID:       tagID,
	}, nil
}

// attachTagSnapshots resolves tag references in one batch. Dangling or
// unparsable references stay nil.
func (e *expenseUseCase) attachTagSnapshots(expenses []*domain.Expense) {
	tagIDSet := make(map[int64]struct{})
	for _, expense := range expenses {
		if expense.TagID == "" {
			continue
		}
		if tagID, err := strconv.ParseInt(expense.TagID, 10, 64); err == nil {
			tagIDSet[tagID] = struct{}{}
		}
	}
	if len(tagIDSet) == 0 {
		return
	}

	tagIDs := make([]int64, 0, len(tagIDSet))
	for tagID := range tagIDSet {
		tagIDs = append(tagIDs, tagID)
	}
	tags, err := e.tagRepo.GetByIDs(tagIDs)
	if err != nil {
		e.logger.With(loggerKit.Error(err)).Warn("resolve tag snapshots failed")
		return
	}

	for _, expense := range expenses {
		if expense.TagID == "" {
			continue
		}
		if tagID, err := strconv.ParseInt(expense.TagID, 10, 64); err == nil {
			expense.Tag = tags[tagID]
		}
	}
}
