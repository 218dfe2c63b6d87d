package http

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/shopspring/decimal"

	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeExpenseCreateRequest  = httpTransportKit.DecodeJsonRequest[ExpenseBodyRequest]
	EncodeExpenseCreateResponse = httpTransportKit.EncodeCreatedJsonResponse
)

// ExpenseBodyRequest is the shared payload for creating and updating an
// expense.
type ExpenseBodyRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"desc"`
	ExpenseDate time.Time       `json:"expense_date"`
	TagID       string          `json:"tag_id"`
}

func (e ExpenseBodyRequest) toCreateRequest() domain.CreateExpenseRequest {
	return domain.CreateExpenseRequest{
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate,
		TagID:       e.TagID,
	}
}

func MakeExpenseCreateEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpenseBodyRequest)
		expense, err := svc.Create(ctx, httpKit.GetAccountID(ctx), req.toCreateRequest())
		if err != nil {
			return nil, err
		}
		return expense, nil
	}
}
