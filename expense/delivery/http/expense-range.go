package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	EncodeExpenseCurrentMonthResponse = httpTransportKit.EncodeJsonResponse
	EncodeExpenseCurrentYearResponse  = httpTransportKit.EncodeJsonResponse
)

type ExpensePageRequest struct {
	Skip  int
	Limit int
}

func DecodeExpensePageRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	req := ExpensePageRequest{
		Limit: defaultExpenseListLimit,
	}
	if skip, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && skip > 0 {
		req.Skip = skip
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		req.Limit = limit
	}
	return req, nil
}

func MakeExpenseCurrentMonthEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpensePageRequest)
		expenses, err := svc.ListCurrentMonth(ctx, httpKit.GetAccountID(ctx), req.Skip, req.Limit)
		if err != nil {
			return nil, err
		}
		return expenses, nil
	}
}

func MakeExpenseCurrentYearEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpensePageRequest)
		expenses, err := svc.ListCurrentYear(ctx, httpKit.GetAccountID(ctx), req.Skip, req.Limit)
		if err != nil {
			return nil, err
		}
		return expenses, nil
	}
}
