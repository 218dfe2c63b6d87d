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

var EncodeExpenseMonthlySummaryResponse = httpTransportKit.EncodeJsonResponse

type ExpenseMonthlySummaryRequest struct {
	Year int
}

func DecodeExpenseMonthlySummaryRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	var req ExpenseMonthlySummaryRequest
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && year > 0 {
		req.Year = year
	}
	return req, nil
}

func MakeExpenseMonthlySummaryEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpenseMonthlySummaryRequest)
		summaries, err := svc.MonthlySummary(ctx, httpKit.GetAccountID(ctx), req.Year)
		if err != nil {
			return nil, err
		}
		return summaries, nil
	}
}
