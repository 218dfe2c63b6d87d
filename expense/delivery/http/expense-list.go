package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

const defaultExpenseListLimit = 100

var EncodeExpenseListResponse = httpTransportKit.EncodeJsonResponse

type ExpenseListRequest struct {
	Query domain.ExpenseQuery
}

func DecodeExpenseListRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	query := domain.ExpenseQuery{
		Limit: defaultExpenseListLimit,
		TagID: r.URL.Query().Get("tag_id"),
	}
	if skip, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && skip > 0 {
		query.Skip = skip
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		query.Limit = limit
	}
	var err error
	if query.StartDate, err = parseDateParam(r.URL.Query().Get("start_date")); err != nil {
		return nil, err
	}
	if query.EndDate, err = parseDateParam(r.URL.Query().Get("end_date")); err != nil {
		return nil, err
	}
	return ExpenseListRequest{Query: query}, nil
}

// parseDateParam accepts a full timestamp or a bare date.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, nil
		}
	}
	return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody)
}

func MakeExpenseListEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpenseListRequest)
		expenses, err := svc.List(ctx, httpKit.GetAccountID(ctx), req.Query)
		if err != nil {
			return nil, err
		}
		return expenses, nil
	}
}
