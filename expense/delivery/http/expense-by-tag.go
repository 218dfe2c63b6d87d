package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var EncodeExpenseByTagResponse = httpTransportKit.EncodeJsonResponse

type ExpenseByTagRequest struct {
	TagID int64
	Skip  int
	Limit int
}

func DecodeExpenseByTagRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	tagID, err := strconv.ParseInt(mux.Vars(r)["tagID"], 10, 64)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	req := ExpenseByTagRequest{
		TagID: tagID,
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

func MakeExpenseByTagEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpenseByTagRequest)
		expenses, err := svc.ListByTag(ctx, httpKit.GetAccountID(ctx), req.TagID, req.Skip, req.Limit)
		if err != nil {
			return nil, err
		}
		return expenses, nil
	}
}
