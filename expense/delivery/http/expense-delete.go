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
	httpMiddlewareKit "github.com/moneybook/expense-tracker/kit/http/middleware"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var EncodeExpenseDeleteResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeEmptyResponse)

type ExpenseDeleteRequest struct {
	ExpenseID int64
}

func DecodeExpenseDeleteRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	expenseID, err := strconv.ParseInt(mux.Vars(r)["expenseID"], 10, 64)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return ExpenseDeleteRequest{ExpenseID: expenseID}, nil
}

func MakeExpenseDeleteEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpenseDeleteRequest)
		if err := svc.Delete(ctx, httpKit.GetAccountID(ctx), req.ExpenseID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
