package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var EncodeExpenseUpdateResponse = httpTransportKit.EncodeJsonResponse

type ExpenseUpdateRequest struct {
	ExpenseID int64
	Body      ExpenseBodyRequest
}

func DecodeExpenseUpdateRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	expenseID, err := strconv.ParseInt(mux.Vars(r)["expenseID"], 10, 64)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	var body ExpenseBodyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return ExpenseUpdateRequest{ExpenseID: expenseID, Body: body}, nil
}

func MakeExpenseUpdateEndpoint(svc domain.ExpenseUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(ExpenseUpdateRequest)
		expense, err := svc.Update(ctx, httpKit.GetAccountID(ctx), req.ExpenseID, req.Body.toCreateRequest())
		if err != nil {
			return nil, err
		}
		return expense, nil
	}
}
