package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var EncodeAccountGetResponse = httpTransportKit.EncodeJsonResponse

type AccountGetRequest struct {
	AccountID int64
}

func DecodeAccountGetRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	accountID, err := strconv.ParseInt(mux.Vars(r)["accountID"], 10, 64)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return AccountGetRequest{AccountID: accountID}, nil
}

func MakeAccountGetEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AccountGetRequest)
		account, err := svc.Get(ctx, req.AccountID)
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}
