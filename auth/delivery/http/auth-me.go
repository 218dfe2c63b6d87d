package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeAuthMeRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeAuthMeResponse = httpTransportKit.EncodeJsonResponse
)

func MakeAuthMeEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		account, err := svc.Get(ctx, httpKit.GetAccountID(ctx))
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}
