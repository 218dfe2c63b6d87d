package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpMiddlewareKit "github.com/moneybook/expense-tracker/kit/http/middleware"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeAuthLogoutRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeAuthLogoutResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeEmptyResponse)
)

// MakeAuthLogoutEndpoint revokes the bearer token the request arrived with.
func MakeAuthLogoutEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		if err := svc.Logout(ctx, httpKit.GetToken(ctx)); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
