package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeTagCreateRequest  = httpTransportKit.DecodeJsonRequest[TagBodyRequest]
	EncodeTagCreateResponse = httpTransportKit.EncodeCreatedJsonResponse
)

type TagBodyRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func MakeTagCreateEndpoint(svc domain.TagUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(TagBodyRequest)
		tag, err := svc.Create(ctx, httpKit.GetAccountID(ctx), req.Name, req.Color)
		if err != nil {
			return nil, err
		}
		return tag, nil
	}
}
