package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeTagListRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeTagListResponse = httpTransportKit.EncodeJsonResponse
)

func MakeTagListEndpoint(svc domain.TagUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		tags, err := svc.ListByAccount(ctx, httpKit.GetAccountID(ctx))
		if err != nil {
			return nil, err
		}
		return tags, nil
	}
}
