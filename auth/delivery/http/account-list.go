package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

const defaultAccountListLimit = 100

var EncodeAccountListResponse = httpTransportKit.EncodeJsonResponse

type AccountListRequest struct {
	Skip  int
	Limit int
	Name  string
}

func DecodeAccountListRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	req := AccountListRequest{
		Limit: defaultAccountListLimit,
		Name:  r.URL.Query().Get("name"),
	}
	if skip, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && skip > 0 {
		req.Skip = skip
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		req.Limit = limit
	}
	return req, nil
}

func MakeAccountListEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AccountListRequest)
		accounts, err := svc.List(ctx, req.Skip, req.Limit, req.Name)
		if err != nil {
			return nil, err
		}
		return accounts, nil
	}
}
