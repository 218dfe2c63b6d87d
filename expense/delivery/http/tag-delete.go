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

var EncodeTagDeleteResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeEmptyResponse)

type TagDeleteRequest struct {
	TagID int64
}

func DecodeTagDeleteRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	tagID, err := strconv.ParseInt(mux.Vars(r)["tagID"], 10, 64)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return TagDeleteRequest{TagID: tagID}, nil
}

func MakeTagDeleteEndpoint(svc domain.TagUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(TagDeleteRequest)
		if err := svc.Delete(ctx, httpKit.GetAccountID(ctx), req.TagID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
