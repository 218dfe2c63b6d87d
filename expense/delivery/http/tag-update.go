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

var EncodeTagUpdateResponse = httpTransportKit.EncodeJsonResponse

type TagUpdateRequest struct {
	TagID int64
	Body  TagBodyRequest
}

func DecodeTagUpdateRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	tagID, err := strconv.ParseInt(mux.Vars(r)["tagID"], 10, 64)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	var body TagBodyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return TagUpdateRequest{TagID: tagID, Body: body}, nil
}

func MakeTagUpdateEndpoint(svc domain.TagUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(TagUpdateRequest)
		tag, err := svc.Update(ctx, httpKit.GetAccountID(ctx), req.TagID, req.Body.Name, req.Body.Color)
		if err != nil {
			return nil, err
		}
		return tag, nil
	}
}
