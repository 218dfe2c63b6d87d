package http

import (
	"context"
	"io"
	"net/http"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var EncodeAuthUpdateAvatarResponse = httpTransportKit.EncodeJsonResponse

type AuthUpdateAvatarRequest struct {
	Avatar   io.Reader
	Filename string
}

func DecodeAuthUpdateAvatarRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	if err := r.ParseMultipartForm(signupMaxMemory); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return AuthUpdateAvatarRequest{Avatar: file, Filename: header.Filename}, nil
}

func MakeAuthUpdateAvatarEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AuthUpdateAvatarRequest)
		account, err := svc.UpdateAvatar(ctx, httpKit.GetAccountID(ctx), req.Avatar, req.Filename)
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}
