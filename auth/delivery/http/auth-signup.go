package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

const signupMaxMemory = 8 << 20

var EncodeAuthSignupResponse = httpTransportKit.EncodeCreatedJsonResponse

// DecodeAuthSignupRequest reads a multipart form so the optional avatar can
// ride along with the credentials.
func DecodeAuthSignupRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	if err := r.ParseMultipartForm(signupMaxMemory); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}

	req := domain.RegisterAccountRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if file, header, err := r.FormFile("avatar"); err == nil {
		req.Avatar = file
		req.AvatarFilename = header.Filename
	}

	return req, nil
}

func MakeAuthSignupEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(domain.RegisterAccountRequest)
		account, err := svc.Register(ctx, req)
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}
