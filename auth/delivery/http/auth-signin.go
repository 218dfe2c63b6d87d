package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeAuthSigninRequest  = httpTransportKit.DecodeJsonRequest[AuthSigninRequest]
	EncodeAuthSigninResponse = httpTransportKit.EncodeJsonResponse
)

type AuthSigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthSigninResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func MakeAuthSigninEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AuthSigninRequest)
		account, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		return &AuthSigninResponse{
			AccessToken:  account.AccessToken,
			RefreshToken: account.RefreshToken,
			TokenType:    "bearer",
		}, nil
	}
}
