package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/moneybook/expense-tracker/domain"
	httpTransportKit "github.com/moneybook/expense-tracker/kit/http/transport"
)

var (
	DecodeAuthRefreshAccessTokenRequest  = httpTransportKit.DecodeJsonRequest[AuthRefreshAccessTokenRequest]
	EncodeAuthRefreshAccessTokenResponse = httpTransportKit.EncodeJsonResponse
)

type AuthRefreshAccessTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthRefreshAccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func MakeAuthRefreshAccessTokenEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AuthRefreshAccessTokenRequest)
		accessToken, err := svc.RefreshAccessToken(ctx, req.RefreshToken)
		if err != nil {
			return nil, err
		}
		return &AuthRefreshAccessTokenResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
		}, nil
	}
}
