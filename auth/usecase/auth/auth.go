package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

type authUseCase struct {
	tokenRepo       domain.TokenRepo
	revocationStore domain.RevocationStore
	accountRepo     domain.AccountRepo
	logger          *loggerKit.Logger

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func CreateAuthUseCase(
	tokenRepo domain.TokenRepo,
	revocationStore domain.RevocationStore,
	accountRepo domain.AccountRepo,
	logger *loggerKit.Logger,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) (domain.AuthUseCase, error) {
	if logger == nil {
		return nil, errors.New("create auth use case failed")
	}
	return &authUseCase{
		tokenRepo:            tokenRepo,
		revocationStore:      revocationStore,
		accountRepo:          accountRepo,
		logger:               logger,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}, nil
}

func (a *authUseCase) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := a.accountRepo.GetByEmail(email)
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.EmailInvalid)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account by email failed")
	}

	if err := utilKit.CompareBcrypt([]byte(account.Password), []byte(password)); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.PasswordInvalid)
	}
	if !account.IsActive {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InactiveUser)
	}

	now := time.Now()
	accessToken, err := a.tokenRepo.Generate(account, domain.AccessToken, now, now.Add(a.accessTokenDuration))
	if err != nil {
		return nil, errors.Wrap(err, "generate access token failed")
	}
	refreshToken, err := a.tokenRepo.Generate(account, domain.RefreshToken, now, now.Add(a.refreshTokenDuration))
	if err != nil {
		return nil, errors.Wrap(err, "generate refresh token failed")
	}

	account.AccessToken = accessToken
	account.RefreshToken = refreshToken

	return account, nil
}

func (a *authUseCase) Logout(ctx context.Context, accessToken string) error {
	claims, err := a.tokenRepo.Verify(accessToken, domain.AccessToken)
	if err != nil {
		return mapVerifyErr(err)
	}

	if err := a.revocationStore.Revoke(ctx, accessToken, time.Until(claims.ExpireAt)); err != nil {
		return errors.Wrap(err, "revoke token failed")
	}

	a.logger.With(loggerKit.Int64("account_id", claims.AccountID)).Info("account logged out")

	return nil
}

func (a *authUseCase) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	revoked, err := a.revocationStore.IsRevoked(ctx, refreshToken)
	if err != nil {
		return "", errors.Wrap(err, "check revocation failed")
	}
	if revoked {
		return "", code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Revoked)
	}

	claims, err := a.tokenRepo.Verify(refreshToken, domain.RefreshToken)
	if err != nil {
		return "", mapVerifyErr(err)
	}

	// Re-fetch so the new access token snapshots current account state, not
	// the state at refresh-token issue time.
	account, err := a.accountRepo.Get(claims.AccountID)
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return "", code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.TokenInvalid)
	} else if err != nil {
		return "", errors.Wrap(err, "get account failed")
	}
	if !account.IsActive {
		return "", code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InactiveUser)
	}

	now := time.Now()
	accessToken, err := a.tokenRepo.Generate(account, domain.AccessToken, now, now.Add(a.accessTokenDuration))
	if err != nil {
		return "", errors.Wrap(err, "generate access token failed")
	}

	return accessToken, nil
}

func (a *authUseCase) Verify(ctx context.Context, accessToken string) (int64, error) {
	revoked, err := a.revocationStore.IsRevoked(ctx, accessToken)
	if err != nil {
		return 0, errors.Wrap(err, "check revocation failed")
	}
	if revoked {
		return 0, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Revoked)
	}

	claims, err := a.tokenRepo.Verify(accessToken, domain.AccessToken)
	if err != nil {
		return 0, mapVerifyErr(err)
	}

	return claims.AccountID, nil
}

func mapVerifyErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrExpired):
		return code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Expired)
	default:
		return code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.TokenInvalid)
	}
}
