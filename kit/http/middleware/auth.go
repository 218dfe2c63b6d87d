package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/moneybook/expense-tracker/kit/code"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
)

// AllowList names the requests the auth gate forwards without a token:
// exact path matches, path-prefix matches, and CORS pre-flight.
type AllowList struct {
	ExactPaths  []string
	PrefixPaths []string
}

func (a AllowList) allows(r *http.Request) bool {
	for _, path := range a.ExactPaths {
		if r.URL.Path == path {
			return true
		}
	}
	for _, prefix := range a.PrefixPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return r.Method == http.MethodOptions
}

// CreateAuthRouteMiddleware gates every inbound request before any handler
// runs. Outside the allow-list it requires a bearer token, verifies it via
// verifyFunc and attaches the account id to the request context. Any
// failure writes a 401 directly and the handler never executes.
func CreateAuthRouteMiddleware(
	verifyFunc func(ctx context.Context, token string) (accountID int64, err error),
	allowList AllowList,
) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowList.allows(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httpKit.WriteErrorResponse(w, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.MissingToken))
				return
			}
			token, ok := httpKit.BearerToken(header)
			if !ok {
				httpKit.WriteErrorResponse(w, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.TokenInvalid))
				return
			}

			accountID, err := verifyFunc(r.Context(), token)
			if err != nil {
				httpKit.WriteErrorResponse(w, err)
				return
			}

			ctx := httpKit.AddToken(r.Context(), token)
			ctx = httpKit.AddAccountID(ctx, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CreateVerifyActiveAccountMiddleware rejects requests whose authenticated
// account is inactive before the endpoint body runs.
func CreateVerifyActiveAccountMiddleware(verifyActiveFunc func(ctx context.Context, accountID int64) error) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			accountID := httpKit.GetAccountID(ctx)
			if accountID == 0 {
				return nil, code.CreateErrorCode(http.StatusUnauthorized)
			}
			if err := verifyActiveFunc(ctx, accountID); err != nil {
				return nil, err
			}
			return e(ctx, request)
		}
	}
}
