package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/moneybook/expense-tracker/kit/code"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
)

func createGateRouter() http.Handler {
	verifyFunc := func(ctx context.Context, token string) (int64, error) {
		if token == "valid-token" {
			return 42, nil
		}
		return 0, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.TokenInvalid)
	}

	r := mux.NewRouter()
	handler := func(w http.ResponseWriter, req *http.Request) {
		response := map[string]int64{"account_id": httpKit.GetAccountID(req.Context())}
		json.NewEncoder(w).Encode(response)
	}
	r.HandleFunc("/auth/signin", handler).Methods("POST")
	r.HandleFunc("/health", handler).Methods("GET")
	r.PathPrefix("/uploads/").HandlerFunc(handler)
	r.HandleFunc("/expenses/me", handler).Methods("GET", "OPTIONS")

	// Wrapping the router keeps unregistered paths behind the gate too.
	return CreateAuthRouteMiddleware(verifyFunc, AllowList{
		ExactPaths:  []string{"/auth/signin", "/health"},
		PrefixPaths: []string{"/uploads/"},
	})(r)
}

func TestAuthRouteMiddleware(t *testing.T) {
	r := createGateRouter()

	t.Run("allow-list path passes without token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("allow-list prefix passes without token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, httptest.NewRequest("GET", "/uploads/avatar.png", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("pre-flight passes without token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, httptest.NewRequest("OPTIONS", "/expenses/me", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unregistered path is challenged", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, httptest.NewRequest("GET", "/no-such-route", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"http_code":401,"code":10,"message":"missing access token"}`, recorder.Body.String())
	})

	t.Run("missing token fails closed", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, httptest.NewRequest("GET", "/expenses/me", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"http_code":401,"code":10,"message":"missing access token"}`, recorder.Body.String())
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/expenses/me", nil)
		request.Header.Set("Authorization", "Basic abc123")
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"http_code":401,"code":11,"message":"invalid token"}`, recorder.Body.String())
	})

	t.Run("rejected token", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/expenses/me", nil)
		request.Header.Set("Authorization", "Bearer bad-token")
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"http_code":401,"code":11,"message":"invalid token"}`, recorder.Body.String())
	})

	t.Run("valid token reaches handler with account id", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/expenses/me", nil)
		request.Header.Set("Authorization", "Bearer valid-token")
		recorder := httptest.NewRecorder()
		r.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"account_id":42}`, recorder.Body.String())
	})
}

func TestVerifyActiveAccountMiddleware(t *testing.T) {
	endpointCalled := false
	wrapped := CreateVerifyActiveAccountMiddleware(func(ctx context.Context, accountID int64) error {
		if accountID == 42 {
			return nil
		}
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InactiveUser)
	})(func(ctx context.Context, request interface{}) (interface{}, error) {
		endpointCalled = true
		return nil, nil
	})

	t.Run("no authenticated account", func(t *testing.T) {
		endpointCalled = false
		_, err := wrapped(context.Background(), nil)
		assert.Error(t, err)
		assert.False(t, endpointCalled)
	})

	t.Run("inactive account stops before the endpoint", func(t *testing.T) {
		endpointCalled = false
		_, err := wrapped(httpKit.AddAccountID(context.Background(), 7), nil)
		assert.Error(t, err)
		assert.Equal(t, "inactive user", code.ParseErrorCode(err).Message)
		assert.False(t, endpointCalled)
	})

	t.Run("active account passes through", func(t *testing.T) {
		endpointCalled = false
		_, err := wrapped(httpKit.AddAccountID(context.Background(), 42), nil)
		assert.Nil(t, err)
		assert.True(t, endpointCalled)
	})
}
