package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/moneybook/expense-tracker/kit/code"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

type ctxKeyType int

const (
	_CTX_IP_KEY ctxKeyType = iota
	_CTX_HOST
	_CTX_URL_PATH
	_CTX_METHOD
	_CTX_TRACE_ID
	_CTX_TOKEN
	_CTX_REQUEST_ID
	_CTX_ACCOUNT_ID
)

func ReadUserIP(r *http.Request) string {
	IPAddress := r.Header.Get("X-Real-Ip")
	if IPAddress == "" {
		IPAddress = r.Header.Get("X-Forwarded-For")
	}
	if IPAddress == "" {
		IPAddress = r.RemoteAddr
	}
	return strings.Split(IPAddress, ":")[0]
}

// BearerToken extracts the token segment of an "Authorization: Bearer x"
// header value. The second result is false when no token segment exists.
func BearerToken(headerValue string) (string, bool) {
	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func CustomBeforeCtx(tracer trace.Tracer) func(ctx context.Context, r *http.Request) context.Context {
	return func(ctx context.Context, r *http.Request) context.Context {
		if token, ok := BearerToken(r.Header.Get("Authorization")); ok {
			ctx = AddToken(ctx, token)
		}
		ctx = context.WithValue(ctx, _CTX_HOST, r.Host)
		ctx = context.WithValue(ctx, _CTX_URL_PATH, r.URL.Path)
		ctx = context.WithValue(ctx, _CTX_METHOD, r.Method)
		ctx = context.WithValue(ctx, _CTX_IP_KEY, ReadUserIP(r))
		ctx = AddRequestID(ctx)

		ctx, span := tracer.Start(ctx, r.URL.Path)
		defer span.End()

		ctx = AddTraceID(ctx, span.SpanContext().TraceID().String())

		return ctx
	}
}

func CustomAfterCtx(ctx context.Context, w http.ResponseWriter) context.Context {
	w.Header().Add("X-B3-TraceId", trace.SpanContextFromContext(ctx).TraceID().String())
	return ctx
}

func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(_CTX_TRACE_ID).(string); ok {
		return traceID
	}
	return ""
}

func GetIP(ctx context.Context) string {
	if ip, ok := ctx.Value(_CTX_IP_KEY).(string); ok {
		return ip
	}
	return ""
}

func AddTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, _CTX_TRACE_ID, traceID)
}

func GetURL(ctx context.Context) string {
	if url, ok := ctx.Value(_CTX_URL_PATH).(string); ok {
		return url
	}
	return ""
}

func GetMethod(ctx context.Context) string {
	if method, ok := ctx.Value(_CTX_METHOD).(string); ok {
		return method
	}
	return ""
}

func AddAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, _CTX_ACCOUNT_ID, accountID)
}

func GetAccountID(ctx context.Context) int64 {
	if accountID, ok := ctx.Value(_CTX_ACCOUNT_ID).(int64); ok {
		return accountID
	}
	return 0
}

func AddToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, _CTX_TOKEN, token)
}

func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(_CTX_TOKEN).(string); ok {
		return token
	}
	return ""
}

func AddRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, _CTX_REQUEST_ID, utilKit.GetSnowflakeIDInt64())
}

func GetRequestID(ctx context.Context) int64 {
	if requestID, ok := ctx.Value(_CTX_REQUEST_ID).(int64); ok {
		return requestID
	}
	return 0
}

func EncodeHTTPErrorResponse() func(ctx context.Context, err error, w http.ResponseWriter) {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if err == nil {
			panic("encodeError with nil error")
		}

		ctx = CustomAfterCtx(ctx, w)

		errorCode := code.CreateHTTPError(code.ParseErrorCode(err))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(errorCode.HTTPCode)
		json.NewEncoder(w).Encode(errorCode)
	}
}

// WriteErrorResponse writes a taxonomy-coded error directly, for use
// outside the go-kit server path (e.g. route middleware that fails closed
// before any endpoint runs).
func WriteErrorResponse(w http.ResponseWriter, err error) {
	errorCode := code.CreateHTTPError(code.ParseErrorCode(err))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errorCode.HTTPCode)
	json.NewEncoder(w).Encode(errorCode)
}
