package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	accountRepository "github.com/moneybook/expense-tracker/auth/repository/account/mysql"
	avatarFSRepository "github.com/moneybook/expense-tracker/auth/repository/avatar/fs"
	avatarS3Repository "github.com/moneybook/expense-tracker/auth/repository/avatar/s3"
	revocationMemoryRepository "github.com/moneybook/expense-tracker/auth/repository/revocation/memory"
	revocationRedisRepository "github.com/moneybook/expense-tracker/auth/repository/revocation/redis"
	tokenRepository "github.com/moneybook/expense-tracker/auth/repository/token/jwt"
	accountUseCaseLib "github.com/moneybook/expense-tracker/auth/usecase/account"
	authUseCaseLib "github.com/moneybook/expense-tracker/auth/usecase/auth"
	"github.com/moneybook/expense-tracker/domain"
	httpKit "github.com/moneybook/expense-tracker/kit/http"
	httpMiddlewareKit "github.com/moneybook/expense-tracker/kit/http/middleware"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	redisKit "github.com/moneybook/expense-tracker/kit/redis"
	traceKit "github.com/moneybook/expense-tracker/kit/trace"
	utilKit "github.com/moneybook/expense-tracker/kit/util"

	authDeliveryHTTP "github.com/moneybook/expense-tracker/auth/delivery/http"
	expenseDeliveryHTTP "github.com/moneybook/expense-tracker/expense/delivery/http"
	expenseRepository "github.com/moneybook/expense-tracker/expense/repository/expense/mysql"
	tagRepository "github.com/moneybook/expense-tracker/expense/repository/tag/mysql"
	expenseUseCaseLib "github.com/moneybook/expense-tracker/expense/usecase/expense"
	tagUseCaseLib "github.com/moneybook/expense-tracker/expense/usecase/tag"
)

const (
	SYSTEM_NAME  = "system"
	SERVICE_NAME = "expense_tracker"
)

func main() {
	var (
		enableTracer   = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric   = utilKit.GetEnvBool("ENABLE_METRIC", false)
		env            = utilKit.GetEnvString("ENV", "development")
		listenAddr     = utilKit.GetEnvString("LISTEN_ADDR", ":9090")
		mysqlURI       = utilKit.GetEnvString("MYSQL_URI", "")
		sqliteFileName = utilKit.GetEnvString("SQLITE_FILE_NAME", "expense-tracker.db")
		redisURI       = utilKit.GetEnvString("REDIS_URI", "")
		tokenSecret    = utilKit.GetEnvString("SECRET_KEY", "accessTokenSecretKey")
		accessExpire   = utilKit.GetEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
		refreshExpire  = utilKit.GetEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 30)
		s3Bucket       = utilKit.GetEnvString("AVATAR_S3_BUCKET", "")
		s3Region       = utilKit.GetEnvString("AVATAR_S3_REGION", "us-east-1")
		uploadDir      = utilKit.GetEnvString("UPLOAD_DIR", "./uploads")
	)

	logLevel := loggerKit.InfoLevel
	if env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger("./go.log", logLevel)
	if err != nil {
		panic(err)
	}

	var dbOption ormKit.Option
	if mysqlURI != "" {
		dbOption = ormKit.UseMySQL(mysqlURI)
	} else {
		dbOption = ormKit.UseSQLite(sqliteFileName)
	}
	singletonDB, err := ormKit.CreateDB(dbOption)
	if err != nil {
		panic(err)
	}

	var (
		singletonCache  *redisKit.Cache
		revocationStore domain.RevocationStore
	)
	if redisURI != "" {
		singletonCache, err = redisKit.CreateCache(redisURI, "", 0)
		if err != nil {
			panic(err)
		}
		revocationStore = revocationRedisRepository.CreateRevocationStore(singletonCache)
	} else {
		revocationStore = revocationMemoryRepository.CreateRevocationStore()
	}

	var tracer trace.Tracer
	if enableTracer {
		tracer, err = traceKit.CreateTracer(context.Background(), SERVICE_NAME)
		if err != nil {
			panic(err)
		}
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	var avatarRepo domain.AvatarRepo
	if s3Bucket != "" {
		avatarRepo = avatarS3Repository.CreateAvatarRepo(s3Bucket, s3Region)
	} else {
		avatarRepo, err = avatarFSRepository.CreateAvatarRepo(uploadDir, "/uploads")
		if err != nil {
			panic(err)
		}
	}

	accountRepo := accountRepository.CreateAccountRepo(singletonDB)
	tokenRepo, err := tokenRepository.CreateTokenRepo(tokenSecret)
	if err != nil {
		panic(err)
	}
	tagRepo := tagRepository.CreateTagRepo(singletonDB)
	expenseRepo := expenseRepository.CreateExpenseRepo(singletonDB)

	accountUseCase, err := accountUseCaseLib.CreateAccountUseCase(accountRepo, avatarRepo, logger)
	if err != nil {
		panic(err)
	}
	authUseCase, err := authUseCaseLib.CreateAuthUseCase(
		tokenRepo,
		revocationStore,
		accountRepo,
		logger,
		time.Duration(accessExpire)*time.Minute,
		time.Duration(refreshExpire)*24*time.Hour,
	)
	if err != nil {
		panic(err)
	}
	tagUseCase, err := tagUseCaseLib.CreateTagUseCase(tagRepo, logger)
	if err != nil {
		panic(err)
	}
	expenseUseCase, err := expenseUseCaseLib.CreateExpenseUseCase(expenseRepo, tagRepo, logger)
	if err != nil {
		panic(err)
	}

	middlewares := []endpoint.Middleware{
		httpMiddlewareKit.CreateLoggingMiddleware(logger),
		httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME),
	}
	if singletonCache != nil {
		rateLimit := utilKit.CreateCacheRateLimit(singletonCache, 100, 60)
		middlewares = append(middlewares, httpMiddlewareKit.CreateRateLimitMiddleware(rateLimit.Pass))
	}
	customMiddleware := endpoint.Chain(middlewares[0], middlewares[1:]...)
	activeAccountMiddleware := httpMiddlewareKit.CreateVerifyActiveAccountMiddleware(func(ctx context.Context, accountID int64) error {
		_, err := accountUseCase.VerifyActive(ctx, accountID)
		return err
	})
	protected := func(e endpoint.Endpoint) endpoint.Endpoint {
		return customMiddleware(activeAccountMiddleware(e))
	}

	authRouteMiddleware := httpMiddlewareKit.CreateAuthRouteMiddleware(authUseCase.Verify, httpMiddlewareKit.AllowList{
		ExactPaths: []string{
			"/",
			"/docs",
			"/openapi.json",
			"/health",
			"/metrics",
			"/auth/signup",
			"/auth/signin",
			"/auth/refresh",
		},
		PrefixPaths: []string{"/uploads/"},
	})

	r := mux.NewRouter()
	options := []httptransport.ServerOption{
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	}

	r.Methods("POST").Path("/auth/signup").Handler(
		httptransport.NewServer(
			customMiddleware(authDeliveryHTTP.MakeAuthSignupEndpoint(accountUseCase)),
			authDeliveryHTTP.DecodeAuthSignupRequest,
			authDeliveryHTTP.EncodeAuthSignupResponse,
			options...,
		))
	r.Methods("POST").Path("/auth/signin").Handler(
		httptransport.NewServer(
			customMiddleware(authDeliveryHTTP.MakeAuthSigninEndpoint(authUseCase)),
			authDeliveryHTTP.DecodeAuthSigninRequest,
			authDeliveryHTTP.EncodeAuthSigninResponse,
			options...,
		))
	r.Methods("POST").Path("/auth/refresh").Handler(
		httptransport.NewServer(
			customMiddleware(authDeliveryHTTP.MakeAuthRefreshAccessTokenEndpoint(authUseCase)),
			authDeliveryHTTP.DecodeAuthRefreshAccessTokenRequest,
			authDeliveryHTTP.EncodeAuthRefreshAccessTokenResponse,
			options...,
		))
	r.Methods("POST").Path("/auth/logout").Handler(
		httptransport.NewServer(
			customMiddleware(authDeliveryHTTP.MakeAuthLogoutEndpoint(authUseCase)),
			authDeliveryHTTP.DecodeAuthLogoutRequest,
			authDeliveryHTTP.EncodeAuthLogoutResponse,
			options...,
		))
	r.Methods("PUT").Path("/auth/me/avatar").Handler(
		httptransport.NewServer(
			protected(authDeliveryHTTP.MakeAuthUpdateAvatarEndpoint(accountUseCase)),
			authDeliveryHTTP.DecodeAuthUpdateAvatarRequest,
			authDeliveryHTTP.EncodeAuthUpdateAvatarResponse,
			options...,
		))
	r.Methods("GET").Path("/auth/me").Handler(
		httptransport.NewServer(
			protected(authDeliveryHTTP.MakeAuthMeEndpoint(accountUseCase)),
			authDeliveryHTTP.DecodeAuthMeRequest,
			authDeliveryHTTP.EncodeAuthMeResponse,
			options...,
		))
	r.Methods("GET").Path("/accounts").Handler(
		httptransport.NewServer(
			protected(authDeliveryHTTP.MakeAccountListEndpoint(accountUseCase)),
			authDeliveryHTTP.DecodeAccountListRequest,
			authDeliveryHTTP.EncodeAccountListResponse,
			options...,
		))
	r.Methods("GET").Path("/accounts/{accountID}").Handler(
		httptransport.NewServer(
			protected(authDeliveryHTTP.MakeAccountGetEndpoint(accountUseCase)),
			authDeliveryHTTP.DecodeAccountGetRequest,
			authDeliveryHTTP.EncodeAccountGetResponse,
			options...,
		))

	r.Methods("POST").Path("/tags").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeTagCreateEndpoint(tagUseCase)),
			expenseDeliveryHTTP.DecodeTagCreateRequest,
			expenseDeliveryHTTP.EncodeTagCreateResponse,
			options...,
		))
	r.Methods("GET").Path("/tags").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeTagListEndpoint(tagUseCase)),
			expenseDeliveryHTTP.DecodeTagListRequest,
			expenseDeliveryHTTP.EncodeTagListResponse,
			options...,
		))
	r.Methods("GET").Path("/tags/me").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeTagListEndpoint(tagUseCase)),
			expenseDeliveryHTTP.DecodeTagListRequest,
			expenseDeliveryHTTP.EncodeTagListResponse,
			options...,
		))
	r.Methods("GET").Path("/tags/user/{accountID}").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeTagListByAccountEndpoint(tagUseCase)),
			expenseDeliveryHTTP.DecodeTagListByAccountRequest,
			expenseDeliveryHTTP.EncodeTagListByAccountResponse,
			options...,
		))
	r.Methods("PUT").Path("/tags/{tagID}").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeTagUpdateEndpoint(tagUseCase)),
			expenseDeliveryHTTP.DecodeTagUpdateRequest,
			expenseDeliveryHTTP.EncodeTagUpdateResponse,
			options...,
		))
	r.Methods("DELETE").Path("/tags/{tagID}").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeTagDeleteEndpoint(tagUseCase)),
			expenseDeliveryHTTP.DecodeTagDeleteRequest,
			expenseDeliveryHTTP.EncodeTagDeleteResponse,
			options...,
		))

	r.Methods("POST").Path("/expenses").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseCreateEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpenseCreateRequest,
			expenseDeliveryHTTP.EncodeExpenseCreateResponse,
			options...,
		))
	r.Methods("PUT").Path("/expenses/{expenseID}").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseUpdateEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpenseUpdateRequest,
			expenseDeliveryHTTP.EncodeExpenseUpdateResponse,
			options...,
		))
	r.Methods("DELETE").Path("/expenses/{expenseID}").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseDeleteEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpenseDeleteRequest,
			expenseDeliveryHTTP.EncodeExpenseDeleteResponse,
			options...,
		))
	r.Methods("GET").Path("/expenses/me").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseListEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpenseListRequest,
			expenseDeliveryHTTP.EncodeExpenseListResponse,
			options...,
		))
	r.Methods("GET").Path("/expenses/me/current-month").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseCurrentMonthEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpensePageRequest,
			expenseDeliveryHTTP.EncodeExpenseCurrentMonthResponse,
			options...,
		))
	r.Methods("GET").Path("/expenses/me/current-year").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseCurrentYearEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpensePageRequest,
			expenseDeliveryHTTP.EncodeExpenseCurrentYearResponse,
			options...,
		))
	r.Methods("GET").Path("/expenses/me/by-tag/{tagID}").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseByTagEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpenseByTagRequest,
			expenseDeliveryHTTP.EncodeExpenseByTagResponse,
			options...,
		))
	r.Methods("GET").Path("/expenses/me/monthly-summary").Handler(
		httptransport.NewServer(
			protected(expenseDeliveryHTTP.MakeExpenseMonthlySummaryEndpoint(expenseUseCase)),
			expenseDeliveryHTTP.DecodeExpenseMonthlySummaryRequest,
			expenseDeliveryHTTP.EncodeExpenseMonthlySummaryResponse,
			options...,
		))

	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if enableMetric {
		r.Handle("/metrics", promhttp.Handler())
	}

	// The gate wraps the whole router so unregistered paths are challenged
	// too, not handed the router's bare 404.
	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: authRouteMiddleware(r),
	}

	g := new(run.Group)
	{
		g.Add(func() error {
			logger.With(loggerKit.String("addr", listenAddr)).Info("server listening")
			return httpServer.ListenAndServe()
		}, func(err error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		})
	}
	{
		g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))
	}
	if err := g.Run(); err != nil {
		logger.With(loggerKit.Error(err)).Info("server shutdown")
	}
}
