package app

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadp "safeguard-backend/internal/adapter/http"
	mw "safeguard-backend/internal/adapter/middleware"
	"safeguard-backend/internal/config"
	"safeguard-backend/internal/domain/user"
	"safeguard-backend/internal/infrastructure/cache"
	"safeguard-backend/internal/infrastructure/chain"
	"safeguard-backend/internal/infrastructure/events"
	"safeguard-backend/internal/infrastructure/ipfs"
	applog "safeguard-backend/internal/logger"
	claimuc "safeguard-backend/internal/usecase/claim"
	contractuc "safeguard-backend/internal/usecase/contract"
	optionuc "safeguard-backend/internal/usecase/option"
	policyuc "safeguard-backend/internal/usecase/policy"
	tokenuc "safeguard-backend/internal/usecase/token"
	useruc "safeguard-backend/internal/usecase/user"
)

// OpenRedis returns nil when REDIS_ADDR is empty or the server does not
// answer; the API then runs without idempotency, token caching and events.
func OpenRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		applog.CtxWarn(ctx, "redis not configured")
		return nil
	}
	rdb, err := cache.OpenRedis(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err != nil {
		applog.CtxWarn(ctx, "redis unavailable, continuing without it", zap.Error(err))
		return nil
	}
	return rdb
}

// Deps are the optional services behind the API. Nil Redis or Chain
// disables the features they back.
type Deps struct {
	Redis *redis.Client
	Docs  ipfs.Store
	Chain *chain.ERC20Reader
}

// API is the assembled HTTP surface plus the usecase the server runs in
// the background.
type API struct {
	Router   *httpadp.Router
	Policies *policyuc.Usecase
}

func NewAPI(cfg *config.Config, st *Store, d Deps) *API {
	if d.Docs == nil {
		d.Docs = ipfs.Disabled{}
	}
	var (
		publisher  claimuc.Publisher = events.Nop{}
		tokenCache tokenuc.Cache
		tokenMeta  tokenuc.MetadataReader
	)
	checks := map[string]httpadp.Check{"store": st.Ping}
	if d.Redis != nil {
		rdb := d.Redis
		publisher = events.NewRedisPublisher(rdb)
		tokenCache = cache.NewTokenCache(rdb, cfg.TokenCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if d.Chain != nil {
		tokenMeta = d.Chain
	}

	policies := policyuc.NewUsecase(st.Policies, st.UoW, d.Docs)
	users := useruc.NewUsecase(st.Users, cfg.AdminAddresses)

	router := &httpadp.Router{
		Health:    httpadp.NewHandler(checks),
		Policies:  httpadp.NewPolicyHandler(policies),
		Claims:    httpadp.NewClaimHandler(claimuc.NewUsecase(st.Claims, st.UoW, d.Docs, publisher)),
		Options:   httpadp.NewOptionHandler(optionuc.NewUsecase(st.Options)),
		Tokens:    httpadp.NewTokenHandler(tokenuc.NewUsecase(st.Tokens, tokenCache, tokenMeta)),
		Contracts: httpadp.NewContractHandler(contractuc.NewUsecase(cfg.Contracts)),
		Users:     httpadp.NewUserHandler(users),
		Admin:     mw.RequireRole(users, user.RoleAdmin),
	}
	if d.Redis != nil {
		router.Idempotency = mw.IdempotencyMiddleware(d.Redis, time.Duration(cfg.IdempTTLSecs)*time.Second)
	} else {
		applog.Warn("idempotency checks disabled")
	}
	if cfg.RequireReviewerRole {
		router.Reviewer = mw.RequireRole(users, user.RoleVerifier)
	}
	return &API{Router: router, Policies: policies}
}

// Echo builds the server with the shared middleware chain.
func (a *API) Echo(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), mw.RequestID())
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}
	a.Router.Register(e)
	return e
}
