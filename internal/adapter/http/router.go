package http

import "github.com/labstack/echo/v4"

// Router groups the handlers and the per-route middleware of the API.
type Router struct {
	Health    *Handler
	Policies  *PolicyHandler
	Claims    *ClaimHandler
	Options   *OptionHandler
	Tokens    *TokenHandler
	Contracts *ContractHandler
	Users     *UserHandler

	// Optional; nil entries are skipped.
	Idempotency echo.MiddlewareFunc
	Reviewer    echo.MiddlewareFunc
	Admin       echo.MiddlewareFunc
}

func (r *Router) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)

	api := e.Group("/api")

	policies := api.Group("/policies", r.use(r.Idempotency)...)
	policies.GET("", r.Policies.ListPolicies)
	policies.POST("", r.Policies.CreatePolicy)
	policies.GET("/:id", r.Policies.GetPolicy)
	policies.GET("/:id/document", r.Policies.GetPolicyDocument)

	claims := api.Group("/claims", r.use(r.Idempotency)...)
	claims.GET("", r.Claims.ListClaims)
	claims.POST("", r.Claims.CreateClaim)
	claims.GET("/:id", r.Claims.GetClaim)
	claims.POST("/:id/review", r.Claims.ReviewClaim, r.use(r.Reviewer)...)
	claims.POST("/:id/pay", r.Claims.PayClaim, r.use(r.Reviewer)...)

	api.GET("/insurance-options", r.Options.ListOptions)
	api.POST("/insurance-options", r.Options.CreateOption)
	api.GET("/insurance-options/:id", r.Options.GetOption)
	api.GET("/insurance-options/:id/quote", r.Options.QuoteOption)

	api.GET("/tokens", r.Tokens.ListTokens)
	api.POST("/tokens", r.Tokens.CreateToken)
	api.GET("/tokens/:identifier", r.Tokens.GetToken)

	api.GET("/contracts", r.Contracts.ReadContract)
	api.POST("/contracts", r.Contracts.WriteContract)

	api.GET("/users/:address", r.Users.GetUser)
	api.PUT("/users/:address/roles", r.Users.SetRoles, r.use(r.Admin)...)
}

func (r *Router) use(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
