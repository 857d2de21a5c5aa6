package server

import (
	"taskapp/internal/handler"
	"taskapp/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, deps Deps, rules RateRules) {
	api := e.Group("/api", middleware.RateLimit(rules.General))
	api.GET("/health", handler.Health)

	//認証必須（削除済みユーザーも弾く）
	authMW := chain(middleware.AuthJWT(deps.Verifier), middleware.ActiveUserGuard(deps.Users))

	deps.Auth.RegisterRoutes(api.Group("/auth"), authMW, handler.AuthRateLimits{
		Register:      middleware.RateLimit(rules.Register),
		Login:         middleware.RateLimit(rules.Login),
		PasswordReset: middleware.RateLimit(rules.PasswordReset),
	})
	deps.Account.RegisterRoutes(api.Group("/account", authMW))
	deps.Tasks.RegisterRoutes(api.Group("/tasks", authMW))
}

// 左から順に適用する
func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
