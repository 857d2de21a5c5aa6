package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskapp/internal/config"
	"taskapp/internal/handler"
	"taskapp/internal/logging"
	"taskapp/internal/middleware"
	"taskapp/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// サーバーが必要とする部品
type Deps struct {
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Tasks    *handler.TaskHandler
	Verifier middleware.AccessTokenVerifier
	Users    repository.UserRepository
}

// ルールごとのレート制限。ゼロ値は無効
type RateRules struct {
	General       middleware.RateRule
	Login         middleware.RateRule
	Register      middleware.RateRule
	PasswordReset middleware.RateRule
}

func DefaultRateRules() RateRules {
	return RateRules{
		General:       middleware.GeneralRateRule,
		Login:         middleware.LoginRateRule,
		Register:      middleware.RegisterRateRule,
		PasswordReset: middleware.PasswordResetRateRule,
	}
}

// echoを組み立てる
func New(cfg config.Config, deps Deps, rules RateRules, log logging.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, deps, rules)
	return e
}

// Startはctxがキャンセルされるまで待ち受け、その後graceful shutdownする
func Start(ctx context.Context, e *echo.Echo, addr string, log logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
