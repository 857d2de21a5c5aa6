package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// window内にMax回まで
type RateRule struct {
	Max     int
	Window  time.Duration
	Message string
}

var (
	LoginRateRule = RateRule{
		Max: 5, Window: 15 * time.Minute,
		Message: "Too many login attempts. Please try again later.",
	}
	RegisterRateRule = RateRule{
		Max: 10, Window: time.Hour,
		Message: "Too many registration attempts. Please try again later.",
	}
	PasswordResetRateRule = RateRule{
		Max: 3, Window: time.Hour,
		Message: "Too many password reset requests. Please try again later.",
	}
	GeneralRateRule = RateRule{
		Max: 100, Window: time.Minute,
		Message: "Too many requests. Please slow down.",
	}
)

// IPごとのトークンバケット。Maxがバースト、Window/Maxごとに1回分回復する
func RateLimit(rule RateRule) echo.MiddlewareFunc {
	if rule.Max <= 0 || rule.Window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(rule.Window / time.Duration(rule.Max)),
		Burst:     rule.Max,
		ExpiresIn: rule.Window,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorJSON("FORBIDDEN", "Unable to identify client"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorJSON("TOO_MANY_REQUESTS", rule.Message))
		},
	})
}
