package middleware

import (
	"context"
	"log/slog"

	"taskapp/internal/logging"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoのアクセスログをアプリのLoggerに流す。クエリ・ボディ・ヘッダは出さない
func RequestLogger(log logging.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.RequestID != "" {
				args = append(args, "request_id", v.RequestID)
			}

			ctx := c.Request().Context()
			if v.Error != nil {
				args = append(args, slog.Any("err", v.Error))
				log.Error(ctx, "request failed", args...)
				return nil
			}
			logAt(ctx, log, v.Status, args)
			return nil
		},
	})
}

func logAt(ctx context.Context, log logging.Logger, status int, args []any) {
	switch {
	case status >= 500:
		log.Error(ctx, "request", args...)
	case status >= 400:
		log.Warn(ctx, "request", args...)
	default:
		log.Info(ctx, "request", args...)
	}
}
