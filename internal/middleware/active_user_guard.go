package middleware

import (
	"net/http"

	"taskapp/internal/repository"

	"github.com/labstack/echo/v4"
)

// 削除済みユーザーのアクセストークン（期限内）を弾く。AuthJWTの後ろに置く
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := UserID(c)
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED", "Authentication required"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("INVALID_TOKEN", "Invalid or expired token"))
			}

			return next(c)
		}
	}
}
