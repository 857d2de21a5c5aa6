package middleware

import (
	"net/http"
	"strings"

	"taskapp/internal/domain/model"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // string
	CtxEmailKey  = "email"   // string
)

// アクセストークンを検証する約束（security.JWTCodec）
type AccessTokenVerifier interface {
	Verify(raw string) (model.AccessClaims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(verifier AccessTokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Bearer形式か確認してtokenを抜く
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED", "Authentication required"))
			}
			rawToken := strings.TrimSpace(authz[7:])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED", "Authentication required"))
			}

			//署名と期限を検証する
			claims, err := verifier.Verify(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("INVALID_TOKEN", "Invalid or expired token"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxEmailKey, claims.Email)

			return next(c)
		}
	}
}

// AuthJWTが入れたuser_idを取り出す
func UserID(c echo.Context) string {
	id, _ := c.Get(CtxUserIDKey).(string)
	return id
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorJSON(code string, msg string) errorResponse {
	return errorResponse{Error: code, Message: msg}
}
