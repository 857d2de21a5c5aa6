package handler

import (
	"net/http"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/logging"
	auth "taskapp/internal/usecase/auth_usecase"
	"taskapp/internal/validator"

	"github.com/labstack/echo/v4"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	authUC       *auth.AuthUsecase          // register/login/refresh/logout
	resetUC      *auth.PasswordResetUsecase // forgot/reset
	clock        auth.Clock
	cookieSecure bool
	log          logging.Logger
}

// DIコンストラクタ
func NewAuthHandler(
	authUC *auth.AuthUsecase,
	resetUC *auth.PasswordResetUsecase,
	clock auth.Clock,
	cookieSecure bool,
	log logging.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUC:       authUC,
		resetUC:      resetUC,
		clock:        clock,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

// /auth 以下のルートを登録（bearer必須のlogoutはauthMWを通す）
func (h *AuthHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc, limits AuthRateLimits) {
	g.POST("/register", h.register, orPass(limits.Register))
	g.POST("/login", h.login, orPass(limits.Login))
	g.POST("/refresh", h.refresh)
	g.POST("/logout", h.logout, authMW)
	g.POST("/forgot-password", h.forgotPassword, orPass(limits.PasswordReset))
	g.POST("/reset-password", h.resetPassword, orPass(limits.PasswordReset))
}

// nilなら素通し
func orPass(m echo.MiddlewareFunc) echo.MiddlewareFunc {
	if m == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return m
}

// ルートごとのレート制限
type AuthRateLimits struct {
	Register      echo.MiddlewareFunc
	Login         echo.MiddlewareFunc
	PasswordReset echo.MiddlewareFunc
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string           `json:"accessToken"`
	User        model.PublicUser `json:"user"`
}

// POST /auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	email, err := validator.ValidateRegister(req.Email, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	out, err := h.authUC.Register(c.Request().Context(), email, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	h.setRefreshCookie(c, out.RefreshToken, out.RefreshExpiresAt)
	return c.JSON(http.StatusCreated, sessionResponse{AccessToken: out.AccessToken, User: out.User})
}

// POST /auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	email, err := validator.ValidateLogin(req.Email, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	out, err := h.authUC.Login(c.Request().Context(), email, req.Password, req.RememberMe)
	if err != nil {
		return writeError(c, h.log, err)
	}

	h.setRefreshCookie(c, out.RefreshToken, out.RefreshExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{AccessToken: out.AccessToken, User: out.User})
}

// POST /auth/refresh（cookie優先、無ければbody）
func (h *AuthHandler) refresh(c echo.Context) error {
	plain := h.refreshTokenFrom(c)
	if plain == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "NO_REFRESH_TOKEN", Message: "Refresh token not provided"})
	}

	out, err := h.authUC.Refresh(c.Request().Context(), plain)
	if err != nil {
		//使えないcookieは消しておく
		h.clearRefreshCookie(c)
		return writeError(c, h.log, err)
	}

	h.setRefreshCookie(c, out.RefreshToken, out.RefreshExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{AccessToken: out.AccessToken, User: out.User})
}

// POST /auth/logout
func (h *AuthHandler) logout(c echo.Context) error {
	if plain := h.refreshTokenFrom(c); plain != "" {
		if err := h.authUC.Logout(c.Request().Context(), plain); err != nil {
			return writeError(c, h.log, err)
		}
	}
	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// POST /auth/forgot-password。登録有無に関わらず同じ応答
func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	email, err := validator.ValidateForgotPassword(req.Email)
	if err != nil {
		return writeError(c, h.log, err)
	}

	if err := h.resetUC.RequestReset(c.Request().Context(), email); err != nil {
		//送信失敗は応答に出さない
		h.log.Warn(c.Request().Context(), "password reset request failed", "err", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "If an account with that email exists, a password reset link has been sent.",
	})
}

// POST /auth/reset-password
func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validator.ValidateResetPassword(req.Token, req.Password); err != nil {
		return writeError(c, h.log, err)
	}

	if err := h.resetUC.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}

func (h *AuthHandler) refreshTokenFrom(c echo.Context) string {
	if ck, err := c.Cookie(refreshCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

// refresh tokenをHttpOnly cookieにセット。maxAgeはtokenの期限に合わせる
func (h *AuthHandler) setRefreshCookie(c echo.Context, plain string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(h.clock.Now()).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    plain,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   maxAge,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
