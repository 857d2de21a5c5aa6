package handler

import (
	"net/http"
	"strconv"

	"taskapp/internal/domain/model"
	"taskapp/internal/logging"
	"taskapp/internal/middleware"
	"taskapp/internal/usecase"
	"taskapp/internal/validator"

	"github.com/labstack/echo/v4"
)

// /account（ログイン中ユーザー自身）
type AccountHandler struct {
	uc           *usecase.AccountUsecase
	cookieSecure bool
	log          logging.Logger
}

func NewAccountHandler(uc *usecase.AccountUsecase, cookieSecure bool, log logging.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, cookieSecure: cookieSecure, log: log}
}

// groupには認証MWが付いている前提
func (h *AccountHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.get)
	g.DELETE("", h.delete)
	g.GET("/activity", h.activity)
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

type userResponse struct {
	User model.PublicUser `json:"user"`
}

type activityResponse struct {
	Activity []model.AuditLog `json:"activity"`
}

func (h *AccountHandler) get(c echo.Context) error {
	user, err := h.uc.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// パスワード確認のうえ、tokenやtaskごと削除
func (h *AccountHandler) delete(c echo.Context) error {
	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validator.ValidateDeleteAccount(req.Password); err != nil {
		return writeError(c, h.log, err)
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), req.Password); err != nil {
		return writeError(c, h.log, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}

// GET /account/activity?limit=
func (h *AccountHandler) activity(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return badRequest(c, "invalid limit")
		}
		limit = l
	}

	logs, err := h.uc.ListActivity(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, activityResponse{Activity: logs})
}
