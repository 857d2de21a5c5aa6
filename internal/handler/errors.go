package handler

import (
	"errors"
	"net/http"

	"taskapp/internal/logging"
	"taskapp/internal/usecase"
	auth "taskapp/internal/usecase/auth_usecase"
	"taskapp/internal/validator"

	"github.com/labstack/echo/v4"
)

// エラーレスポンスの共通形
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type httpError struct {
	status int
	code   string
	msg    string
}

// usecaseのエラーをHTTPへ変換する
func toHTTPError(err error) httpError {
	var ve *validator.ValidationError
	switch {
	case errors.As(err, &ve):
		return httpError{http.StatusBadRequest, "VALIDATION_ERROR", ve.Error()}
	case errors.Is(err, auth.ErrValidation):
		return httpError{http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request"}
	case errors.Is(err, auth.ErrConflict):
		return httpError{http.StatusConflict, "EMAIL_EXISTS", "Email already registered"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return httpError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		return httpError{http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid or expired refresh token"}
	case errors.Is(err, auth.ErrUserNotFound):
		return httpError{http.StatusUnauthorized, "USER_NOT_FOUND", "User not found"}
	case errors.Is(err, auth.ErrInvalidToken):
		return httpError{http.StatusBadRequest, "INVALID_TOKEN", "Invalid or expired reset token"}
	case errors.Is(err, usecase.ErrTaskNotFound):
		return httpError{http.StatusNotFound, "TASK_NOT_FOUND", "Task not found"}
	case errors.Is(err, usecase.ErrAccountNotFound):
		return httpError{http.StatusNotFound, "USER_NOT_FOUND", "User not found"}
	case errors.Is(err, usecase.ErrInvalidPassword):
		return httpError{http.StatusUnauthorized, "INVALID_PASSWORD", "Invalid password"}
	}
	//500
	return httpError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}
}

func writeError(c echo.Context, log logging.Logger, err error) error {
	if err == nil {
		return nil
	}
	he := toHTTPError(err)
	if he.status >= http.StatusInternalServerError {
		log.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"err", err,
		)
	}
	return c.JSON(he.status, ErrorResponse{Error: he.code, Message: he.msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: msg})
}
