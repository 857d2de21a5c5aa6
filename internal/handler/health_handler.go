package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// GET /health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
