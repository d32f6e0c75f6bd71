package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "lms-backend"

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health reports liveness. Timestamps are UTC RFC3339Nano, same as the
// rest of the API.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": serviceName,
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
