package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms-backend/internal/adapter/middleware"
	"lms-backend/internal/usecase/notification"
)

type NotificationHandler struct{ uc *notification.Usecase }

func NewNotificationHandler(uc *notification.Usecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) ListMine(c echo.Context) error {
	unreadOnly := c.QueryParam("unread") == "true"
	notifs, err := h.uc.ListMine(c.Request().Context(), middleware.ActorID(c), unreadOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, notifs)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	err := h.uc.MarkRead(c.Request().Context(), middleware.ActorID(c), c.Param("notification_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
