package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/usecase"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notifications usecase.NotificationUsecase
}

func NewNotificationHandler(notifications usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "user_id is required"})
	}

	page := parseInt32(c.QueryParam("page"), 1)
	limit := parseInt32(c.QueryParam("limit"), 20)

	notifications, total, err := h.notifications.GetUserNotifications(userID, page, limit)
	if err != nil {
		slog.Error("failed to list notifications", "user_id", userID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list notifications"})
	}

	out := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = notificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Body:      n.Body,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, notificationListResponse{Notifications: out, Total: total})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID := c.Param("id")
	if notificationID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "notification id is required"})
	}

	if err := h.notifications.MarkRead(notificationID); err != nil {
		slog.Error("failed to mark notification read", "notification_id", notificationID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to mark notification read"})
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func parseInt32(s string, def int32) int32 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 1 {
		return def
	}
	return int32(v)
}
