package httpapi

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/usecase"
	"github.com/labstack/echo/v4"
)

// WebhookHandler is the ingest point for delivery-partner and gateway status
// callbacks. Its contract to the caller is "status was updated", nothing
// about notifications.
type WebhookHandler struct {
	status usecase.OrderStatusUsecase
	secret string
}

func NewWebhookHandler(status usecase.OrderStatusUsecase, secret string) *WebhookHandler {
	return &WebhookHandler{
		status: status,
		secret: secret,
	}
}

func (h *WebhookHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) UpdateOrderStatus(c echo.Context) error {
	secret := c.QueryParam("secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		slog.Warn("order webhook rejected: bad secret", "remote", c.RealIP())
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	var req orderWebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.OrderID == "" || req.Status == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "order_id and status are required"})
	}

	target := domain.OrderStatus(req.Status)
	if !domain.WebhookStatuses[target] {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "status must be cancelled or refunded"})
	}

	_, changed, err := h.status.ApplyStatusTransition(req.OrderID, target)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			slog.Error("order webhook storage failure", "order_id", req.OrderID, "error", err.Error())
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to update order"})
		}
	}

	if !changed {
		slog.Info("order webhook no-op: status already applied", "order_id", req.OrderID, "status", req.Status)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}
