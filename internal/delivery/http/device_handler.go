package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/usecase"
	"github.com/labstack/echo/v4"
)

type DeviceHandler struct {
	registry usecase.TokenRegistryUsecase
}

func NewDeviceHandler(registry usecase.TokenRegistryUsecase) *DeviceHandler {
	return &DeviceHandler{registry: registry}
}

// RegisterToken is called on login or app foregrounding. Registering a token
// that is already present is a no-op by design.
func (h *DeviceHandler) RegisterToken(c echo.Context) error {
	var req deviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.registry.RegisterToken(req.UserID, req.Token); err != nil {
		if errors.Is(err, domain.ErrMissingData) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		slog.Error("failed to register push token", "user_id", req.UserID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to register token"})
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// UnregisterToken is called on logout and removes only this device's token.
func (h *DeviceHandler) UnregisterToken(c echo.Context) error {
	var req deviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.registry.UnregisterToken(req.UserID, req.Token); err != nil {
		if errors.Is(err, domain.ErrMissingData) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		slog.Error("failed to unregister push token", "user_id", req.UserID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to unregister token"})
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}
