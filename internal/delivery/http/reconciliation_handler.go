package httpapi

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/labstack/echo/v4"
)

// ReconciliationHandler exposes the unmaterialized-payment log to operators.
// Rows here mean money was captured but no order exists; resolution is manual.
type ReconciliationHandler struct {
	repo   domain.UnmaterializedPaymentRepository
	secret string
}

func NewReconciliationHandler(repo domain.UnmaterializedPaymentRepository, secret string) *ReconciliationHandler {
	return &ReconciliationHandler{repo: repo, secret: secret}
}

func (h *ReconciliationHandler) ListUnmaterializedPayments(c echo.Context) error {
	secret := c.QueryParam("secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	page := parseInt32(c.QueryParam("page"), 1)
	limit := parseInt32(c.QueryParam("limit"), 20)

	logs, total, err := h.repo.GetLogs(page, limit)
	if err != nil {
		slog.Error("failed to list unmaterialized payments", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list unmaterialized payments"})
	}

	out := make([]unmaterializedPaymentResponse, len(logs))
	for i, log := range logs {
		out[i] = unmaterializedPaymentResponse{
			ID:              log.ID,
			TransactionUUID: log.TransactionUUID,
			Gateway:         string(log.Gateway),
			Amount:          log.Amount,
			SellerID:        log.SellerID,
			ErrorMessage:    log.ErrorMessage,
			CreatedAt:       log.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, unmaterializedPaymentListResponse{Payments: out, Total: total})
}
