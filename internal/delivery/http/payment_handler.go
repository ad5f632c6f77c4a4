package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Tengoku18/thirft-verse-sub001/internal/config"
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/usecase"
	paymentdto "github.com/Tengoku18/thirft-verse-sub001/internal/usecase/dto/payment"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	checkout     usecase.CheckoutUsecase
	verification usecase.VerificationUsecase
	materializer usecase.MaterializerUsecase
	redirect     config.RedirectPages
}

func NewPaymentHandler(
	checkout usecase.CheckoutUsecase,
	verification usecase.VerificationUsecase,
	materializer usecase.MaterializerUsecase,
	redirect config.RedirectPages) *PaymentHandler {

	return &PaymentHandler{
		checkout:     checkout,
		verification: verification,
		materializer: materializer,
		redirect:     redirect,
	}
}

func (h *PaymentHandler) InitiateCheckout(c echo.Context) error {
	var req initiateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	gw := domain.Gateway(req.Gateway)
	if gw != domain.GatewayEsewa && gw != domain.GatewayFonepay {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unsupported gateway"})
	}

	items := make([]paymentdto.CheckoutItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = paymentdto.CheckoutItem{
			ProductID:  item.ProductID,
			Title:      item.Title,
			CoverImage: item.CoverImage,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	out, err := h.checkout.InitiateCheckout(&paymentdto.InitiateCheckoutInput{
		Gateway:         gw,
		SellerID:        req.SellerID,
		BuyerName:       req.BuyerName,
		BuyerEmail:      req.BuyerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingData) || errors.Is(err, domain.ErrMalformedPayload) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		slog.Error("checkout initiation failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "checkout initiation failed"})
	}

	return c.JSON(http.StatusOK, initiateCheckoutResponse{
		TransactionUUID: out.TransactionUUID,
		Gateway:         string(out.Gateway),
		GatewayParams:   out.GatewayParams,
	})
}

// EsewaCallback handles the gateway's success redirect: verify the base64
// confirmation blob, materialize the order, send the buyer to the right page.
func (h *PaymentHandler) EsewaCallback(c echo.Context) error {
	data := c.QueryParam("data")

	verified, err := h.verification.VerifyEsewaCallback(data)
	if err != nil {
		return h.redirectFailure(c, err)
	}

	return h.materializeAndRedirect(c, verified)
}

func (h *PaymentHandler) FonepayCallback(c echo.Context) error {
	params := &paymentdto.FonepayCallbackParams{
		PRN:  c.QueryParam("PRN"),
		PID:  c.QueryParam("PID"),
		PS:   c.QueryParam("PS"),
		RC:   c.QueryParam("RC"),
		UID:  c.QueryParam("UID"),
		BC:   c.QueryParam("BC"),
		INI:  c.QueryParam("INI"),
		PAmt: c.QueryParam("P_AMT"),
		RAmt: c.QueryParam("R_AMT"),
		DV:   c.QueryParam("DV"),
	}

	verified, err := h.verification.VerifyFonepayCallback(params)
	if err != nil {
		return h.redirectFailure(c, err)
	}

	return h.materializeAndRedirect(c, verified)
}

func (h *PaymentHandler) materializeAndRedirect(c echo.Context, verified *paymentdto.VerifiedPayment) error {
	order, err := h.materializer.MaterializeOrder(verified)
	if err != nil {
		// ErrOrderInsertFailed is already logged with the transaction id by
		// the materializer; the buyer only sees a generic failure page.
		return h.redirectFailure(c, err)
	}

	target := fmt.Sprintf("%s?order_code=%s", h.redirect.SuccessURL, url.QueryEscape(order.Code))
	return c.Redirect(http.StatusFound, target)
}

func (h *PaymentHandler) redirectFailure(c echo.Context, cause error) error {
	target := fmt.Sprintf("%s?reason=%s", h.redirect.FailureURL, reasonCode(cause))
	return c.Redirect(http.StatusFound, target)
}

// reasonCode maps a pipeline failure onto the machine-readable code the
// failure page understands. Internal identifiers and secrets never leak
// into the redirect.
func reasonCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingData):
		return "missing_data"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "invalid_data"
	case errors.Is(err, domain.ErrMissingSignature):
		return "missing_signature"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrAmountMismatch):
		return "amount_mismatch"
	case errors.Is(err, domain.ErrPaymentIncomplete):
		return "payment_failed"
	default:
		return "order_failed"
	}
}
