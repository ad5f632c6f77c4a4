package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusUsecase struct {
	ApplyStatusTransitionFunc func(orderID string, target domain.OrderStatus) (*domain.Order, bool, error)
	GetOrderByIDFunc          func(orderID string) (*domain.Order, error)
}

func (f *fakeStatusUsecase) ApplyStatusTransition(orderID string, target domain.OrderStatus) (*domain.Order, bool, error) {
	if f.ApplyStatusTransitionFunc != nil {
		return f.ApplyStatusTransitionFunc(orderID, target)
	}
	return &domain.Order{ID: orderID, Status: target}, true, nil
}

func (f *fakeStatusUsecase) GetOrderByID(orderID string) (*domain.Order, error) {
	if f.GetOrderByIDFunc != nil {
		return f.GetOrderByIDFunc(orderID)
	}
	return nil, domain.ErrOrderNotFound
}

func postWebhook(t *testing.T, handler *WebhookHandler, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	target := "/api/v1/orders/webhook"
	if secret != "" {
		target += "?secret=" + secret
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.UpdateOrderStatus(e.NewContext(req, rec)))
	return rec
}

func TestWebhookHealthCheck(t *testing.T) {
	handler := NewWebhookHandler(&fakeStatusUsecase{}, "topsecret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/webhook", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.HealthCheck(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	var applied bool
	handler := NewWebhookHandler(&fakeStatusUsecase{
		ApplyStatusTransitionFunc: func(string, domain.OrderStatus) (*domain.Order, bool, error) {
			applied = true
			return nil, false, nil
		},
	}, "topsecret")

	for _, secret := range []string{"", "wrong", "topsecret2"} {
		rec := postWebhook(t, handler, secret, `{"order_id":"order-1","status":"cancelled"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.False(t, applied)
}

func TestWebhookRejectsWhenNoSecretConfigured(t *testing.T) {
	// an unset secret must not become an always-open endpoint
	handler := NewWebhookHandler(&fakeStatusUsecase{}, "")

	rec := postWebhook(t, handler, "", `{"order_id":"order-1","status":"cancelled"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsMalformedRequests(t *testing.T) {
	handler := NewWebhookHandler(&fakeStatusUsecase{}, "topsecret")

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"order_id": `},
		{name: "missing order id", body: `{"status":"cancelled"}`},
		{name: "missing status", body: `{"order_id":"order-1"}`},
		{name: "status outside whitelist", body: `{"order_id":"order-1","status":"completed"}`},
		{name: "unknown status", body: `{"order_id":"order-1","status":"shipped"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postWebhook(t, handler, "topsecret", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestWebhookAppliesTransition(t *testing.T) {
	var gotOrderID string
	var gotTarget domain.OrderStatus
	handler := NewWebhookHandler(&fakeStatusUsecase{
		ApplyStatusTransitionFunc: func(orderID string, target domain.OrderStatus) (*domain.Order, bool, error) {
			gotOrderID, gotTarget = orderID, target
			return &domain.Order{ID: orderID, Status: target}, true, nil
		},
	}, "topsecret")

	rec := postWebhook(t, handler, "topsecret", `{"order_id":"order-1","status":"refunded"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "order-1", gotOrderID)
	assert.Equal(t, domain.StatusRefunded, gotTarget)
}

func TestWebhookDuplicateDeliveryIsSuccess(t *testing.T) {
	handler := NewWebhookHandler(&fakeStatusUsecase{
		ApplyStatusTransitionFunc: func(orderID string, target domain.OrderStatus) (*domain.Order, bool, error) {
			return &domain.Order{ID: orderID, Status: target}, false, nil
		},
	}, "topsecret")

	rec := postWebhook(t, handler, "topsecret", `{"order_id":"order-1","status":"cancelled"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWebhookErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "order not found", err: domain.ErrOrderNotFound, wantCode: http.StatusNotFound},
		{name: "illegal transition", err: domain.ErrInvalidTransition, wantCode: http.StatusBadRequest},
		{name: "invalid status", err: domain.ErrInvalidStatus, wantCode: http.StatusBadRequest},
		{name: "storage failure", err: errors.New("connection refused"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewWebhookHandler(&fakeStatusUsecase{
				ApplyStatusTransitionFunc: func(string, domain.OrderStatus) (*domain.Order, bool, error) {
					return nil, false, tt.err
				},
			}, "topsecret")

			rec := postWebhook(t, handler, "topsecret", `{"order_id":"order-1","status":"cancelled"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
