package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo *echo.Echo

	paymentHandler        *PaymentHandler
	webhookHandler        *WebhookHandler
	deviceHandler         *DeviceHandler
	notificationHandler   *NotificationHandler
	reconciliationHandler *ReconciliationHandler
}

func NewServer(
	paymentHandler *PaymentHandler,
	webhookHandler *WebhookHandler,
	deviceHandler *DeviceHandler,
	notificationHandler *NotificationHandler,
	reconciliationHandler *ReconciliationHandler) *Server {

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:                  e,
		paymentHandler:        paymentHandler,
		webhookHandler:        webhookHandler,
		deviceHandler:         deviceHandler,
		notificationHandler:   notificationHandler,
		reconciliationHandler: reconciliationHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/v1")

	api.GET("/health", s.webhookHandler.HealthCheck)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/initiate", s.paymentHandler.InitiateCheckout)
	payments.GET("/esewa/callback", s.paymentHandler.EsewaCallback)
	payments.GET("/fonepay/callback", s.paymentHandler.FonepayCallback)

	// -------- order status webhook --------
	api.POST("/orders/webhook", s.webhookHandler.UpdateOrderStatus)
	api.GET("/orders/webhook", s.webhookHandler.HealthCheck)

	// -------- devices / notifications --------
	devices := api.Group("/devices")
	devices.POST("/register", s.deviceHandler.RegisterToken)
	devices.POST("/unregister", s.deviceHandler.UnregisterToken)

	notifications := api.Group("/notifications")
	notifications.GET("", s.notificationHandler.ListNotifications)
	notifications.PATCH("/:id/read", s.notificationHandler.MarkRead)

	// -------- operator reconciliation --------
	api.GET("/admin/unmaterialized-payments", s.reconciliationHandler.ListUnmaterializedPayments)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
