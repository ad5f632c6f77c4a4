package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the whole verification/materialization pipeline.
type PaymentMetrics struct {
	PaymentsVerifiedTotal     prometheus.CounterVec
	VerificationDuration      prometheus.HistogramVec
	OrdersMaterializedTotal   prometheus.CounterVec
	MaterializeRacesTotal     prometheus.Counter
	UnmaterializedTotal       prometheus.Counter
	WebhookTransitionsTotal   prometheus.CounterVec
	NotificationsTotal        prometheus.CounterVec
	NotificationsDroppedTotal prometheus.Counter
	PushDeliveriesTotal       prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsVerifiedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_verified_total",
				Help: "Payment confirmation verification attempts by gateway and result",
			},
			[]string{"gateway", "result"},
		),

		VerificationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_verification_duration_seconds",
				Help:    "Time spent verifying one payment confirmation",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"gateway"},
		),

		OrdersMaterializedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_materialized_total",
				Help: "Orders created from verified payments",
			},
			[]string{"gateway"},
		),

		MaterializeRacesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_materialize_races_total",
				Help: "Materialization attempts that lost the processed-flag race",
			},
		),

		UnmaterializedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_unmaterialized_total",
				Help: "Payments whose order insert failed after the processed flag was set; requires operator reconciliation",
			},
		),

		WebhookTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_webhook_transitions_total",
				Help: "Webhook status transition attempts by target status and result",
			},
			[]string{"status", "result"},
		),

		NotificationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_created_total",
				Help: "In-app notification rows created by type",
			},
			[]string{"type"},
		),

		NotificationsDroppedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_dropped_total",
				Help: "Order events dropped because the notification queue was full",
			},
		),

		PushDeliveriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "push_deliveries_total",
				Help: "Per-token push delivery outcomes",
			},
			[]string{"result"},
		),
	}
}
