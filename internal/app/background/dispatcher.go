package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/metrics"
	"github.com/Tengoku18/thirft-verse-sub001/internal/usecase"
)

type orderEventTask struct {
	Order            *domain.Order
	NotificationType domain.NotificationType
}

// NotificationDispatcher decouples notification fan-out from the request
// that committed the state change. The webhook answers as soon as the status
// write commits; fan-out runs here with its own error channel (the log).
type NotificationDispatcher struct {
	notifier usecase.NotificationUsecase
	metrics  *metrics.PaymentMetrics
	tasks    chan orderEventTask
}

func NewNotificationDispatcher(notifier usecase.NotificationUsecase, queueSize int, paymentMetrics *metrics.PaymentMetrics) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &NotificationDispatcher{
		notifier: notifier,
		metrics:  paymentMetrics,
		tasks:    make(chan orderEventTask, queueSize),
	}
}

// Dispatch enqueues without blocking. A full queue drops the push/in-app
// fan-out for that event and logs it; it never stalls the caller.
func (d *NotificationDispatcher) Dispatch(order *domain.Order, notificationType domain.NotificationType) {
	select {
	case d.tasks <- orderEventTask{Order: order, NotificationType: notificationType}:
	default:
		if d.metrics != nil {
			d.metrics.NotificationsDroppedTotal.Inc()
		}
		slog.Error("notification queue full, dropping order event",
			"order_id", order.ID,
			"type", notificationType,
		)
	}
}

// Run consumes tasks until ctx is cancelled. Meant to be started from main
// as a goroutine.
func (d *NotificationDispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-d.tasks:
			taskCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := d.notifier.NotifyOrderEvent(taskCtx, task.Order, task.NotificationType); err != nil {
				slog.Error("notification fan-out failed",
					"order_id", task.Order.ID,
					"type", task.NotificationType,
					"error", err.Error(),
				)
			}
			cancel()
		}
	}
}
