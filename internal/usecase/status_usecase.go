package usecase

import (
	"fmt"
	"log/slog"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	publisher "github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/kafka"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/metrics"
)

type OrderStatusUsecase interface {
	// ApplyStatusTransition moves an existing order along the status DAG.
	// The returned flag reports whether a row actually changed, re-applying
	// the order's current status is a success no-op.
	ApplyStatusTransition(orderID string, target domain.OrderStatus) (*domain.Order, bool, error)
	GetOrderByID(orderID string) (*domain.Order, error)
}

type DefaultOrderStatusUsecase struct {
	OrderRepo  domain.OrderRepository
	Publisher  OrderEventPublisher
	Dispatcher EventDispatcher
	Metrics    *metrics.PaymentMetrics
	Topic      string
}

func NewDefaultOrderStatusUsecase(
	orderRepo domain.OrderRepository,
	eventPublisher OrderEventPublisher,
	dispatcher EventDispatcher,
	paymentMetrics *metrics.PaymentMetrics,
	topic string) *DefaultOrderStatusUsecase {

	return &DefaultOrderStatusUsecase{
		OrderRepo:  orderRepo,
		Publisher:  eventPublisher,
		Dispatcher: dispatcher,
		Metrics:    paymentMetrics,
		Topic:      topic,
	}
}

func (uc *DefaultOrderStatusUsecase) GetOrderByID(orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(orderID)
}

func (uc *DefaultOrderStatusUsecase) ApplyStatusTransition(orderID string, target domain.OrderStatus) (*domain.Order, bool, error) {
	if !target.Valid() {
		return nil, false, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, target)
	}

	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		uc.countTransition(target, "error")
		return nil, false, err
	}

	// Duplicate webhook delivery lands here: the status is already what the
	// caller wants, so nothing to do and nothing to report as a failure.
	if order.Status == target {
		uc.countTransition(target, "noop")
		return order, false, nil
	}

	if !domain.CanTransition(order.Status, target) {
		uc.countTransition(target, "rejected")
		return nil, false, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, target)
	}

	changed, err := uc.OrderRepo.UpdateOrderStatusFrom(orderID, order.Status, target)
	if err != nil {
		uc.countTransition(target, "error")
		return nil, false, fmt.Errorf("update order status: %w", err)
	}
	if !changed {
		// Lost a race against another transition. Re-read and decide whether
		// the winner already applied the same status.
		order, err = uc.OrderRepo.GetOrderByID(orderID)
		if err != nil {
			uc.countTransition(target, "error")
			return nil, false, err
		}
		if order.Status == target {
			uc.countTransition(target, "noop")
			return order, false, nil
		}
		uc.countTransition(target, "rejected")
		return nil, false, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, target)
	}

	order.Status = target
	uc.countTransition(target, "ok")
	uc.publishOrderEvent(order)

	// Fan-out is a committed-state follow-up: its failure is the worker's
	// problem, never the webhook caller's.
	if uc.Dispatcher != nil {
		uc.Dispatcher.Dispatch(order, notificationTypeFor(target))
	}

	return order, true, nil
}

func notificationTypeFor(status domain.OrderStatus) domain.NotificationType {
	switch status {
	case domain.StatusRefunded:
		return domain.NotificationOrderRefunded
	case domain.StatusCancelled:
		return domain.NotificationOrderCancelled
	}
	return domain.NotificationNewOrder
}

func (uc *DefaultOrderStatusUsecase) countTransition(target domain.OrderStatus, result string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.WebhookTransitionsTotal.WithLabelValues(string(target), result).Inc()
}

func (uc *DefaultOrderStatusUsecase) publishOrderEvent(order *domain.Order) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrderEvent(uc.Topic, event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "status-transition", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:         order.ID,
		OrderCode:       order.Code,
		SellerID:        order.SellerID,
		TransactionUUID: order.TransactionUUID,
		Status:          string(order.Status),
		Amount:          order.Amount,
	})
}
