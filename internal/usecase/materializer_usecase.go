package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	publisher "github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/kafka"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/metrics"
	paymentdto "github.com/Tengoku18/thirft-verse-sub001/internal/usecase/dto/payment"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

type MaterializerUsecase interface {
	MaterializeOrder(verified *paymentdto.VerifiedPayment) (*domain.Order, error)
}

// EventDispatcher hands an order event to the background fan-out worker.
// Enqueueing never blocks the request path.
type EventDispatcher interface {
	Dispatch(order *domain.Order, notificationType domain.NotificationType)
}

// OrderEventPublisher is the slice of the kafka publisher the usecases need.
type OrderEventPublisher interface {
	PublishOrderEvent(topic string, event publisher.OrderEvent) error
}

type DefaultMaterializerUsecase struct {
	TxnRepo    domain.TransactionRepository
	OrderRepo  domain.OrderRepository
	UnmatRepo  domain.UnmaterializedPaymentRepository
	Publisher  OrderEventPublisher
	Dispatcher EventDispatcher
	Metrics    *metrics.PaymentMetrics
	Topic      string

	codegen func() string
}

func NewDefaultMaterializerUsecase(
	txnRepo domain.TransactionRepository,
	orderRepo domain.OrderRepository,
	unmatRepo domain.UnmaterializedPaymentRepository,
	eventPublisher OrderEventPublisher,
	dispatcher EventDispatcher,
	paymentMetrics *metrics.PaymentMetrics,
	topic string) (*DefaultMaterializerUsecase, error) {

	codegen, err := nanoid.CustomASCII("0123456789ABCDEFGHJKMNPQRSTVWXYZ", 10)
	if err != nil {
		return nil, err
	}

	return &DefaultMaterializerUsecase{
		TxnRepo:    txnRepo,
		OrderRepo:  orderRepo,
		UnmatRepo:  unmatRepo,
		Publisher:  eventPublisher,
		Dispatcher: dispatcher,
		Metrics:    paymentMetrics,
		Topic:      topic,
		codegen:    codegen,
	}, nil
}

// MaterializeOrder turns one verified payment into exactly one order. The
// conditional processed-flag flip decides a single winner under concurrent
// delivery; losers return the winner's order.
func (uc *DefaultMaterializerUsecase) MaterializeOrder(verified *paymentdto.VerifiedPayment) (*domain.Order, error) {
	if verified == nil || verified.TransactionUUID == "" || len(verified.Intent.Items) == 0 {
		return nil, domain.ErrTransactionNotVerified
	}

	won, err := uc.TxnRepo.MarkProcessed(verified.TransactionUUID)
	if err != nil {
		return nil, fmt.Errorf("mark transaction processed: %w", err)
	}

	if !won {
		if uc.Metrics != nil {
			uc.Metrics.MaterializeRacesTotal.Inc()
		}
		return uc.fetchExistingOrder(verified.TransactionUUID)
	}

	order, err := uc.createOrder(verified)
	if err != nil {
		// The flag is set and the insert failed: money captured, no order.
		// Surfaced as fatal and recorded for the operator. Never retried
		// automatically, a retry past the flipped flag could double-create.
		uc.recordUnmaterialized(verified, err)
		return nil, fmt.Errorf("%w: transaction %s: %v",
			domain.ErrOrderInsertFailed, verified.TransactionUUID, err)
	}

	if uc.Metrics != nil {
		uc.Metrics.OrdersMaterializedTotal.WithLabelValues(string(verified.Gateway)).Inc()
	}
	uc.publishOrderEvent(order, verified.Gateway)
	if uc.Dispatcher != nil {
		uc.Dispatcher.Dispatch(order, domain.NotificationNewOrder)
	}

	return order, nil
}

func (uc *DefaultMaterializerUsecase) createOrder(verified *paymentdto.VerifiedPayment) (*domain.Order, error) {
	orderID := uuid.NewString()
	items := make([]domain.OrderItem, len(verified.Intent.Items))
	for i, item := range verified.Intent.Items {
		items[i] = domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    orderID,
			ProductID:  item.ProductID,
			Title:      item.Title,
			CoverImage: item.CoverImage,
			Quantity:   item.Quantity,
		}
	}

	order := &domain.Order{
		ID:              orderID,
		Code:            "TV-" + uc.codegen(),
		TransactionUUID: verified.TransactionUUID,
		Status:          domain.StatusPending,
		Amount:          verified.Amount,
		BuyerName:       verified.Intent.BuyerName,
		BuyerEmail:      verified.Intent.BuyerEmail,
		ShippingAddress: verified.Intent.ShippingAddress,
		SellerID:        verified.Intent.SellerID,
		Items:           items,
	}

	if err := uc.OrderRepo.CreateOrderWithItems(order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	promoted, err := uc.OrderRepo.UpdateOrderStatusFrom(orderID, domain.StatusPending, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("promote order to completed: %w", err)
	}
	if !promoted {
		return nil, fmt.Errorf("promote order to completed: no row updated")
	}
	order.Status = domain.StatusCompleted

	return order, nil
}

// fetchExistingOrder covers the narrow window where the race winner has
// flipped the flag but not yet committed the order row, or committed it
// pending and not yet promoted it. Keep polling past a pending read so
// every caller reports the settled status.
func (uc *DefaultMaterializerUsecase) fetchExistingOrder(transactionUUID string) (*domain.Order, error) {
	var lastOrder *domain.Order
	var lastErr error
	for attempt := 0; attempt < 4; attempt++ {
		if attempt > 0 {
			time.Sleep(150 * time.Millisecond)
		}
		order, err := uc.OrderRepo.GetOrderByTransactionUUID(transactionUUID)
		if err != nil {
			lastErr = err
			continue
		}
		if order.Status != domain.StatusPending {
			return order, nil
		}
		lastOrder = order
	}

	if lastOrder != nil {
		return lastOrder, nil
	}
	return nil, fmt.Errorf("%w: transaction %s: %v", domain.ErrOrderNotReady, transactionUUID, lastErr)
}

func (uc *DefaultMaterializerUsecase) recordUnmaterialized(verified *paymentdto.VerifiedPayment, cause error) {
	if uc.Metrics != nil {
		uc.Metrics.UnmaterializedTotal.Inc()
	}
	slog.Error("order insert failed after processed flag was set",
		"transaction_uuid", verified.TransactionUUID,
		"gateway", verified.Gateway,
		"error", cause.Error(),
	)

	if uc.UnmatRepo == nil {
		return
	}
	logErr := uc.UnmatRepo.CreateLog(&domain.UnmaterializedPayment{
		ID:              uuid.NewString(),
		TransactionUUID: verified.TransactionUUID,
		Gateway:         verified.Gateway,
		Amount:          verified.Amount,
		SellerID:        verified.Intent.SellerID,
		ErrorMessage:    cause.Error(),
	})
	if logErr != nil {
		slog.Error("failed to record unmaterialized payment",
			"transaction_uuid", verified.TransactionUUID,
			"error", logErr.Error(),
		)
	}
}

func (uc *DefaultMaterializerUsecase) publishOrderEvent(order *domain.Order, gw domain.Gateway) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrderEvent(uc.Topic, event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "materialize", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:         order.ID,
		OrderCode:       order.Code,
		SellerID:        order.SellerID,
		TransactionUUID: order.TransactionUUID,
		Status:          string(order.Status),
		Amount:          order.Amount,
		Gateway:         string(gw),
	})
}
