package usecase

import (
	"context"
	"sync"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	publisher "github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/kafka"
)

type fakeTransactionRepo struct {
	CreateTransactionFunc    func(tx *domain.PaymentTransaction) error
	GetTransactionByUUIDFunc func(transactionUUID string) (*domain.PaymentTransaction, error)
	MarkProcessedFunc        func(transactionUUID string) (bool, error)
}

func (f *fakeTransactionRepo) CreateTransaction(tx *domain.PaymentTransaction) error {
	if f.CreateTransactionFunc != nil {
		return f.CreateTransactionFunc(tx)
	}
	return nil
}

func (f *fakeTransactionRepo) GetTransactionByUUID(transactionUUID string) (*domain.PaymentTransaction, error) {
	if f.GetTransactionByUUIDFunc != nil {
		return f.GetTransactionByUUIDFunc(transactionUUID)
	}
	return nil, domain.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) MarkProcessed(transactionUUID string) (bool, error) {
	if f.MarkProcessedFunc != nil {
		return f.MarkProcessedFunc(transactionUUID)
	}
	return true, nil
}

type fakeOrderRepo struct {
	CreateOrderWithItemsFunc      func(order *domain.Order) error
	GetOrderByIDFunc              func(orderID string) (*domain.Order, error)
	GetOrderByTransactionUUIDFunc func(transactionUUID string) (*domain.Order, error)
	UpdateOrderStatusFromFunc     func(orderID string, from, to domain.OrderStatus) (bool, error)
}

func (f *fakeOrderRepo) CreateOrderWithItems(order *domain.Order) error {
	if f.CreateOrderWithItemsFunc != nil {
		return f.CreateOrderWithItemsFunc(order)
	}
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	if f.GetOrderByIDFunc != nil {
		return f.GetOrderByIDFunc(orderID)
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetOrderByTransactionUUID(transactionUUID string) (*domain.Order, error) {
	if f.GetOrderByTransactionUUIDFunc != nil {
		return f.GetOrderByTransactionUUIDFunc(transactionUUID)
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeOrderRepo) UpdateOrderStatusFrom(orderID string, from, to domain.OrderStatus) (bool, error) {
	if f.UpdateOrderStatusFromFunc != nil {
		return f.UpdateOrderStatusFromFunc(orderID, from, to)
	}
	return true, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*domain.Notification

	CreateNotificationFunc func(n *domain.Notification) error
}

func (f *fakeNotificationRepo) CreateNotification(n *domain.Notification) error {
	if f.CreateNotificationFunc != nil {
		return f.CreateNotificationFunc(n)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetUserNotifications(userID string, page, limit int32) ([]*domain.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkRead(notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.created {
		if n.ID == notificationID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) all() []*domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Notification(nil), f.created...)
}

type fakeProfileRepo struct {
	GetProfileFunc      func(userID string) (*domain.SellerProfile, error)
	AddPushTokenFunc    func(userID, token string) error
	RemovePushTokenFunc func(userID, token string) error
}

func (f *fakeProfileRepo) GetProfile(userID string) (*domain.SellerProfile, error) {
	if f.GetProfileFunc != nil {
		return f.GetProfileFunc(userID)
	}
	return &domain.SellerProfile{UserID: userID}, nil
}

func (f *fakeProfileRepo) AddPushToken(userID, token string) error {
	if f.AddPushTokenFunc != nil {
		return f.AddPushTokenFunc(userID, token)
	}
	return nil
}

func (f *fakeProfileRepo) RemovePushToken(userID, token string) error {
	if f.RemovePushTokenFunc != nil {
		return f.RemovePushTokenFunc(userID, token)
	}
	return nil
}

type fakeUnmaterializedRepo struct {
	mu   sync.Mutex
	logs []*domain.UnmaterializedPayment
}

func (f *fakeUnmaterializedRepo) CreateLog(log *domain.UnmaterializedPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeUnmaterializedRepo) GetLogs(page, limit int32) ([]*domain.UnmaterializedPayment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.UnmaterializedPayment(nil), f.logs...), int64(len(f.logs)), nil
}

type fakePushSender struct {
	mu    sync.Mutex
	sent  []*domain.PushMessage
	calls int

	SendBatchFunc func(ctx context.Context, msg *domain.PushMessage) ([]domain.PushTicket, error)
}

func (f *fakePushSender) SendBatch(ctx context.Context, msg *domain.PushMessage) ([]domain.PushTicket, error) {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.calls++
	f.mu.Unlock()
	if f.SendBatchFunc != nil {
		return f.SendBatchFunc(ctx, msg)
	}
	tickets := make([]domain.PushTicket, len(msg.Tokens))
	for i, token := range msg.Tokens {
		tickets[i] = domain.PushTicket{Token: token, OK: true}
	}
	return tickets, nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	orders []*domain.Order
	types  []domain.NotificationType
}

func (f *fakeDispatcher) Dispatch(order *domain.Order, notificationType domain.NotificationType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	f.types = append(f.types, notificationType)
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []publisher.OrderEvent
}

func (f *fakeEventPublisher) PublishOrderEvent(topic string, event publisher.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}
