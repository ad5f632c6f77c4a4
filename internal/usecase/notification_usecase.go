package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

type NotificationUsecase interface {
	NotifyOrderEvent(ctx context.Context, order *domain.Order, notificationType domain.NotificationType) error
	GetUserNotifications(userID string, page, limit int32) ([]*domain.Notification, int64, error)
	MarkRead(notificationID string) error
}

type DefaultNotificationUsecase struct {
	NotificationRepo domain.NotificationRepository
	ProfileRepo      domain.ProfileRepository
	Push             domain.PushSender
	Metrics          *metrics.PaymentMetrics
}

func NewDefaultNotificationUsecase(
	notificationRepo domain.NotificationRepository,
	profileRepo domain.ProfileRepository,
	pushSender domain.PushSender,
	paymentMetrics *metrics.PaymentMetrics) *DefaultNotificationUsecase {

	return &DefaultNotificationUsecase{
		NotificationRepo: notificationRepo,
		ProfileRepo:      profileRepo,
		Push:             pushSender,
		Metrics:          paymentMetrics,
	}
}

// NotifyOrderEvent fans one order event out to push and the in-app feed.
// The two channels are independent: push is best-effort and its failures
// never suppress the in-app row, which is the durable record of the event.
func (uc *DefaultNotificationUsecase) NotifyOrderEvent(ctx context.Context, order *domain.Order, notificationType domain.NotificationType) error {
	title := buildTitle(notificationType)
	body := buildBody(order)
	data := map[string]string{
		"order_id":      order.ID,
		"order_code":    order.Code,
		"status":        string(order.Status),
		"product_title": productLabel(order),
		"buyer_name":    order.BuyerName,
		"amount":        fmt.Sprintf("%.2f", order.Amount),
	}

	uc.deliverPush(ctx, order, title, body, data)

	notification := &domain.Notification{
		ID:     uuid.NewString(),
		UserID: order.SellerID,
		Type:   notificationType,
		Title:  title,
		Body:   body,
		Data:   data,
	}
	if err := uc.NotificationRepo.CreateNotification(notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	if uc.Metrics != nil {
		uc.Metrics.NotificationsTotal.WithLabelValues(string(notificationType)).Inc()
	}

	return nil
}

func (uc *DefaultNotificationUsecase) GetUserNotifications(userID string, page, limit int32) ([]*domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.NotificationRepo.GetUserNotifications(userID, page, limit)
}

func (uc *DefaultNotificationUsecase) MarkRead(notificationID string) error {
	return uc.NotificationRepo.MarkRead(notificationID)
}

func (uc *DefaultNotificationUsecase) deliverPush(ctx context.Context, order *domain.Order, title, body string, data map[string]string) {
	profile, err := uc.ProfileRepo.GetProfile(order.SellerID)
	if err != nil {
		slog.Warn("push skipped: seller profile unavailable", "seller_id", order.SellerID, "error", err.Error())
		return
	}
	if profile.NotificationsMuted {
		slog.Debug("push skipped: seller muted notifications", "seller_id", order.SellerID)
		return
	}
	if len(profile.PushTokens) == 0 {
		slog.Debug("push skipped: seller has no registered devices", "seller_id", order.SellerID)
		return
	}

	tickets, err := uc.Push.SendBatch(ctx, &domain.PushMessage{
		Tokens: profile.PushTokens,
		Title:  title,
		Body:   body,
		Data:   data,
	})
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.PushDeliveriesTotal.WithLabelValues("error").Add(float64(len(profile.PushTokens)))
		}
		slog.Error("push batch failed", "seller_id", order.SellerID, "order_id", order.ID, "error", err.Error())
		return
	}

	for _, ticket := range tickets {
		result := "ok"
		if !ticket.OK {
			result = "error"
			slog.Warn("push delivery failed for token",
				"seller_id", order.SellerID,
				"order_id", order.ID,
				"message", ticket.Message,
			)
		}
		if uc.Metrics != nil {
			uc.Metrics.PushDeliveriesTotal.WithLabelValues(result).Inc()
		}
	}
}

func buildTitle(notificationType domain.NotificationType) string {
	switch notificationType {
	case domain.NotificationOrderCancelled:
		return "Order cancelled"
	case domain.NotificationOrderRefunded:
		return "Order refunded"
	default:
		return "New order received"
	}
}

func productLabel(order *domain.Order) string {
	if len(order.Items) == 0 {
		return "Order " + order.Code
	}
	label := order.Items[0].Title
	if extra := len(order.Items) - 1; extra > 0 {
		label = fmt.Sprintf("%s + %d more items", label, extra)
	}
	return label
}

func buildBody(order *domain.Order) string {
	return fmt.Sprintf("%s · Rs. %.2f · %s", productLabel(order), order.Amount, order.BuyerName)
}
