package domain

import "time"

type NotificationType string

const (
	NotificationNewOrder       NotificationType = "new_order"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationOrderRefunded  NotificationType = "order_refunded"
)

type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Body      string
	Data      map[string]string
	IsRead    bool
	CreatedAt time.Time
}

type NotificationRepository interface {
	CreateNotification(n *Notification) error
	GetUserNotifications(userID string, page, limit int32) ([]*Notification, int64, error)
	MarkRead(notificationID string) error
}
