package models

import (
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
)

type NotificationModel struct {
	ID        string                  `gorm:"primaryKey;type:uuid"`
	UserID    string                  `gorm:"index:idx_notification_user"`
	Type      domain.NotificationType `gorm:"index"`
	Title     string
	Body      string
	DataJSON  string `gorm:"type:jsonb"`
	IsRead    bool   `gorm:"default:false"`
	CreatedAt time.Time
}
