package models

import (
	"time"

	"github.com/lib/pq"
)

type SellerProfileModel struct {
	UserID             string         `gorm:"primaryKey"`
	PushTokens         pq.StringArray `gorm:"type:text[]"`
	NotificationsMuted bool           `gorm:"default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
