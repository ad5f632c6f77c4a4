package models

import (
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
)

type TransactionModel struct {
	TransactionUUID string         `gorm:"primaryKey"`
	Gateway         domain.Gateway `gorm:"index"`
	Amount          float64
	Processed       bool   `gorm:"index;default:false"`
	IntentJSON      string `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
