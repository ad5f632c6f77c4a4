package models

import (
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
)

type UnmaterializedPaymentModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	TransactionUUID string `gorm:"index"`
	Gateway         domain.Gateway
	Amount          float64
	SellerID        string
	ErrorMessage    string
	CreatedAt       time.Time `gorm:"index"`
}
