package models

import (
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
)

type OrderModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Code            string `gorm:"uniqueIndex"`
	TransactionUUID string `gorm:"uniqueIndex"`
	Status          domain.OrderStatus `gorm:"index:idx_order_status"`
	Amount          float64
	BuyerName       string
	BuyerEmail      string
	ShippingAddress string
	SellerID        string           `gorm:"index:idx_order_seller"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time        `gorm:"index:idx_order_created_at"`
	UpdatedAt       time.Time
}

type OrderItemModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	OrderID    string `gorm:"type:uuid;index"`
	ProductID  string
	Title      string
	CoverImage string
	Quantity   int32
	CreatedAt  time.Time
}
