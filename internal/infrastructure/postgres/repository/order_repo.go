package repository

import (
	"errors"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/mappers"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrderWithItems(order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	// gorm persists the Items association inside the same transaction,
	// the order row and its items commit or roll back together
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(orderModel).Error
	})
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.Preload("Items").First(&orderModel, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *DefaultOrderRepository) GetOrderByTransactionUUID(transactionUUID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.Preload("Items").First(&orderModel, "transaction_uuid = ?", transactionUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&orderModel), nil
}

// UpdateOrderStatusFrom guards the write with the expected current status so
// concurrent webhook deliveries cannot interleave a half-applied transition.
func (r *DefaultOrderRepository) UpdateOrderStatusFrom(orderID string, from, to domain.OrderStatus) (bool, error) {
	res := r.DB.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
