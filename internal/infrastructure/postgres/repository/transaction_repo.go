package repository

import (
	"errors"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/mappers"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(tx *domain.PaymentTransaction) error {
	txModel, err := mappers.ToGORMTransaction(tx)
	if err != nil {
		return err
	}
	return r.DB.Create(txModel).Error
}

func (r *DefaultTransactionRepository) GetTransactionByUUID(transactionUUID string) (*domain.PaymentTransaction, error) {
	var txModel models.TransactionModel
	if err := r.DB.First(&txModel, "transaction_uuid = ?", transactionUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&txModel)
}

// MarkProcessed is the idempotency point of the whole pipeline: a single
// conditional UPDATE that only one concurrent caller can win. The winner
// sees RowsAffected == 1, everyone else sees 0.
func (r *DefaultTransactionRepository) MarkProcessed(transactionUUID string) (bool, error) {
	res := r.DB.Model(&models.TransactionModel{}).
		Where("transaction_uuid = ? AND processed = ?", transactionUUID, false).
		Update("processed", true)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
