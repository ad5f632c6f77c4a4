package repository

import (
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/mappers"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUnmaterializedPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultUnmaterializedPaymentRepository(db *gorm.DB) *DefaultUnmaterializedPaymentRepository {
	return &DefaultUnmaterializedPaymentRepository{DB: db}
}

func (r *DefaultUnmaterializedPaymentRepository) CreateLog(log *domain.UnmaterializedPayment) error {
	model := mappers.ToGORMUnmaterializedPayment(log)
	return r.DB.Create(model).Error
}

func (r *DefaultUnmaterializedPaymentRepository) GetLogs(page, limit int32) ([]*domain.UnmaterializedPayment, int64, error) {
	var logModels []*models.UnmaterializedPaymentModel
	var total int64

	query := r.DB.Model(&models.UnmaterializedPaymentModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*domain.UnmaterializedPayment, len(logModels))
	for i, logModel := range logModels {
		logs[i] = mappers.ToDomainUnmaterializedPayment(logModel)
	}

	return logs, total, nil
}
