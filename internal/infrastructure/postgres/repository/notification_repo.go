package repository

import (
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/mappers"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) CreateNotification(n *domain.Notification) error {
	notificationModel, err := mappers.ToGORMNotification(n)
	if err != nil {
		return err
	}
	return r.DB.Create(notificationModel).Error
}

func (r *DefaultNotificationRepository) GetUserNotifications(userID string, page, limit int32) ([]*domain.Notification, int64, error) {
	var notificationModels []models.NotificationModel
	var total int64

	query := r.DB.Model(&models.NotificationModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*domain.Notification, len(notificationModels))
	for i, notificationModel := range notificationModels {
		notifications[i] = mappers.ToDomainNotification(&notificationModel)
	}

	return notifications, total, nil
}

func (r *DefaultNotificationRepository) MarkRead(notificationID string) error {
	return r.DB.Model(&models.NotificationModel{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}
