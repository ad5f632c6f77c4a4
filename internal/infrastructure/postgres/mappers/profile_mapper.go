package mappers

import (
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
)

func ToDomainProfile(model *models.SellerProfileModel) *domain.SellerProfile {
	return &domain.SellerProfile{
		UserID:             model.UserID,
		PushTokens:         []string(model.PushTokens),
		NotificationsMuted: model.NotificationsMuted,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToDomainUnmaterializedPayment(model *models.UnmaterializedPaymentModel) *domain.UnmaterializedPayment {
	return &domain.UnmaterializedPayment{
		ID:              model.ID,
		TransactionUUID: model.TransactionUUID,
		Gateway:         model.Gateway,
		Amount:          model.Amount,
		SellerID:        model.SellerID,
		ErrorMessage:    model.ErrorMessage,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMUnmaterializedPayment(log *domain.UnmaterializedPayment) *models.UnmaterializedPaymentModel {
	return &models.UnmaterializedPaymentModel{
		ID:              log.ID,
		TransactionUUID: log.TransactionUUID,
		Gateway:         log.Gateway,
		Amount:          log.Amount,
		SellerID:        log.SellerID,
		ErrorMessage:    log.ErrorMessage,
		CreatedAt:       log.CreatedAt,
	}
}
