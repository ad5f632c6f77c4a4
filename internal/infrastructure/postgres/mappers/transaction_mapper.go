package mappers

import (
	"encoding/json"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) (*domain.PaymentTransaction, error) {
	var intent domain.OrderIntent
	if model.IntentJSON != "" {
		if err := json.Unmarshal([]byte(model.IntentJSON), &intent); err != nil {
			return nil, err
		}
	}

	return &domain.PaymentTransaction{
		TransactionUUID: model.TransactionUUID,
		Gateway:         model.Gateway,
		Amount:          model.Amount,
		Processed:       model.Processed,
		Intent:          intent,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}, nil
}

func ToGORMTransaction(tx *domain.PaymentTransaction) (*models.TransactionModel, error) {
	intentJSON, err := json.Marshal(tx.Intent)
	if err != nil {
		return nil, err
	}

	return &models.TransactionModel{
		TransactionUUID: tx.TransactionUUID,
		Gateway:         tx.Gateway,
		Amount:          tx.Amount,
		Processed:       tx.Processed,
		IntentJSON:      string(intentJSON),
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}, nil
}
