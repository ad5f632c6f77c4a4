package mappers

import (
	"encoding/json"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
)

func ToDomainNotification(model *models.NotificationModel) *domain.Notification {
	data := map[string]string{}
	if model.DataJSON != "" {
		// a corrupt payload degrades to an empty data map, the row itself
		// is still usable for the feed
		_ = json.Unmarshal([]byte(model.DataJSON), &data)
	}

	return &domain.Notification{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		Title:     model.Title,
		Body:      model.Body,
		Data:      data,
		IsRead:    model.IsRead,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMNotification(n *domain.Notification) (*models.NotificationModel, error) {
	dataJSON, err := json.Marshal(n.Data)
	if err != nil {
		return nil, err
	}

	return &models.NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		DataJSON:  string(dataJSON),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}, nil
}
