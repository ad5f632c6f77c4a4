package mappers

import (
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	items := make([]domain.OrderItem, len(model.Items))
	for i, itemModel := range model.Items {
		items[i] = domain.OrderItem{
			ID:         itemModel.ID,
			OrderID:    itemModel.OrderID,
			ProductID:  itemModel.ProductID,
			Title:      itemModel.Title,
			CoverImage: itemModel.CoverImage,
			Quantity:   itemModel.Quantity,
		}
	}

	return &domain.Order{
		ID:              model.ID,
		Code:            model.Code,
		TransactionUUID: model.TransactionUUID,
		Status:          model.Status,
		Amount:          model.Amount,
		BuyerName:       model.BuyerName,
		BuyerEmail:      model.BuyerEmail,
		ShippingAddress: model.ShippingAddress,
		SellerID:        model.SellerID,
		Items:           items,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	items := make([]models.OrderItemModel, len(order.Items))
	for i, item := range order.Items {
		items[i] = models.OrderItemModel{
			ID:         item.ID,
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Title:      item.Title,
			CoverImage: item.CoverImage,
			Quantity:   item.Quantity,
		}
	}

	return &models.OrderModel{
		ID:              order.ID,
		Code:            order.Code,
		TransactionUUID: order.TransactionUUID,
		Status:          order.Status,
		Amount:          order.Amount,
		BuyerName:       order.BuyerName,
		BuyerEmail:      order.BuyerEmail,
		ShippingAddress: order.ShippingAddress,
		SellerID:        order.SellerID,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
