package mappers

import (
	"fmt"

	"allaccess/internal/domain/order"
	"allaccess/internal/infrastructure/persistence/models"
)

// OrderMapper handles the conversion between domain entities and persistence models
type OrderMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.OrderModel) (*order.Order, error)
}

// orderMapper is the concrete implementation of OrderMapper
type orderMapper struct{}

// NewOrderMapper creates a new order mapper
func NewOrderMapper() OrderMapper {
	return &orderMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *orderMapper) ToEntity(model *models.OrderModel) (*order.Order, error) {
	if model == nil {
		return nil, nil
	}

	items := make([]order.Item, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, order.Item{
			ProductID: item.ProductID,
			PriceID:   item.PriceID,
		})
	}

	entity, err := order.ReconstructOrder(
		model.ID,
		model.CustomerID,
		order.Status(model.Status),
		model.PurchasedAt,
		items,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order entity: %w", err)
	}

	return entity, nil
}
