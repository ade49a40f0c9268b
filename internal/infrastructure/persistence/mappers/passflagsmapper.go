package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"allaccess/internal/domain/order"
	"allaccess/internal/infrastructure/persistence/models"
)

// PassFlagsMapper handles the conversion between the per-order pass flag
// annotation and its persistence model
type PassFlagsMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.OrderPassFlagsModel) (*order.PassFlags, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(orderID uint, flags *order.PassFlags) (*models.OrderPassFlagsModel, error)
}

// passFlagsMapper is the concrete implementation of PassFlagsMapper
type passFlagsMapper struct{}

// NewPassFlagsMapper creates a new pass flags mapper
func NewPassFlagsMapper() PassFlagsMapper {
	return &passFlagsMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *passFlagsMapper) ToEntity(model *models.OrderPassFlagsModel) (*order.PassFlags, error) {
	if model == nil {
		return order.NewPassFlags(), nil
	}

	activated, err := decodeKeyList(model.Activated)
	if err != nil {
		return nil, fmt.Errorf("failed to decode activated keys: %w", err)
	}
	expired, err := decodeKeyList(model.Expired)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expired keys: %w", err)
	}

	return order.ReconstructPassFlags(activated, expired), nil
}

// ToModel converts a domain entity to a persistence model
func (m *passFlagsMapper) ToModel(orderID uint, flags *order.PassFlags) (*models.OrderPassFlagsModel, error) {
	if flags == nil {
		return nil, fmt.Errorf("pass flags cannot be nil")
	}

	activated, err := json.Marshal(flags.ActivatedKeys())
	if err != nil {
		return nil, fmt.Errorf("failed to encode activated keys: %w", err)
	}
	expired, err := json.Marshal(flags.ExpiredKeys())
	if err != nil {
		return nil, fmt.Errorf("failed to encode expired keys: %w", err)
	}

	return &models.OrderPassFlagsModel{
		OrderID:   orderID,
		Activated: datatypes.JSON(activated),
		Expired:   datatypes.JSON(expired),
	}, nil
}

func decodeKeyList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
