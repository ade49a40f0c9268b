package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"allaccess/internal/domain/pass"
	"allaccess/internal/infrastructure/persistence/models"
	"allaccess/internal/shared/logger"
)

// passRegistryMetaKey is the customer meta key holding the grant mapping.
const passRegistryMetaKey = "all_access_passes"

// PassRegistryRepositoryImpl implements the pass.RegistryStore interface on
// top of the customer metadata table
type PassRegistryRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPassRegistryRepository creates a new pass registry repository instance
func NewPassRegistryRepository(db *gorm.DB, logger logger.Interface) pass.RegistryStore {
	return &PassRegistryRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Get fetches a customer's registry. Customers without a stored document
// yield an empty registry.
func (r *PassRegistryRepositoryImpl) Get(ctx context.Context, customerID uint) (*pass.Registry, error) {
	var model models.CustomerMetaModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND meta_key = ?", customerID, passRegistryMetaKey).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pass.NewRegistry(), nil
		}
		r.logger.Errorw("failed to get pass registry", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get pass registry: %w", err)
	}

	registry, err := pass.ReconstructRegistry(model.MetaValue)
	if err != nil {
		r.logger.Errorw("failed to decode pass registry", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to decode pass registry: %w", err)
	}
	return registry, nil
}

// Save upserts a customer's registry document
func (r *PassRegistryRepositoryImpl) Save(ctx context.Context, customerID uint, registry *pass.Registry) error {
	raw, err := registry.Encode()
	if err != nil {
		r.logger.Errorw("failed to encode pass registry", "customer_id", customerID, "error", err)
		return fmt.Errorf("failed to encode pass registry: %w", err)
	}

	model := &models.CustomerMetaModel{
		CustomerID: customerID,
		MetaKey:    passRegistryMetaKey,
		MetaValue:  datatypes.JSON(raw),
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "meta_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"meta_value", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to save pass registry", "customer_id", customerID, "error", err)
		return fmt.Errorf("failed to save pass registry: %w", err)
	}
	return nil
}
