package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"allaccess/internal/domain/access"
	"allaccess/internal/infrastructure/persistence/models"
	"allaccess/internal/shared/logger"
)

// CustomerDirectoryImpl implements the access.Directory interface
type CustomerDirectoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCustomerDirectory creates a new customer directory instance
func NewCustomerDirectory(db *gorm.DB, logger logger.Interface) access.Directory {
	return &CustomerDirectoryImpl{
		db:     db,
		logger: logger,
	}
}

// Exists reports whether a customer record exists for the given id
func (r *CustomerDirectoryImpl) Exists(ctx context.Context, customerID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", customerID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check customer existence", "customer_id", customerID, "error", err)
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return count > 0, nil
}
