package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/infrastructure/persistence/mappers"
	"allaccess/internal/infrastructure/persistence/models"
	"allaccess/internal/shared/logger"
)

// CatalogRepositoryImpl implements the catalog.Repository interface
type CatalogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.PassConfigMapper
}

// NewCatalogRepository creates a new catalog repository instance
func NewCatalogRepository(db *gorm.DB, logger logger.Interface) catalog.Repository {
	return &CatalogRepositoryImpl{
		db:     db,
		logger: logger,
		mapper: mappers.NewPassConfigMapper(),
	}
}

// GetPassConfig fetches the pass configuration of a product
func (r *CatalogRepositoryImpl) GetPassConfig(ctx context.Context, productID uint) (*catalog.ProductPassConfig, error) {
	var model models.ProductPassConfigModel
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %d: %w", productID, catalog.ErrProductNotFound)
		}
		r.logger.Errorw("failed to get pass config", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to get pass config: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map pass config", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to map pass config: %w", err)
	}
	return entity, nil
}

// ProductCategories returns the category ids a product belongs to
func (r *CatalogRepositoryImpl) ProductCategories(ctx context.Context, productID uint) ([]uint, error) {
	var categoryIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.ProductCategoryModel{}).
		Where("product_id = ?", productID).
		Order("category_id ASC").
		Pluck("category_id", &categoryIDs).Error; err != nil {
		r.logger.Errorw("failed to get product categories", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to get product categories: %w", err)
	}
	return categoryIDs, nil
}

// VariationCount returns how many price variations a product carries
func (r *CatalogRepositoryImpl) VariationCount(ctx context.Context, productID uint) (int, error) {
	var model models.ProductPassConfigModel
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		r.logger.Errorw("failed to get variation count", "product_id", productID, "error", err)
		return 0, fmt.Errorf("failed to get variation count: %w", err)
	}
	return model.VariationCount, nil
}
