package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"allaccess/internal/domain/order"
	"allaccess/internal/infrastructure/persistence/mappers"
	"allaccess/internal/infrastructure/persistence/models"
	"allaccess/internal/shared/logger"
)

// OrderRepositoryImpl implements the order.Repository interface
type OrderRepositoryImpl struct {
	db          *gorm.DB
	logger      logger.Interface
	mapper      mappers.OrderMapper
	flagsMapper mappers.PassFlagsMapper
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB, logger logger.Interface) order.Repository {
	return &OrderRepositoryImpl{
		db:          db,
		logger:      logger,
		mapper:      mappers.NewOrderMapper(),
		flagsMapper: mappers.NewPassFlagsMapper(),
	}
}

// GetByID fetches an order with its line items
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, order.ErrOrderNotFound
		}
		r.logger.Errorw("failed to get order", "order_id", id, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map order", "order_id", id, "error", err)
		return nil, fmt.Errorf("failed to map order: %w", err)
	}
	return entity, nil
}

// GetFlags fetches the pass-flag annotation for an order. Orders without a
// stored annotation yield an empty one.
func (r *OrderRepositoryImpl) GetFlags(ctx context.Context, orderID uint) (*order.PassFlags, error) {
	var model models.OrderPassFlagsModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return order.NewPassFlags(), nil
		}
		r.logger.Errorw("failed to get order pass flags", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to get order pass flags: %w", err)
	}

	flags, err := r.flagsMapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map order pass flags", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to map order pass flags: %w", err)
	}
	return flags, nil
}

// SaveFlags upserts the pass-flag annotation for an order
func (r *OrderRepositoryImpl) SaveFlags(ctx context.Context, orderID uint, flags *order.PassFlags) error {
	model, err := r.flagsMapper.ToModel(orderID, flags)
	if err != nil {
		return fmt.Errorf("failed to map order pass flags: %w", err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"activated", "expired", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to save order pass flags", "order_id", orderID, "error", err)
		return fmt.Errorf("failed to save order pass flags: %w", err)
	}
	return nil
}

// ListOrderIDsWithActivePasses returns ids of orders whose annotation still
// carries at least one active-flagged key
func (r *OrderRepositoryImpl) ListOrderIDsWithActivePasses(ctx context.Context) ([]uint, error) {
	var orderIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.OrderPassFlagsModel{}).
		Where("JSON_LENGTH(activated) > 0").
		Order("order_id ASC").
		Pluck("order_id", &orderIDs).Error; err != nil {
		r.logger.Errorw("failed to list orders with active passes", "error", err)
		return nil, fmt.Errorf("failed to list orders with active passes: %w", err)
	}
	return orderIDs, nil
}
