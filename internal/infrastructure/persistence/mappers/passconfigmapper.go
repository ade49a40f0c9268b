package mappers

import (
	"encoding/json"
	"fmt"

	"allaccess/internal/domain/catalog"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/infrastructure/persistence/models"
)

// PassConfigMapper handles the conversion between product pass configuration
// and its persistence model
type PassConfigMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.ProductPassConfigModel) (*catalog.ProductPassConfig, error)
}

// passConfigMapper is the concrete implementation of PassConfigMapper
type passConfigMapper struct{}

// NewPassConfigMapper creates a new pass config mapper
func NewPassConfigMapper() PassConfigMapper {
	return &passConfigMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *passConfigMapper) ToEntity(model *models.ProductPassConfigModel) (*catalog.ProductPassConfig, error) {
	if model == nil {
		return nil, nil
	}

	duration, err := buildDuration(model.DurationNumber, model.DurationUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to map duration for product %d: %w", model.ProductID, err)
	}

	period := vo.QuotaPeriod(model.LimitPeriod)
	if model.DownloadLimit > 0 && !period.IsValid() {
		return nil, fmt.Errorf("invalid limit period %q for product %d", model.LimitPeriod, model.ProductID)
	}

	categories, err := buildCategoryScope(model)
	if err != nil {
		return nil, fmt.Errorf("failed to map category scope for product %d: %w", model.ProductID, err)
	}

	variations, err := buildVariationScope(model)
	if err != nil {
		return nil, fmt.Errorf("failed to map variation scope for product %d: %w", model.ProductID, err)
	}

	entity := &catalog.ProductPassConfig{
		ProductID:   model.ProductID,
		Enabled:     model.Enabled,
		Duration:    duration,
		Limit:       model.DownloadLimit,
		LimitPeriod: period,
		Categories:  categories,
		Variations:  variations,
	}
	if err := entity.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pass config for product %d: %w", model.ProductID, err)
	}

	return entity, nil
}

func buildDuration(number int, unit string) (vo.Duration, error) {
	u := vo.DurationUnit(unit)
	if u == vo.UnitNever {
		return vo.Forever(), nil
	}
	return vo.NewDuration(number, u)
}

func buildCategoryScope(model *models.ProductPassConfigModel) (vo.CategoryScope, error) {
	if model.AllCategories {
		return vo.AllCategories(), nil
	}
	if len(model.CategoryIDs) == 0 {
		return vo.Categories(), nil
	}
	var ids []uint
	if err := json.Unmarshal(model.CategoryIDs, &ids); err != nil {
		return vo.CategoryScope{}, err
	}
	return vo.Categories(ids...), nil
}

func buildVariationScope(model *models.ProductPassConfigModel) (vo.VariationScope, error) {
	if model.VariationCount == 0 {
		return vo.AllVariations(), nil
	}
	if len(model.VariationIndices) == 0 {
		return vo.FirstVariations(model.VariationCount), nil
	}
	var indices []int
	if err := json.Unmarshal(model.VariationIndices, &indices); err != nil {
		return vo.VariationScope{}, err
	}
	return vo.Variations(indices...), nil
}
