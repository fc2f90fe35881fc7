package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

type InventoryListParams struct {
	Type     string
	Keyword  string
	LowStock bool
	Page     int
	Size     int
}

func (r *InventoryRepository) List(ctx context.Context, params InventoryListParams) ([]entity.InventoryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).Where("deleted_at IS NULL")
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR type ILIKE ?", kw, kw)
	}
	if params.LowStock {
		query = query.Where("quantity <= min_quantity")
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var items []entity.InventoryItem
	err := query.Order("name ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&items).Error
	return items, total, err
}

func (r *InventoryRepository) ListAll(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// GetAlerts returns every item at or below its reorder threshold.
func (r *InventoryRepository) GetAlerts(ctx context.Context) ([]entity.InventoryItem, error) {
	var alerts []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity <= min_quantity AND deleted_at IS NULL").
		Order("name ASC").
		Find(&alerts).Error
	return alerts, err
}
