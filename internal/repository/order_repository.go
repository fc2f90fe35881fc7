package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type OrderListParams struct {
	Status     string
	Priority   string
	CustomerID string
	Keyword    string
	DueOn      *time.Time
	Page       int
	Size       int
}

func (r *OrderRepository) List(ctx context.Context, params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Priority != "" {
		query = query.Where("priority_level = ?", params.Priority)
	}
	if params.CustomerID != "" {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("customer_name ILIKE ? OR garment_type ILIKE ?", kw, kw)
	}
	if params.DueOn != nil {
		query = query.Where("due_date = ?", params.DueOn.Format("2006-01-02"))
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Order("due_date ASC, created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&orders).Error
	return orders, total, err
}

// ListAll returns every live order; the derivation layer works over the
// full snapshot.
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Measurements").
		Preload("Customer").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

// UpsertMeasurements writes a batch of measurements keyed on
// (order_id, name); existing rows get the new value and unit.
func (r *OrderRepository) UpsertMeasurements(ctx context.Context, measurements []entity.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "unit", "updated_at"}),
	}).Create(&measurements).Error
}

func (r *OrderRepository) ListMeasurements(ctx context.Context, orderID string) ([]entity.Measurement, error) {
	var measurements []entity.Measurement
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("name ASC").
		Find(&measurements).Error
	return measurements, err
}

// DB exposes the underlying handle for callers composing raw queries.
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}
