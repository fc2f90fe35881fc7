package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type CustomerListParams struct {
	Keyword string
	Page    int
	Size    int
}

func (r *CustomerRepository) List(ctx context.Context, params CustomerListParams) ([]entity.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Where("deleted_at IS NULL")
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR phone_number LIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var customers []entity.Customer
	err := query.Order("name ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&customers).Error
	return customers, total, err
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Where("deleted_at IS NULL").Order("due_date ASC")
		}).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND deleted_at IS NULL", phone).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Upsert creates or refreshes a customer keyed on phone number. The phone
// is the stable dedup key at order intake.
func (r *CustomerRepository) Upsert(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"name": customer.Name, "updated_at": time.Now()}),
	}).Create(customer).Error
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}
