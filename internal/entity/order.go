package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in-progress"
	StatusCompleted  OrderStatus = "completed"
	StatusDelivered  OrderStatus = "delivered"
)

// Priority is the order priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
	PriorityRush   Priority = "rush"
)

// FabricProvidedBy values
const (
	FabricByCustomer = "customer"
	FabricByTailor   = "tailor"
)

// NormalizeStatus maps a raw status string onto a known OrderStatus.
// Unknown values fall back to pending; the second return reports whether
// the input was recognized so the caller can log it.
func NormalizeStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelivered:
		return OrderStatus(raw), true
	}
	return StatusPending, false
}

// NormalizePriority maps a raw priority string onto a known Priority,
// falling back to normal.
func NormalizePriority(raw string) (Priority, bool) {
	switch Priority(raw) {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent, PriorityRush:
		return Priority(raw), true
	}
	return PriorityNormal, false
}

// Order is a garment order placed by a customer.
type Order struct {
	ID               string          `json:"id" gorm:"primaryKey;size:36"`
	CustomerID       string          `json:"customer_id" gorm:"size:36;index"`
	CustomerName     string          `json:"customer_name" gorm:"size:200;not null"`
	PhoneNumber      string          `json:"phone_number" gorm:"size:20"`
	GarmentType      string          `json:"garment_type" gorm:"size:100;not null"`
	FabricType       string          `json:"fabric_type" gorm:"size:100"`
	FabricProvidedBy string          `json:"fabric_provided_by" gorm:"size:10;not null;default:customer"`
	DueDate          time.Time       `json:"due_date" gorm:"type:date;not null;index"`
	DeliveryDate     *time.Time      `json:"delivery_date" gorm:"type:date"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	AdvancePaid      decimal.Decimal `json:"advance_paid" gorm:"type:decimal(10,2);not null;default:0"`
	Status           OrderStatus     `json:"status" gorm:"size:20;not null;default:pending;index"`
	PriorityLevel    Priority        `json:"priority_level" gorm:"size:10;not null;default:normal"`
	Notes            string          `json:"notes" gorm:"type:text"`
	CreatedBy        string          `json:"created_by" gorm:"size:36;not null;index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Customer     *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Measurements []Measurement `json:"measurements,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// Terminal reports whether the order has reached a terminal state.
func (o *Order) Terminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusDelivered
}

// Measurement is a single named measurement taken for an order.
// Uniqueness is (order_id, name): the same customer can have different
// measurements per garment.
type Measurement struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	OrderID   string    `json:"order_id" gorm:"size:36;not null;uniqueIndex:idx_measurements_order_name,priority:1"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_measurements_order_name,priority:2"`
	Value     string    `json:"value" gorm:"size:20;not null"`
	Unit      string    `json:"unit" gorm:"size:10;not null;default:cm"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Measurement) TableName() string {
	return "measurements"
}
