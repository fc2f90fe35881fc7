package entity

import (
	"time"
)

// InventoryItemType values
const (
	ItemTypeFabric    = "Fabric"
	ItemTypeThread    = "Thread"
	ItemTypeButton    = "Button"
	ItemTypeZipper    = "Zipper"
	ItemTypeAccessory = "Accessory"
)

// Stock status labels (derived, never stored)
const (
	StockStatusInStock = "In Stock"
	StockStatusLow     = "Low Stock"
)

// InventoryItem is a stocked material (fabric, thread, buttons, ...).
type InventoryItem struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Name        string     `json:"name" gorm:"size:200;not null"`
	Type        string     `json:"type" gorm:"size:20;not null;index"`
	Quantity    int        `json:"quantity" gorm:"not null;default:0"`
	Unit        string     `json:"unit" gorm:"size:20;not null;default:pcs"`
	MinQuantity int        `json:"min_quantity" gorm:"not null;default:0"`
	CreatedBy   string     `json:"created_by" gorm:"size:36;not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// Status returns the derived stock label shown in the inventory table.
func (i *InventoryItem) Status() string {
	if i.LowStock() {
		return StockStatusLow
	}
	return StockStatusInStock
}
