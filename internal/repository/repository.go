package repository

import "gorm.io/gorm"

// Repositories aggregates all repositories for dependency wiring.
type Repositories struct {
	User      *UserRepository
	Customer  *CustomerRepository
	Order     *OrderRepository
	Inventory *InventoryRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Customer:  NewCustomerRepository(db),
		Order:     NewOrderRepository(db),
		Inventory: NewInventoryRepository(db),
	}
}
