package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/stats"
)

type CustomerService struct {
	customers *repository.CustomerRepository
	orders    *repository.OrderRepository
	logger    *zap.Logger
}

func NewCustomerService(customers *repository.CustomerRepository, orders *repository.OrderRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, orders: orders, logger: logger}
}

func (s *CustomerService) List(ctx context.Context, params repository.CustomerListParams) ([]entity.Customer, int64, error) {
	customers, total, err := s.customers.List(ctx, params)
	if err != nil {
		return nil, 0, &livequery.FetchError{Resource: "customers", Err: err}
	}
	return customers, total, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "customers", Err: err}
	}
	return customer, nil
}

// Directory derives the customer list from the order history, grouped by
// name. Covers walk-in orders taken without a phone number, which never
// land in the customers table.
func (s *CustomerService) Directory(ctx context.Context) ([]stats.CustomerSummary, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "orders", Err: err}
	}
	return stats.ComputeCustomers(orders), nil
}
