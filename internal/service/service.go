package service

import (
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/config"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
)

// Services aggregates all services for dependency wiring.
type Services struct {
	Auth      *AuthService
	Order     *OrderService
	Customer  *CustomerService
	Inventory *InventoryService
	Dashboard *DashboardService
	Profile   *ProfileService
	Report    *ReportService
}

func NewServices(repos *repository.Repositories, bus event.Bus, storage *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, cfg.JWT, logger),
		Order:     NewOrderService(repos.Order, repos.Customer, bus, logger),
		Customer:  NewCustomerService(repos.Customer, repos.Order, logger),
		Inventory: NewInventoryService(repos.Inventory, bus, logger),
		Dashboard: NewDashboardService(repos.Order, repos.Inventory, bus, cfg.Live, logger),
		Profile:   NewProfileService(repos.User, storage, cfg.MinIO, logger),
		Report:    NewReportService(repos.Order, logger),
	}
}
