package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/config"
	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/stats"
)

// DashboardService keeps live views of the order book and the inventory
// and derives the dashboard aggregates from their snapshots. The views
// refresh on change events; requests read the cached snapshot and only
// fall back to a direct query while a view has no data yet.
type DashboardService struct {
	orders    *repository.OrderRepository
	inventory *repository.InventoryRepository
	logger    *zap.Logger

	orderView *livequery.View[entity.Order]
	itemView  *livequery.View[entity.InventoryItem]
	timeout   time.Duration
}

func NewDashboardService(orders *repository.OrderRepository, inventory *repository.InventoryRepository, bus event.Bus, cfg config.LiveConfig, logger *zap.Logger) *DashboardService {
	s := &DashboardService{
		orders:    orders,
		inventory: inventory,
		logger:    logger,
		timeout:   cfg.FetchTimeout,
	}

	s.orderView = livequery.NewView("orders",
		func(ctx context.Context) ([]entity.Order, error) { return orders.ListAll(ctx) },
		livequery.WithTimeout(cfg.FetchTimeout),
		livequery.WithDebounce(cfg.RefreshDebounce),
		livequery.WithLogger(logger),
		livequery.WithSubscribe(busSubscribe(bus, "orders")),
	)
	s.itemView = livequery.NewView("inventory_items",
		func(ctx context.Context) ([]entity.InventoryItem, error) { return inventory.ListAll(ctx) },
		livequery.WithTimeout(cfg.FetchTimeout),
		livequery.WithDebounce(cfg.RefreshDebounce),
		livequery.WithLogger(logger),
		livequery.WithSubscribe(busSubscribe(bus, "inventory_items")),
	)
	return s
}

// busSubscribe adapts a bus resource subscription to a view invalidation
// hook. The event payload is dropped on purpose: views re-fetch, they
// never patch.
func busSubscribe(bus event.Bus, resource string) livequery.SubscribeFunc {
	return func(fn func()) (func(), error) {
		return bus.Subscribe(resource, func(event.Event) { fn() })
	}
}

// Start loads both views and attaches their subscriptions.
func (s *DashboardService) Start(ctx context.Context) error {
	if err := s.orderView.Start(ctx); err != nil {
		return err
	}
	return s.itemView.Start(ctx)
}

// Close disposes both views.
func (s *DashboardService) Close() {
	s.orderView.Close()
	s.itemView.Close()
}

// DashboardStats is the home-screen aggregate payload.
type DashboardStats struct {
	Orders         stats.OrderStats `json:"orders"`
	TotalCustomers int              `json:"total_customers"`
	MonthlyRevenue decimal.Decimal  `json:"monthly_revenue"`
	DueToday       []entity.Order   `json:"due_today"`
	LowStockItems  int              `json:"low_stock_items"`
}

// Stats derives the dashboard aggregates for the current month and day.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()

	orders, err := s.snapshotOrders(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.snapshotItems(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Orders:         stats.ComputeOrderStats(orders),
		TotalCustomers: len(stats.ComputeCustomers(orders)),
		MonthlyRevenue: stats.ComputeRevenue(orders, now.Month(), now.Year()),
		DueToday:       stats.ComputeDueOn(orders, now),
		LowStockItems:  stats.ComputeLowStock(items),
	}, nil
}

// Orders returns the live order snapshot (refreshing views still serve
// their last good records).
func (s *DashboardService) Orders(ctx context.Context) ([]entity.Order, error) {
	return s.snapshotOrders(ctx)
}

func (s *DashboardService) snapshotOrders(ctx context.Context) ([]entity.Order, error) {
	snap := s.orderView.Snapshot()
	switch snap.State {
	case livequery.StateReady, livequery.StateRefreshing:
		return snap.Records, nil
	}
	// View not warm yet (or errored): hit the store directly.
	return livequery.Query(ctx, "orders", s.timeout,
		func(ctx context.Context) ([]entity.Order, error) { return s.orders.ListAll(ctx) })
}

func (s *DashboardService) snapshotItems(ctx context.Context) ([]entity.InventoryItem, error) {
	snap := s.itemView.Snapshot()
	switch snap.State {
	case livequery.StateReady, livequery.StateRefreshing:
		return snap.Records, nil
	}
	return livequery.Query(ctx, "inventory_items", s.timeout,
		func(ctx context.Context) ([]entity.InventoryItem, error) { return s.inventory.ListAll(ctx) })
}
