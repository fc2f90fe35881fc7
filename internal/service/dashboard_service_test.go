package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/config"
	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/testutil"
)

func seedOrder(t *testing.T, repos *repository.Repositories, id, customer string, status entity.OrderStatus, price string, due time.Time) {
	t.Helper()
	err := repos.Order.Create(context.Background(), &entity.Order{
		ID:           id,
		CustomerName: customer,
		GarmentType:  "kurta",
		DueDate:      due,
		Price:        decimal.RequireFromString(price),
		Status:       status,
		CreatedBy:    "test-user-001",
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func waitForOrders(t *testing.T, svc *DashboardService, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		orders, err := svc.Orders(context.Background())
		if err == nil && len(orders) == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("dashboard never saw %d orders", want)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDashboardStatsRefreshOnChangeEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	bus := event.NewMemoryBus()

	svc := NewDashboardService(repos.Order, repos.Inventory, bus, config.LiveConfig{
		FetchTimeout: 5 * time.Second,
	}, zap.NewNop())
	t.Cleanup(svc.Close)

	now := time.Now()
	seedOrder(t, repos, "d-1", "Amit", entity.StatusPending, "500", now)
	seedOrder(t, repos, "d-2", "Priya", entity.StatusDelivered, "1200", now)

	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitForOrders(t, svc, 2)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Orders.Total != 2 || stats.Orders.Pending != 1 || stats.Orders.Completed != 1 {
		t.Errorf("order stats = %+v", stats.Orders)
	}
	if stats.TotalCustomers != 2 {
		t.Errorf("total customers = %d, want 2", stats.TotalCustomers)
	}
	if !stats.MonthlyRevenue.Equal(decimal.RequireFromString("1700")) {
		t.Errorf("monthly revenue = %s, want 1700", stats.MonthlyRevenue)
	}
	if len(stats.DueToday) != 2 {
		t.Errorf("due today = %d, want 2", len(stats.DueToday))
	}

	// A write plus its change event refreshes the view without a restart.
	seedOrder(t, repos, "d-3", "Ravi", entity.StatusInProgress, "300", now.AddDate(0, 0, 3))
	bus.Publish(context.Background(), event.Event{Resource: "orders", Action: event.ActionInsert, RecordID: "d-3"})
	waitForOrders(t, svc, 3)

	stats, err = svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats after refresh: %v", err)
	}
	if stats.Orders.InProgress != 1 {
		t.Errorf("in-progress = %d after refresh, want 1", stats.Orders.InProgress)
	}
}

func TestDashboardFallsBackBeforeStart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	bus := event.NewMemoryBus()

	svc := NewDashboardService(repos.Order, repos.Inventory, bus, config.LiveConfig{
		FetchTimeout: 5 * time.Second,
	}, zap.NewNop())
	t.Cleanup(svc.Close)

	seedOrder(t, repos, "f-1", "Amit", entity.StatusPending, "500", time.Now())

	// Views are idle; Stats must still answer via a direct query.
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats without start: %v", err)
	}
	if stats.Orders.Total != 1 {
		t.Errorf("total = %d, want 1", stats.Orders.Total)
	}
}
