package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
	"github.com/divyeshvadher/silai-sahayak/internal/testutil"
)

func setupOrderTest(t *testing.T) (*testutil.TestEnv, *event.MemoryBus) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	bus := event.NewMemoryBus()
	repos := repository.NewRepositories(db)
	svc := service.NewOrderService(repos.Order, repos.Customer, bus, zap.NewNop())
	h := NewOrderHandler(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/orders", h.List)
	api.POST("/orders", h.Create)
	api.GET("/orders/:id", h.Get)
	api.PUT("/orders/:id", h.Update)
	api.PATCH("/orders/:id/status", h.UpdateStatus)
	api.GET("/orders/:id/measurements", h.Measurements)
	api.PUT("/orders/:id/measurements", h.UpsertMeasurements)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, bus
}

func TestOrderCreateWithMeasurements(t *testing.T) {
	env, bus := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	var published []event.Event
	cancel, _ := bus.Subscribe(event.ResourceAll, func(ev event.Event) {
		published = append(published, ev)
	})
	defer cancel()

	body := map[string]interface{}{
		"customer_name": "Amit Kumar",
		"phone_number":  "9876543210",
		"garment_type":  "kurta",
		"fabric_type":   "cotton",
		"due_date":      "2026-09-20",
		"price":         "1500.00",
		"advance_paid":  "500.00",
		"measurements": []map[string]string{
			{"name": "chest", "value": "40", "unit": "in"},
			{"name": "waist", "value": "34", "unit": "in"},
		},
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/orders", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d, body %s", w.Code, w.Body.String())
	}

	var order entity.Order
	if err := env.DB.Preload("Measurements").First(&order).Error; err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if order.Status != entity.StatusPending {
		t.Errorf("new order status = %s, want pending", order.Status)
	}
	if len(order.Measurements) != 2 {
		t.Errorf("stored %d measurements, want 2", len(order.Measurements))
	}
	if order.CustomerID == "" {
		t.Error("order not linked to a customer record")
	}

	// Customer directory entry was upserted by phone.
	var customer entity.Customer
	if err := env.DB.Where("phone_number = ?", "9876543210").First(&customer).Error; err != nil {
		t.Fatalf("customer not upserted: %v", err)
	}

	// Change events went out for orders and customers.
	seen := map[string]bool{}
	for _, ev := range published {
		seen[ev.Resource] = true
	}
	if !seen["orders"] || !seen["customers"] {
		t.Errorf("published events = %v, want orders and customers", published)
	}
}

func TestOrderStatusUpdateNormalizesUnknown(t *testing.T) {
	env, _ := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	order := testutil.SeedTestOrder(t, env.DB, &entity.Order{
		ID:           "ord-001",
		CustomerName: "Priya",
		GarmentType:  "blouse",
		DueDate:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Price:        decimal.RequireFromString("800"),
		Status:       entity.StatusPending,
		CreatedBy:    "test-user-001",
	})

	w := testutil.DoRequest(env.Router, "PATCH",
		fmt.Sprintf("/api/v1/orders/%s/status", order.ID),
		map[string]string{"status": "in-progress"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update status: %d, body %s", w.Code, w.Body.String())
	}

	// Unknown values fall back to pending instead of failing.
	w = testutil.DoRequest(env.Router, "PATCH",
		fmt.Sprintf("/api/v1/orders/%s/status", order.ID),
		map[string]string{"status": "shipped"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update with unknown status: %d", w.Code)
	}

	var stored entity.Order
	env.DB.First(&stored, "id = ?", order.ID)
	if stored.Status != entity.StatusPending {
		t.Errorf("status = %s, want pending after unknown input", stored.Status)
	}
}

func TestMeasurementUpsertReplacesByName(t *testing.T) {
	env, _ := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTestOrder(t, env.DB, &entity.Order{
		ID:           "ord-002",
		CustomerName: "Ravi",
		GarmentType:  "shirt",
		DueDate:      time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Price:        decimal.RequireFromString("600"),
		Status:       entity.StatusPending,
		CreatedBy:    "test-user-001",
	})

	put := func(value string) {
		w := testutil.DoRequest(env.Router, "PUT", "/api/v1/orders/ord-002/measurements",
			map[string]interface{}{
				"measurements": []map[string]string{{"name": "chest", "value": value}},
			}, token)
		if w.Code != http.StatusOK {
			t.Fatalf("upsert measurements: %d, body %s", w.Code, w.Body.String())
		}
	}
	put("38")
	put("39") // same name updates in place, no duplicate row

	var measurements []entity.Measurement
	env.DB.Where("order_id = ?", "ord-002").Find(&measurements)
	if len(measurements) != 1 {
		t.Fatalf("got %d measurement rows, want 1", len(measurements))
	}
	if measurements[0].Value != "39" {
		t.Errorf("value = %s, want 39", measurements[0].Value)
	}
	if measurements[0].Unit != "cm" {
		t.Errorf("unit = %s, want cm default", measurements[0].Unit)
	}
}

func TestOrderListFilters(t *testing.T) {
	env, _ := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	due := time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC)
	testutil.SeedTestOrder(t, env.DB, &entity.Order{
		ID: "ord-a", CustomerName: "Amit", GarmentType: "kurta",
		DueDate: due, Price: decimal.RequireFromString("500"),
		Status: entity.StatusPending, CreatedBy: "u1",
	})
	testutil.SeedTestOrder(t, env.DB, &entity.Order{
		ID: "ord-b", CustomerName: "Priya", GarmentType: "saree blouse",
		DueDate: due.AddDate(0, 0, 1), Price: decimal.RequireFromString("900"),
		Status: entity.StatusCompleted, CreatedBy: "u1",
	})

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/orders?status=completed", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("filtered list returned %d items, want 1", len(items))
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/orders?q=kurta", nil, token)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	items = data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("keyword list returned %d items, want 1", len(items))
	}
}

func TestOrderEndpointsRequireAuth(t *testing.T) {
	env, _ := setupOrderTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/orders", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: %d, want 401", w.Code)
	}
}
