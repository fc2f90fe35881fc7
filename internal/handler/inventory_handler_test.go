package handler

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
	"github.com/divyeshvadher/silai-sahayak/internal/testutil"
)

func setupInventoryTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewInventoryService(repos.Inventory, event.NewMemoryBus(), zap.NewNop())
	h := NewInventoryHandler(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/inventory", h.List)
	api.POST("/inventory", h.Create)
	api.GET("/inventory/alerts", h.Alerts)
	api.GET("/inventory/:id", h.Get)
	api.PATCH("/inventory/:id/quantity", h.AdjustQuantity)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedItem(t *testing.T, env *testutil.TestEnv, id string, qty, min int) {
	t.Helper()
	err := env.DB.Create(&entity.InventoryItem{
		ID: id, Name: "Cotton", Type: entity.ItemTypeFabric,
		Quantity: qty, Unit: "m", MinQuantity: min, CreatedBy: "test-user-001",
	}).Error
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func TestAdjustQuantityDeltas(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	seedItem(t, env, "item-001", 10, 5)

	// An explicit zero delta is a valid no-op, not a missing field.
	w := testutil.DoRequest(env.Router, "PATCH", "/api/v1/inventory/item-001/quantity",
		map[string]int{"delta": 0}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("zero delta: %d, body %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "PATCH", "/api/v1/inventory/item-001/quantity",
		map[string]int{"delta": -4}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("negative delta: %d, body %s", w.Code, w.Body.String())
	}

	var item entity.InventoryItem
	env.DB.First(&item, "id = ?", "item-001")
	if item.Quantity != 6 {
		t.Errorf("quantity = %d, want 6", item.Quantity)
	}

	// A delta that would cross zero is rejected whole.
	w = testutil.DoRequest(env.Router, "PATCH", "/api/v1/inventory/item-001/quantity",
		map[string]int{"delta": -7}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("underflow delta: %d, want 400", w.Code)
	}
	env.DB.First(&item, "id = ?", "item-001")
	if item.Quantity != 6 {
		t.Errorf("quantity changed to %d after rejected delta", item.Quantity)
	}

	// Omitting the field entirely is still a binding error.
	w = testutil.DoRequest(env.Router, "PATCH", "/api/v1/inventory/item-001/quantity",
		map[string]string{}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing delta: %d, want 400", w.Code)
	}
}

func TestInventoryAlerts(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	seedItem(t, env, "item-ok", 10, 5)
	seedItem(t, env, "item-low", 5, 5) // boundary counts as low

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/inventory/alerts", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("alerts: %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("alerts returned %d items, want 1", len(items))
	}
}
