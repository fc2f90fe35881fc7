package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/testutil"
)

// ListAll must be a pure read: calling it twice with no writes in
// between returns the same rows in the same order.
func TestOrderListAllRepeatable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	base := time.Now().AddDate(0, 0, 3)
	for i := 0; i < 5; i++ {
		testutil.SeedTestOrder(t, db, &entity.Order{
			ID:           fmt.Sprintf("order-%03d", i),
			CustomerName: fmt.Sprintf("Customer %d", i),
			GarmentType:  "blouse",
			DueDate:      base.AddDate(0, 0, i),
			Price:        decimal.NewFromInt(int64(500 + i*100)),
			Status:       entity.StatusPending,
			CreatedBy:    "test-user-001",
		})
	}

	first, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("first ListAll: %v", err)
	}
	second, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("second ListAll: %v", err)
	}

	if len(first) != 5 || len(second) != len(first) {
		t.Fatalf("got %d then %d orders, want 5 both times", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("row %d: id %q then %q", i, first[i].ID, second[i].ID)
		}
		if !first[i].Price.Equal(second[i].Price) {
			t.Errorf("row %d: price %s then %s", i, first[i].Price, second[i].Price)
		}
		if first[i].Status != second[i].Status {
			t.Errorf("row %d: status %q then %q", i, first[i].Status, second[i].Status)
		}
	}
}
