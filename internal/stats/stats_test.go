package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
)

func order(customer, phone string, status entity.OrderStatus, price string, due time.Time) entity.Order {
	return entity.Order{
		CustomerName: customer,
		PhoneNumber:  phone,
		Status:       status,
		Price:        decimal.RequireFromString(price),
		DueDate:      due,
	}
}

func TestComputeOrderStats(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		order("Amit", "111", entity.StatusPending, "500", due),
		order("Priya", "222", entity.StatusInProgress, "800", due),
		order("Amit", "111", entity.StatusCompleted, "300", due),
		order("Ravi", "333", entity.StatusDelivered, "1200", due),
	}

	s := ComputeOrderStats(orders)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 2, s.Completed) // delivered merges into completed
	assert.Equal(t, 1, s.Delivered)
	assert.Equal(t, s.Total, s.Pending+s.InProgress+s.Completed)
}

func TestComputeOrderStatsUnknownStatusCountsAsPending(t *testing.T) {
	orders := []entity.Order{
		{Status: "shipped"},
		{Status: ""},
	}
	s := ComputeOrderStats(orders)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, s.Total, s.Pending+s.InProgress+s.Completed)
}

func TestComputeOrderStatsEmpty(t *testing.T) {
	s := ComputeOrderStats(nil)
	assert.Equal(t, OrderStats{}, s)
}

func TestComputeCustomersGroupsByNameFirstSeen(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		order("Amit", "", entity.StatusPending, "500", due),
		order("Priya", "222", entity.StatusPending, "800", due),
		order("Amit", "111", entity.StatusCompleted, "300", due),
		order("Amit", "999", entity.StatusPending, "200", due),
	}

	summaries := ComputeCustomers(orders)
	assert.Len(t, summaries, 2)
	assert.Equal(t, "Amit", summaries[0].Name)
	assert.Equal(t, 3, summaries[0].TotalOrders)
	// First non-empty phone wins.
	assert.Equal(t, "111", summaries[0].PhoneNumber)
	assert.Equal(t, "Priya", summaries[1].Name)
	assert.Equal(t, 1, summaries[1].TotalOrders)
}

func TestComputeCustomersEmpty(t *testing.T) {
	summaries := ComputeCustomers(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestComputeRevenueFiltersByDueMonth(t *testing.T) {
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		order("Amit", "111", entity.StatusPending, "500.50", march),
		order("Priya", "222", entity.StatusCompleted, "800", march),
		order("Ravi", "333", entity.StatusPending, "1200", april),
	}

	total := ComputeRevenue(orders, time.March, 2026)
	assert.True(t, total.Equal(decimal.RequireFromString("1300.50")), "got %s", total)

	none := ComputeRevenue(orders, time.January, 2026)
	assert.True(t, none.IsZero())
}

func TestComputeLowStock(t *testing.T) {
	items := []entity.InventoryItem{
		{Name: "Cotton", Quantity: 10, MinQuantity: 5},
		{Name: "Silk", Quantity: 2, MinQuantity: 5},
		{Name: "Buttons", Quantity: 5, MinQuantity: 5}, // boundary is low
	}
	assert.Equal(t, 2, ComputeLowStock(items))
	assert.Equal(t, 0, ComputeLowStock(nil))
}

func TestComputeDueOnComparesDateOnly(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		order("Amit", "111", entity.StatusPending, "500", time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)),
		order("Priya", "222", entity.StatusPending, "800", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)),
	}

	due := ComputeDueOn(orders, day)
	assert.Len(t, due, 1)
	assert.Equal(t, "Amit", due[0].CustomerName)

	assert.Empty(t, ComputeDueOn(nil, day))
}
