// Package stats holds the pure read-side derivations: raw record lists in,
// view-ready aggregates out. Every function is total: empty input yields
// a zero aggregate, never nil, and none of them touch the store.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
)

// OrderStats are the dashboard order counters. Completed merges the
// completed and delivered statuses (delivered is terminal); Delivered is
// also reported on its own so callers can split the two.
type OrderStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Delivered  int `json:"delivered"`
}

// ComputeOrderStats counts orders per status. Unknown status strings are
// normalized to pending, so Pending+InProgress+Completed always equals
// Total.
func ComputeOrderStats(orders []entity.Order) OrderStats {
	s := OrderStats{Total: len(orders)}
	for i := range orders {
		status, _ := entity.NormalizeStatus(string(orders[i].Status))
		switch status {
		case entity.StatusInProgress:
			s.InProgress++
		case entity.StatusCompleted:
			s.Completed++
		case entity.StatusDelivered:
			s.Completed++
			s.Delivered++
		default:
			s.Pending++
		}
	}
	return s
}

// CustomerSummary is one row of the customer directory derived from the
// order history.
type CustomerSummary struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	TotalOrders int    `json:"total_orders"`
}

// ComputeCustomers groups orders by customer name, in first-seen order,
// keeping the first non-empty phone number encountered.
func ComputeCustomers(orders []entity.Order) []CustomerSummary {
	index := make(map[string]int, len(orders))
	summaries := make([]CustomerSummary, 0, len(orders))
	for i := range orders {
		name := orders[i].CustomerName
		at, ok := index[name]
		if !ok {
			index[name] = len(summaries)
			summaries = append(summaries, CustomerSummary{
				Name:        name,
				PhoneNumber: orders[i].PhoneNumber,
				TotalOrders: 1,
			})
			continue
		}
		summaries[at].TotalOrders++
		if summaries[at].PhoneNumber == "" {
			summaries[at].PhoneNumber = orders[i].PhoneNumber
		}
	}
	return summaries
}

// ComputeRevenue sums order prices over orders whose due date falls in the
// given month/year. Revenue is keyed on due dates, not delivery or payment
// dates; that is the shop's existing monthly-revenue convention.
func ComputeRevenue(orders []entity.Order, month time.Month, year int) decimal.Decimal {
	total := decimal.Zero
	for i := range orders {
		due := orders[i].DueDate
		if due.Month() == month && due.Year() == year {
			total = total.Add(orders[i].Price)
		}
	}
	return total
}

// ComputeLowStock counts items at or below their reorder threshold.
func ComputeLowStock(items []entity.InventoryItem) int {
	n := 0
	for i := range items {
		if items[i].Quantity <= items[i].MinQuantity {
			n++
		}
	}
	return n
}

// ComputeDueOn filters orders due on the given day (date comparison only).
func ComputeDueOn(orders []entity.Order, day time.Time) []entity.Order {
	y, m, d := day.Date()
	due := make([]entity.Order, 0)
	for i := range orders {
		oy, om, od := orders[i].DueDate.Date()
		if oy == y && om == m && od == d {
			due = append(due, orders[i])
		}
	}
	return due
}
