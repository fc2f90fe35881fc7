package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats returns the home-screen aggregates.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		if livequery.IsTimeout(err) {
			Error(c, 50400, "dashboard data fetch timed out")
			return
		}
		InternalError(c, "compute dashboard stats failed: "+err.Error())
		return
	}
	Success(c, stats)
}

// Orders returns the live order snapshot backing the dashboard list.
// GET /api/v1/dashboard/orders
func (h *DashboardHandler) Orders(c *gin.Context) {
	orders, err := h.svc.Orders(c.Request.Context())
	if err != nil {
		if livequery.IsTimeout(err) {
			Error(c, 50400, "order data fetch timed out")
			return
		}
		InternalError(c, "fetch orders failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": orders})
}
