package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List returns orders with optional filters.
// GET /api/v1/orders?status=&priority=&customer_id=&q=&due_on=&page=&page_size=
func (h *OrderHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.OrderListParams{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		CustomerID: c.Query("customer_id"),
		Keyword:    c.Query("q"),
		Page:       page,
		Size:       size,
	}
	if raw := c.Query("due_on"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			BadRequest(c, "invalid due_on date")
			return
		}
		params.DueOn = &day
	}
	orders, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "list orders failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": orders, "pagination": NewPagination(page, size, total)})
}

// Create takes a new order with optional measurements.
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	order, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		var partial *livequery.PartialWriteError
		if errors.As(err, &partial) {
			// The order row exists; only the measurements write failed.
			c.JSON(207, Response{
				Code:    50010,
				Message: partial.Error(),
				Data:    gin.H{"order": order, "completed_steps": partial.Done},
			})
			return
		}
		var write *livequery.WriteError
		if errors.As(err, &write) {
			InternalError(c, "create order failed: "+err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, gin.H{"order": order})
}

// Get returns one order with its measurements and linked customer.
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "order not found")
			return
		}
		InternalError(c, "get order failed: "+err.Error())
		return
	}
	Success(c, gin.H{"order": order})
}

// Update edits order fields and upserts measurements.
// PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	order, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "order not found")
			return
		}
		var partial *livequery.PartialWriteError
		if errors.As(err, &partial) {
			c.JSON(207, Response{
				Code:    50010,
				Message: partial.Error(),
				Data:    gin.H{"order": order, "completed_steps": partial.Done},
			})
			return
		}
		var write *livequery.WriteError
		if errors.As(err, &write) {
			InternalError(c, "update order failed: "+err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{"order": order})
}

// UpdateStatus moves an order through its lifecycle.
// PATCH /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "order not found")
			return
		}
		InternalError(c, "update status failed: "+err.Error())
		return
	}
	Success(c, gin.H{"order": order})
}

// Measurements lists the measurements on an order.
// GET /api/v1/orders/:id/measurements
func (h *OrderHandler) Measurements(c *gin.Context) {
	measurements, err := h.svc.Measurements(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, "list measurements failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": measurements})
}

// UpsertMeasurements replaces measurement values keyed on name.
// PUT /api/v1/orders/:id/measurements
func (h *OrderHandler) UpsertMeasurements(c *gin.Context) {
	var req struct {
		Measurements []service.MeasurementInput `json:"measurements" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	measurements, err := h.svc.UpsertMeasurements(c.Request.Context(), c.Param("id"), req.Measurements)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "order not found")
			return
		}
		InternalError(c, "upsert measurements failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": measurements})
}
