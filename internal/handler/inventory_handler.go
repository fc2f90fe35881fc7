package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List returns inventory items with optional filters.
// GET /api/v1/inventory?type=&q=&low_stock=&page=&page_size=
func (h *InventoryHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	items, total, err := h.svc.List(c.Request.Context(), repository.InventoryListParams{
		Type:     c.Query("type"),
		Keyword:  c.Query("q"),
		LowStock: c.Query("low_stock") == "true",
		Page:     page,
		Size:     size,
	})
	if err != nil {
		InternalError(c, "list inventory failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items, "pagination": NewPagination(page, size, total)})
}

// Create adds a new stocked item.
// POST /api/v1/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, gin.H{"item": item})
}

// Get returns one inventory item.
// GET /api/v1/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "item not found")
			return
		}
		InternalError(c, "get item failed: "+err.Error())
		return
	}
	Success(c, gin.H{"item": item, "stock_status": item.Status()})
}

// Update edits item metadata.
// PUT /api/v1/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "item not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{"item": item})
}

// AdjustQuantity applies a signed stock delta.
// PATCH /api/v1/inventory/:id/quantity
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	// Pointer so an explicit zero delta binds instead of reading as a
	// missing field.
	var req struct {
		Delta *int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	item, err := h.svc.AdjustQuantity(c.Request.Context(), c.Param("id"), *req.Delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "item not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{"item": item, "stock_status": item.Status()})
}

// Alerts lists items at or below their reorder threshold.
// GET /api/v1/inventory/alerts
func (h *InventoryHandler) Alerts(c *gin.Context) {
	alerts, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		InternalError(c, "list alerts failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": alerts})
}
