package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List returns the customers table.
// GET /api/v1/customers?q=&page=&page_size=
func (h *CustomerHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	customers, total, err := h.svc.List(c.Request.Context(), repository.CustomerListParams{
		Keyword: c.Query("q"),
		Page:    page,
		Size:    size,
	})
	if err != nil {
		InternalError(c, "list customers failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": customers, "pagination": NewPagination(page, size, total)})
}

// Get returns one customer with their open orders.
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "customer not found")
			return
		}
		InternalError(c, "get customer failed: "+err.Error())
		return
	}
	Success(c, gin.H{"customer": customer})
}

// Directory returns the name-grouped customer summaries derived from the
// order history.
// GET /api/v1/customers/directory
func (h *CustomerHandler) Directory(c *gin.Context) {
	summaries, err := h.svc.Directory(c.Request.Context())
	if err != nil {
		InternalError(c, "derive customer directory failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": summaries})
}
