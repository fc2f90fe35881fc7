package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// OrdersXLSX streams the order book as a spreadsheet download.
// GET /api/v1/reports/orders.xlsx
func (h *ReportHandler) OrdersXLSX(c *gin.Context) {
	buf, err := h.svc.OrdersXLSX(c.Request.Context())
	if err != nil {
		InternalError(c, "generate report failed: "+err.Error())
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
