package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
)

type ReportService struct {
	orders *repository.OrderRepository
	logger *zap.Logger
}

func NewReportService(orders *repository.OrderRepository, logger *zap.Logger) *ReportService {
	return &ReportService{orders: orders, logger: logger}
}

// OrdersXLSX renders the full order book as a spreadsheet.
func (s *ReportService) OrdersXLSX(ctx context.Context) (*bytes.Buffer, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "orders", Err: err}
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Customer", "Phone", "Garment", "Fabric", "Fabric By",
		"Due Date", "Delivery Date", "Price", "Advance", "Balance", "Status", "Priority", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	const dateFmt = "2006-01-02"
	for row, o := range orders {
		delivery := ""
		if o.DeliveryDate != nil {
			delivery = o.DeliveryDate.Format(dateFmt)
		}
		values := []interface{}{
			o.ID,
			o.CustomerName,
			o.PhoneNumber,
			o.GarmentType,
			o.FabricType,
			o.FabricProvidedBy,
			o.DueDate.Format(dateFmt),
			delivery,
			o.Price.InexactFloat64(),
			o.AdvancePaid.InexactFloat64(),
			o.Price.Sub(o.AdvancePaid).InexactFloat64(),
			string(o.Status),
			string(o.PriorityLevel),
			o.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("orders report generated", zap.Int("rows", len(orders)))
	return buf, nil
}
