package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
)

type OrderService struct {
	orders    *repository.OrderRepository
	customers *repository.CustomerRepository
	bus       event.Bus
	logger    *zap.Logger
}

func NewOrderService(orders *repository.OrderRepository, customers *repository.CustomerRepository, bus event.Bus, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, customers: customers, bus: bus, logger: logger}
}

// MeasurementInput is one measurement row on an order form.
type MeasurementInput struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
	Unit  string `json:"unit"`
}

type CreateOrderRequest struct {
	CustomerName     string             `json:"customer_name" binding:"required,min=2"`
	PhoneNumber      string             `json:"phone_number"`
	GarmentType      string             `json:"garment_type" binding:"required"`
	FabricType       string             `json:"fabric_type"`
	FabricProvidedBy string             `json:"fabric_provided_by"`
	DueDate          string             `json:"due_date" binding:"required"`
	DeliveryDate     string             `json:"delivery_date"`
	Price            decimal.Decimal    `json:"price" binding:"required"`
	AdvancePaid      decimal.Decimal    `json:"advance_paid"`
	Notes            string             `json:"notes"`
	PriorityLevel    string             `json:"priority_level"`
	Measurements     []MeasurementInput `json:"measurements"`
}

const dateLayout = "2006-01-02"

// Create writes the order and then its measurements. The two writes are
// independent (the store contract has no transaction); a failure
// on the second step surfaces as *livequery.PartialWriteError so the
// caller knows the order exists without its measurements.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, userID string) (*entity.Order, error) {
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date: %w", err)
	}
	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		d, err := time.Parse(dateLayout, req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		deliveryDate = &d
	}
	if req.Price.IsNegative() || req.AdvancePaid.IsNegative() {
		return nil, fmt.Errorf("price and advance_paid must not be negative")
	}
	if req.AdvancePaid.GreaterThan(req.Price) {
		// Overpayment is accepted (refund tracking), but worth noticing.
		s.logger.Warn("advance exceeds order price",
			zap.String("customer", req.CustomerName),
			zap.String("advance", req.AdvancePaid.String()),
			zap.String("price", req.Price.String()))
	}

	priority, ok := entity.NormalizePriority(req.PriorityLevel)
	if !ok && req.PriorityLevel != "" {
		s.logger.Warn("unknown priority level, using normal",
			zap.String("priority_level", req.PriorityLevel))
	}
	fabricBy := req.FabricProvidedBy
	if fabricBy != entity.FabricByTailor {
		fabricBy = entity.FabricByCustomer
	}

	customerID := s.linkCustomer(ctx, req.CustomerName, req.PhoneNumber, userID)

	order := &entity.Order{
		ID:               uuid.New().String(),
		CustomerID:       customerID,
		CustomerName:     req.CustomerName,
		PhoneNumber:      req.PhoneNumber,
		GarmentType:      req.GarmentType,
		FabricType:       req.FabricType,
		FabricProvidedBy: fabricBy,
		DueDate:          dueDate,
		DeliveryDate:     deliveryDate,
		Price:            req.Price,
		AdvancePaid:      req.AdvancePaid,
		Status:           entity.StatusPending,
		PriorityLevel:    priority,
		Notes:            req.Notes,
		CreatedBy:        userID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, &livequery.WriteError{Resource: "orders", Op: "insert", Err: err}
	}

	if len(req.Measurements) > 0 {
		if err := s.writeMeasurements(ctx, order.ID, req.Measurements); err != nil {
			return order, &livequery.PartialWriteError{
				Resource: "orders",
				Done:     []string{"order"},
				Failed:   "measurements",
				Err:      err,
			}
		}
	}

	s.publish(ctx, "orders", event.ActionInsert, order.ID)
	return order, nil
}

type UpdateOrderRequest struct {
	CustomerName     string             `json:"customer_name"`
	PhoneNumber      string             `json:"phone_number"`
	GarmentType      string             `json:"garment_type"`
	FabricType       string             `json:"fabric_type"`
	FabricProvidedBy string             `json:"fabric_provided_by"`
	DueDate          string             `json:"due_date"`
	DeliveryDate     string             `json:"delivery_date"`
	Price            *decimal.Decimal   `json:"price"`
	AdvancePaid      *decimal.Decimal   `json:"advance_paid"`
	Notes            *string            `json:"notes"`
	PriorityLevel    string             `json:"priority_level"`
	Measurements     []MeasurementInput `json:"measurements"`
}

// Update applies the edit-dialog fields that were provided, then upserts
// measurements. Same partial-write semantics as Create.
func (s *OrderService) Update(ctx context.Context, id string, req UpdateOrderRequest) (*entity.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "orders", Err: err}
	}

	if req.CustomerName != "" {
		order.CustomerName = req.CustomerName
	}
	if req.PhoneNumber != "" {
		order.PhoneNumber = req.PhoneNumber
	}
	if req.GarmentType != "" {
		order.GarmentType = req.GarmentType
	}
	if req.FabricType != "" {
		order.FabricType = req.FabricType
	}
	if req.FabricProvidedBy == entity.FabricByCustomer || req.FabricProvidedBy == entity.FabricByTailor {
		order.FabricProvidedBy = req.FabricProvidedBy
	}
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %w", err)
		}
		order.DueDate = d
	}
	if req.DeliveryDate != "" {
		d, err := time.Parse(dateLayout, req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		order.DeliveryDate = &d
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative")
		}
		order.Price = *req.Price
	}
	if req.AdvancePaid != nil {
		if req.AdvancePaid.IsNegative() {
			return nil, fmt.Errorf("advance_paid must not be negative")
		}
		order.AdvancePaid = *req.AdvancePaid
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.PriorityLevel != "" {
		priority, ok := entity.NormalizePriority(req.PriorityLevel)
		if !ok {
			s.logger.Warn("unknown priority level, using normal",
				zap.String("priority_level", req.PriorityLevel))
		}
		order.PriorityLevel = priority
	}
	if order.AdvancePaid.GreaterThan(order.Price) {
		s.logger.Warn("advance exceeds order price",
			zap.String("order_id", order.ID),
			zap.String("advance", order.AdvancePaid.String()),
			zap.String("price", order.Price.String()))
	}

	// Reload below would drag stale associations into Save.
	order.Measurements = nil
	order.Customer = nil

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, &livequery.WriteError{Resource: "orders", Op: "update", Err: err}
	}

	if len(req.Measurements) > 0 {
		if err := s.writeMeasurements(ctx, order.ID, req.Measurements); err != nil {
			return order, &livequery.PartialWriteError{
				Resource: "orders",
				Done:     []string{"order"},
				Failed:   "measurements",
				Err:      err,
			}
		}
	}

	s.publish(ctx, "orders", event.ActionUpdate, order.ID)
	return order, nil
}

// UpdateStatus moves an order through its lifecycle. Unknown raw values
// normalize to pending and are logged.
func (s *OrderService) UpdateStatus(ctx context.Context, id, rawStatus string) (*entity.Order, error) {
	status, ok := entity.NormalizeStatus(rawStatus)
	if !ok {
		s.logger.Warn("unknown order status, using pending",
			zap.String("order_id", id),
			zap.String("status", rawStatus))
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, &livequery.WriteError{Resource: "orders", Op: "update", Err: err}
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "orders", Err: err}
	}
	s.publish(ctx, "orders", event.ActionUpdate, id)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.Order, int64, error) {
	orders, total, err := s.orders.List(ctx, params)
	if err != nil {
		return nil, 0, &livequery.FetchError{Resource: "orders", Err: err}
	}
	return orders, total, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "orders", Err: err}
	}
	return order, nil
}

func (s *OrderService) Measurements(ctx context.Context, orderID string) ([]entity.Measurement, error) {
	measurements, err := s.orders.ListMeasurements(ctx, orderID)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "measurements", Err: err}
	}
	return measurements, nil
}

// UpsertMeasurements replaces measurement values for an order, keyed on
// (order_id, name).
func (s *OrderService) UpsertMeasurements(ctx context.Context, orderID string, inputs []MeasurementInput) ([]entity.Measurement, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, &livequery.FetchError{Resource: "orders", Err: err}
	}
	if err := s.writeMeasurements(ctx, orderID, inputs); err != nil {
		return nil, &livequery.WriteError{Resource: "measurements", Op: "upsert", Err: err}
	}
	s.publish(ctx, "measurements", event.ActionUpdate, orderID)
	return s.orders.ListMeasurements(ctx, orderID)
}

func (s *OrderService) writeMeasurements(ctx context.Context, orderID string, inputs []MeasurementInput) error {
	measurements := make([]entity.Measurement, 0, len(inputs))
	for _, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = "cm"
		}
		measurements = append(measurements, entity.Measurement{
			ID:      uuid.New().String(),
			OrderID: orderID,
			Name:    in.Name,
			Value:   in.Value,
			Unit:    unit,
		})
	}
	return s.orders.UpsertMeasurements(ctx, measurements)
}

// linkCustomer upserts the customer directory entry keyed on phone. An
// order without a phone stays unlinked (grouped by name in the directory
// derivation instead).
func (s *OrderService) linkCustomer(ctx context.Context, name, phone, userID string) string {
	if phone == "" {
		return ""
	}
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        name,
		PhoneNumber: phone,
		CreatedBy:   userID,
	}
	if err := s.customers.Upsert(ctx, customer); err != nil {
		s.logger.Warn("customer upsert failed, order left unlinked",
			zap.String("phone", phone),
			zap.Error(err))
		return ""
	}
	linked, err := s.customers.GetByPhone(ctx, phone)
	if err != nil {
		return ""
	}
	s.publish(ctx, "customers", event.ActionUpdate, linked.ID)
	return linked.ID
}

func (s *OrderService) publish(ctx context.Context, resource string, action event.Action, id string) {
	if err := s.bus.Publish(ctx, event.Event{Resource: resource, Action: action, RecordID: id}); err != nil {
		s.logger.Warn("publish change event failed",
			zap.String("resource", resource),
			zap.Error(err))
	}
}
