package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/event"
	"github.com/divyeshvadher/silai-sahayak/internal/livequery"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
)

type InventoryService struct {
	items  *repository.InventoryRepository
	bus    event.Bus
	logger *zap.Logger
}

func NewInventoryService(items *repository.InventoryRepository, bus event.Bus, logger *zap.Logger) *InventoryService {
	return &InventoryService{items: items, bus: bus, logger: logger}
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	Unit        string `json:"unit"`
	MinQuantity int    `json:"min_quantity" binding:"min=0"`
}

var itemTypes = map[string]bool{
	entity.ItemTypeFabric:    true,
	entity.ItemTypeThread:    true,
	entity.ItemTypeButton:    true,
	entity.ItemTypeZipper:    true,
	entity.ItemTypeAccessory: true,
}

func (s *InventoryService) List(ctx context.Context, params repository.InventoryListParams) ([]entity.InventoryItem, int64, error) {
	items, total, err := s.items.List(ctx, params)
	if err != nil {
		return nil, 0, &livequery.FetchError{Resource: "inventory_items", Err: err}
	}
	return items, total, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "inventory_items", Err: err}
	}
	return item, nil
}

func (s *InventoryService) Create(ctx context.Context, req CreateItemRequest, userID string) (*entity.InventoryItem, error) {
	if !itemTypes[req.Type] {
		return nil, fmt.Errorf("unknown item type %q", req.Type)
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		Quantity:    req.Quantity,
		Unit:        unit,
		MinQuantity: req.MinQuantity,
		CreatedBy:   userID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, &livequery.WriteError{Resource: "inventory_items", Op: "insert", Err: err}
	}
	s.publish(ctx, event.ActionInsert, item.ID)
	return item, nil
}

type UpdateItemRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Unit        string `json:"unit"`
	MinQuantity *int   `json:"min_quantity"`
}

func (s *InventoryService) Update(ctx context.Context, id string, req UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "inventory_items", Err: err}
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Type != "" {
		if !itemTypes[req.Type] {
			return nil, fmt.Errorf("unknown item type %q", req.Type)
		}
		item.Type = req.Type
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.MinQuantity != nil {
		if *req.MinQuantity < 0 {
			return nil, fmt.Errorf("min_quantity must not be negative")
		}
		item.MinQuantity = *req.MinQuantity
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, &livequery.WriteError{Resource: "inventory_items", Op: "update", Err: err}
	}
	s.publish(ctx, event.ActionUpdate, item.ID)
	return item, nil
}

// AdjustQuantity applies a signed delta to an item's stock. An adjustment
// that would drop the quantity below zero is rejected whole.
func (s *InventoryService) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "inventory_items", Err: err}
	}
	next := item.Quantity + delta
	if next < 0 {
		return nil, fmt.Errorf("quantity cannot go below zero: have %d, delta %d", item.Quantity, delta)
	}
	item.Quantity = next
	if err := s.items.Update(ctx, item); err != nil {
		return nil, &livequery.WriteError{Resource: "inventory_items", Op: "update", Err: err}
	}
	if item.LowStock() {
		s.logger.Info("inventory item below reorder threshold",
			zap.String("item_id", item.ID),
			zap.String("name", item.Name),
			zap.Int("quantity", item.Quantity),
			zap.Int("min_quantity", item.MinQuantity))
	}
	s.publish(ctx, event.ActionUpdate, item.ID)
	return item, nil
}

// Alerts lists items at or below their reorder threshold.
func (s *InventoryService) Alerts(ctx context.Context) ([]entity.InventoryItem, error) {
	alerts, err := s.items.GetAlerts(ctx)
	if err != nil {
		return nil, &livequery.FetchError{Resource: "inventory_items", Err: err}
	}
	return alerts, nil
}

func (s *InventoryService) publish(ctx context.Context, action event.Action, id string) {
	if err := s.bus.Publish(ctx, event.Event{Resource: "inventory_items", Action: action, RecordID: id}); err != nil {
		s.logger.Warn("publish change event failed",
			zap.String("resource", "inventory_items"),
			zap.Error(err))
	}
}
