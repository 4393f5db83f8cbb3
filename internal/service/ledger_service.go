package service

import (
	"errors"

	"go-storage-hub/internal/apperr"
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService owns the per-item stock counters. Every mutation locks the
// stock row, validates the source bucket, applies both deltas in one update
// and inserts a StockMovement audit row referencing the triggering event.
type LedgerService interface {
	// MoveStockTx runs the move inside an enclosing transaction so a
	// transition's status change and its stock side effect commit together.
	MoveStockTx(tx *gorm.DB, itemID uuid.UUID, quantity int, from, to model.StockState, performedBy, movementType, refID, refType string) (*model.ItemStock, error)
	GetStock(itemID uuid.UUID) (*model.ItemStock, error)
	GetMovements(itemID uuid.UUID) ([]model.StockMovement, error)
}

type ledgerService struct {
	stockRepo repository.StockRepository
	wsHub     *ws.Hub
}

func NewLedgerService(stockRepo repository.StockRepository, hub *ws.Hub) LedgerService {
	return &ledgerService{
		stockRepo: stockRepo,
		wsHub:     hub,
	}
}

func (s *ledgerService) MoveStockTx(tx *gorm.DB, itemID uuid.UUID, quantity int, from, to model.StockState, performedBy, movementType, refID, refType string) (*model.ItemStock, error) {
	stock, err := s.stockRepo.FindByItemIDForUpdate(tx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item stock not found")
		}
		return nil, err
	}

	if err := stock.Move(from, to, quantity); err != nil {
		return nil, err
	}

	if err := s.stockRepo.Save(tx, stock); err != nil {
		return nil, err
	}

	movement := &model.StockMovement{
		ItemID:        itemID,
		MovementType:  movementType,
		FromState:     from,
		ToState:       to,
		Quantity:      quantity,
		PerformedBy:   performedBy,
		ReferenceID:   refID,
		ReferenceType: refType,
	}
	movement.CreatedBy = performedBy
	movement.UpdatedBy = performedBy
	if err := s.stockRepo.CreateMovement(tx, movement); err != nil {
		return nil, err
	}

	s.broadcastMovement(stock, movement)
	return stock, nil
}

func (s *ledgerService) broadcastMovement(stock *model.ItemStock, movement *model.StockMovement) {
	go s.wsHub.Publish(ws.Event{
		Type:   "stock_update",
		Action: movement.MovementType,
		Payload: map[string]interface{}{
			"item_id":      movement.ItemID,
			"from_state":   movement.FromState,
			"to_state":     movement.ToState,
			"quantity":     movement.Quantity,
			"in_storage":   stock.InStorage,
			"in_clearance": stock.InClearance,
			"in_transit":   stock.InTransit,
		},
	})
}

func (s *ledgerService) GetStock(itemID uuid.UUID) (*model.ItemStock, error) {
	stock, err := s.stockRepo.FindByItemID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item stock not found")
		}
		return nil, err
	}
	return stock, nil
}

func (s *ledgerService) GetMovements(itemID uuid.UUID) ([]model.StockMovement, error) {
	return s.stockRepo.FindMovementsByItem(itemID)
}
