package service

import (
	"fmt"
	"time"

	"go-storage-hub/internal/apperr"
	"go-storage-hub/internal/authz"
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/internal/ws"
	"go-storage-hub/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClearanceService records out-of-normal-flow dispositions of stock (loss,
// damage, recall, seeding, obsolescence) and their optional reversal.
type ClearanceService interface {
	Create(actor authz.Actor, req *CreateClearanceRequest) (*model.ItemClearance, error)
	RevertSeeding(actor authz.Actor, clearanceID uuid.UUID, restoreQuantity bool) (*model.ItemClearance, error)
	RevertQuantity(actor authz.Actor, req *RevertQuantityRequest) (*model.ItemStock, error)
	ListSeeding(actor authz.Actor, status string, from, to *time.Time) ([]model.ItemClearance, error)
}

type CreateClearanceRequest struct {
	ItemID          uuid.UUID  `json:"item_id" validate:"uuid_required"`
	Kind            string     `json:"kind" validate:"required,oneof=seeding damaged expired obsolete recall other"`
	Quantity        int        `json:"quantity" validate:"required,gt=0"`
	Reason          string     `json:"reason" validate:"required"`
	BorrowRequestID *uuid.UUID `json:"borrow_request_id,omitempty"`
}

type RevertQuantityRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
	Reason   string    `json:"reason"`
}

type clearanceService struct {
	clearanceRepo repository.ClearanceRepository
	itemRepo      repository.ItemRepository
	requestRepo   repository.RequestRepository
	ledger        LedgerService
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewClearanceService(clearanceRepo repository.ClearanceRepository, itemRepo repository.ItemRepository, requestRepo repository.RequestRepository, ledger LedgerService, db *gorm.DB, hub *ws.Hub) ClearanceService {
	return &clearanceService{
		clearanceRepo: clearanceRepo,
		itemRepo:      itemRepo,
		requestRepo:   requestRepo,
		ledger:        ledger,
		db:            db,
		wsHub:         hub,
	}
}

// Create moves quantity from storage into the clearance bucket and records
// the disposition. Legacy items without a stock record get a zero-stock
// disposition row only.
func (s *clearanceService) Create(actor authz.Actor, req *CreateClearanceRequest) (*model.ItemClearance, error) {
	if !authz.CanPerform(actor, authz.ClearanceCreate, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to create clearance records")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.PreconditionFailed(
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	kind := model.ClearanceKind(req.Kind)

	var clearance *model.ItemClearance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByIDForUpdate(tx, req.ItemID)
		if err != nil {
			return apperr.NotFound("item not found")
		}

		clearance = &model.ItemClearance{
			ItemID:    item.ID,
			Kind:      kind,
			Quantity:  req.Quantity,
			Reason:    req.Reason,
			Status:    model.ClearanceStatusActive,
			ClearedBy: actor.UserID,
		}
		clearance.CreatedBy = actor.UserID.String()
		clearance.UpdatedBy = actor.UserID.String()

		if kind == model.ClearanceSeeding {
			original := req.Quantity
			clearance.OriginalQuantity = &original
			clearance.BorrowRequestID = req.BorrowRequestID

			// A seeded item is out of circulation until a superadmin reverts.
			item.Status = model.ItemStatusArchived
			item.UpdatedBy = actor.UserID.String()
			if err := s.itemRepo.Save(tx, item); err != nil {
				return err
			}
		}

		if err := s.clearanceRepo.Create(tx, clearance); err != nil {
			return err
		}

		_, err = s.ledger.MoveStockTx(tx, item.ID, req.Quantity,
			model.StockStateStorage, model.StockStateClearance,
			actor.UserID.String(), model.MovementClearanceOut, clearance.ID.String(), "item_clearance")
		if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.clearanceRepo.FindByID(clearance.ID)
}

// RevertSeeding undoes a seeding disposition: the item becomes available
// again, optionally with its legacy inventory restored, and any linked borrow
// request reactivates. The clearance record itself is marked reverted.
func (s *clearanceService) RevertSeeding(actor authz.Actor, clearanceID uuid.UUID, restoreQuantity bool) (*model.ItemClearance, error) {
	if !authz.CanPerform(actor, authz.ClearanceRevertSeeding, authz.Target{}) {
		return nil, apperr.Forbidden("only a superadmin may revert seeding records")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		clearance, err := s.clearanceRepo.FindByIDForUpdate(tx, clearanceID)
		if err != nil {
			return apperr.NotFound("clearance record not found")
		}
		if clearance.Kind != model.ClearanceSeeding {
			return apperr.PreconditionFailed("clearance record is not a seeding record")
		}
		if clearance.Status != model.ClearanceStatusActive {
			return apperr.PreconditionFailed("clearance record already reverted")
		}

		item, err := s.itemRepo.FindByIDForUpdate(tx, clearance.ItemID)
		if err != nil {
			return apperr.NotFound("item not found")
		}

		item.Status = model.ItemStatusAvailable
		if restoreQuantity && clearance.OriginalQuantity != nil {
			item.Inventory += *clearance.OriginalQuantity
		}
		item.UpdatedBy = actor.UserID.String()
		if err := s.itemRepo.Save(tx, item); err != nil {
			return err
		}

		if clearance.BorrowRequestID != nil {
			borrow, err := s.requestRepo.FindBorrowByIDForUpdate(tx, *clearance.BorrowRequestID)
			if err == nil {
				borrow.Status = model.BorrowStatusActive
				borrow.UpdatedBy = actor.UserID.String()
				if err := s.requestRepo.SaveBorrow(tx, borrow); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		clearance.Status = model.ClearanceStatusReverted
		clearance.RevertedBy = &actor.UserID
		clearance.RevertedAt = &now
		clearance.UpdatedBy = actor.UserID.String()
		return s.clearanceRepo.Save(tx, clearance)
	})
	if err != nil {
		return nil, err
	}

	s.publishClearanceEvent("seeding_reverted", clearanceID)
	return s.clearanceRepo.FindByID(clearanceID)
}

// RevertQuantity moves quantity back from the clearance bucket to storage,
// recording a negative-quantity audit row. Underflow fails before any write.
func (s *clearanceService) RevertQuantity(actor authz.Actor, req *RevertQuantityRequest) (*model.ItemStock, error) {
	if !authz.CanPerform(actor, authz.ClearanceRevertQuantity, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to revert clearance quantity")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.PreconditionFailed(
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	var stock *model.ItemStock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		stock, txErr = s.ledger.MoveStockTx(tx, req.ItemID, req.Quantity,
			model.StockStateClearance, model.StockStateStorage,
			actor.UserID.String(), model.MovementClearanceBack, req.ItemID.String(), "item")
		if txErr != nil {
			return txErr
		}

		reason := req.Reason
		if reason == "" {
			reason = "reverted from clearance"
		}
		audit := &model.ItemClearance{
			ItemID:    req.ItemID,
			Kind:      model.ClearanceOther,
			Quantity:  -req.Quantity, // signed: negative marks a revert
			Reason:    reason,
			Status:    model.ClearanceStatusActive,
			ClearedBy: actor.UserID,
		}
		audit.CreatedBy = actor.UserID.String()
		audit.UpdatedBy = actor.UserID.String()
		return s.clearanceRepo.Create(tx, audit)
	})
	if err != nil {
		return nil, err
	}

	return stock, nil
}

func (s *clearanceService) ListSeeding(actor authz.Actor, status string, from, to *time.Time) ([]model.ItemClearance, error) {
	if !authz.CanPerform(actor, authz.ClearanceListSeeding, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to list seeding records")
	}
	return s.clearanceRepo.ListByKind(model.ClearanceSeeding, status, from, to)
}

func (s *clearanceService) publishClearanceEvent(action string, clearanceID uuid.UUID) {
	go s.wsHub.Publish(ws.Event{
		Type:   "clearance_update",
		Action: action,
		Payload: map[string]interface{}{
			"clearance_id": clearanceID,
		},
	})
}
