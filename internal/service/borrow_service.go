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

// BorrowService governs the borrow-request lifecycle. The dual-approval
// pipeline runs manager gate (department-scoped) then storage gate; the
// legacy single-stage flow reserves an ItemSize counter at creation and
// restores it on rejection. Every transition re-verifies the expected
// predecessor status under a row lock before writing.
type BorrowService interface {
	Create(actor authz.Actor, req *CreateBorrowRequest) (*model.BorrowRequest, error)
	List(actor authz.Actor, status string) ([]model.BorrowRequest, error)
	Get(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error)
	ManagerApprove(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error)
	ManagerReject(actor authz.Actor, id uuid.UUID, reason string) (*model.BorrowRequest, error)
	StorageApprove(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error)
	StorageReject(actor authz.Actor, id uuid.UUID, reason string) (*model.BorrowRequest, error)
	LegacyReject(actor authz.Actor, id uuid.UUID, reason string) (*model.BorrowRequest, error)
	RequestReturn(actor authz.Actor, id uuid.UUID, req *ReturnDetails) (*model.ReturnRequest, error)
	ApproveReturn(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error)
	Receive(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error)
}

type CreateBorrowRequest struct {
	ItemID     uuid.UUID  `json:"item_id" validate:"uuid_required"`
	ItemSizeID *uuid.UUID `json:"item_size_id,omitempty"`
	Quantity   int        `json:"quantity" validate:"required,gt=0"`
	Purpose    string     `json:"purpose"`
}

type ReturnDetails struct {
	ReturnCondition string `json:"return_condition"`
	ReturnNotes     string `json:"return_notes"`
	Reason          string `json:"reason"`
}

type borrowService struct {
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	settingRepo repository.SettingRepository
	ledger      LedgerService
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewBorrowService(requestRepo repository.RequestRepository, itemRepo repository.ItemRepository, userRepo repository.UserRepository, settingRepo repository.SettingRepository, ledger LedgerService, db *gorm.DB, hub *ws.Hub) BorrowService {
	return &borrowService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		settingRepo: settingRepo,
		ledger:      ledger,
		db:          db,
		wsHub:       hub,
	}
}

// Create opens a borrow request. A request against an ItemSize takes the
// legacy single-stage path and reserves the size counter up front; all other
// requests enter the dual-approval pipeline at pending_manager.
func (s *borrowService) Create(actor authz.Actor, req *CreateBorrowRequest) (*model.BorrowRequest, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.PreconditionFailed(
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	item, err := s.itemRepo.FindByID(req.ItemID)
	if err != nil {
		return nil, apperr.NotFound("item not found")
	}
	if item.Status != model.ItemStatusAvailable && item.Status != model.ItemStatusActive {
		return nil, apperr.PreconditionFailed("item is not available for borrowing")
	}

	var request *model.BorrowRequest
	err = s.db.Transaction(func(tx *gorm.DB) error {
		status := model.BorrowStatusPendingManager
		if req.ItemSizeID != nil {
			if _, err := s.itemRepo.FindSizeByID(*req.ItemSizeID); err != nil {
				return apperr.NotFound("item size not found")
			}
			reserved, err := s.itemRepo.ReserveSize(tx, *req.ItemSizeID, req.Quantity)
			if err != nil {
				return err
			}
			if !reserved {
				return apperr.InsufficientQuantity("insufficient available quantity for size")
			}
			status = model.BorrowStatusPending
		}

		request = &model.BorrowRequest{
			ItemID:      req.ItemID,
			ItemSizeID:  req.ItemSizeID,
			RequesterID: actor.UserID,
			Quantity:    req.Quantity,
			Purpose:     req.Purpose,
			Status:      status,
		}
		request.CreatedBy = actor.UserID.String()
		request.UpdatedBy = actor.UserID.String()
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("borrow_created", request.ID, request.Status)
	return s.requestRepo.FindBorrowByID(request.ID)
}

// List scopes results by role: plain users see their own requests, managers
// their department's, storage roles and admins everything.
func (s *borrowService) List(actor authz.Actor, status string) ([]model.BorrowRequest, error) {
	switch actor.Role {
	case model.RoleUser:
		return s.requestRepo.FindBorrowsByRequester(actor.UserID)
	case model.RoleManager:
		if actor.DepartmentID == nil {
			return nil, apperr.Forbidden("manager has no department")
		}
		return s.requestRepo.FindBorrowsByDepartment(*actor.DepartmentID)
	default:
		return s.requestRepo.FindAllBorrows(status)
	}
}

func (s *borrowService) Get(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error) {
	request, err := s.requestRepo.FindBorrowByID(id)
	if err != nil {
		return nil, apperr.NotFound("borrow request not found")
	}
	if request.RequesterID != actor.UserID && actor.Role == model.RoleUser {
		return nil, apperr.Forbidden("not allowed to view this borrow request")
	}
	return request, nil
}

// managerTarget resolves the requester's department via a fresh user-table
// read; the caller's department comes from a second read rather than the
// token so stale claims cannot widen scope.
func (s *borrowService) managerTarget(actor authz.Actor, request *model.BorrowRequest) (authz.Actor, authz.Target, error) {
	requester, err := s.userRepo.FindByID(request.RequesterID)
	if err != nil {
		return actor, authz.Target{}, apperr.NotFound("requester not found")
	}
	caller, err := s.userRepo.FindByID(actor.UserID)
	if err != nil {
		return actor, authz.Target{}, apperr.Unauthorized("caller not found")
	}
	fresh := authz.Actor{UserID: caller.ID, Role: caller.Role, DepartmentID: caller.DepartmentID}
	target := authz.Target{OwnerID: requester.ID, OwnerDepartmentID: requester.DepartmentID}
	return fresh, target, nil
}

func (s *borrowService) ManagerApprove(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error) {
	request, err := s.requestRepo.FindBorrowByID(id)
	if err != nil {
		return nil, apperr.NotFound("borrow request not found")
	}

	fresh, target, err := s.managerTarget(actor, request)
	if err != nil {
		return nil, err
	}
	// A manager from another department is forbidden, not a 404.
	if !authz.CanPerform(fresh, authz.BorrowManagerApprove, target) {
		return nil, apperr.Forbidden("not allowed to approve this borrow request")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanManagerDecide(); err != nil {
			return err
		}

		now := time.Now()
		locked.Status = model.BorrowStatusPendingStorage
		locked.ManagerApprovedBy = &actor.UserID
		locked.ManagerApprovedAt = &now
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("manager_approved", id, model.BorrowStatusPendingStorage)
	return s.requestRepo.FindBorrowByID(id)
}

func (s *borrowService) ManagerReject(actor authz.Actor, id uuid.UUID, reason string) (*model.BorrowRequest, error) {
	if reason == "" {
		return nil, apperr.PreconditionFailed("rejection reason is required")
	}

	request, err := s.requestRepo.FindBorrowByID(id)
	if err != nil {
		return nil, apperr.NotFound("borrow request not found")
	}

	fresh, target, err := s.managerTarget(actor, request)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(fresh, authz.BorrowManagerReject, target) {
		return nil, apperr.Forbidden("not allowed to reject this borrow request")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanManagerDecide(); err != nil {
			return err
		}

		// Manager-stage rejection never touches stock; the storage stage was
		// never reached.
		locked.Status = model.BorrowStatusRejected
		locked.ManagerRejectionReason = reason
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("manager_rejected", id, model.BorrowStatusRejected)
	return s.requestRepo.FindBorrowByID(id)
}

func (s *borrowService) StorageApprove(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error) {
	if !authz.CanPerform(actor, authz.BorrowStorageApprove, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to approve borrow requests")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanStorageDecide(); err != nil {
			return err
		}

		// Items with a stock record reserve the borrowed quantity into the
		// transit bucket on approval; legacy items reserved at creation.
		if _, err := s.ledger.MoveStockTx(tx, locked.ItemID, locked.Quantity,
			model.StockStateStorage, model.StockStateTransit,
			actor.UserID.String(), model.MovementBorrowOut, locked.ID.String(), "borrow_request"); err != nil {
			if apperr.KindOf(err) != apperr.KindNotFound {
				return err
			}
		}

		now := time.Now()
		locked.Status = model.BorrowStatusActive
		locked.StorageApprovedBy = &actor.UserID
		locked.StorageApprovedAt = &now
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("storage_approved", id, model.BorrowStatusActive)
	return s.requestRepo.FindBorrowByID(id)
}

func (s *borrowService) StorageReject(actor authz.Actor, id uuid.UUID, reason string) (*model.BorrowRequest, error) {
	if !authz.CanPerform(actor, authz.BorrowStorageReject, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to reject borrow requests")
	}
	if reason == "" {
		return nil, apperr.PreconditionFailed("rejection reason is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanStorageDecide(); err != nil {
			return err
		}

		// Whether storage-stage rejection restocks a size reservation is
		// pending product clarification; controlled by a setting, off by
		// default to match historical behavior.
		if locked.ItemSizeID != nil &&
			s.settingRepo.GetOrDefault(model.SettingRestockOnStorageReject, "false") == "true" {
			if err := s.itemRepo.RestockSize(tx, *locked.ItemSizeID, locked.Quantity); err != nil {
				return err
			}
		}

		locked.Status = model.BorrowStatusRejected
		locked.StorageRejectionReason = reason
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("storage_rejected", id, model.BorrowStatusRejected)
	return s.requestRepo.FindBorrowByID(id)
}

// LegacyReject handles the older single-stage requests resource: the size
// reservation taken at creation is restored.
func (s *borrowService) LegacyReject(actor authz.Actor, id uuid.UUID, reason string) (*model.BorrowRequest, error) {
	if !authz.CanPerform(actor, authz.BorrowLegacyReject, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to reject requests")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("request not found")
		}
		if err := locked.CanLegacyReject(); err != nil {
			return err
		}

		if locked.ItemSizeID != nil {
			if err := s.itemRepo.RestockSize(tx, *locked.ItemSizeID, locked.Quantity); err != nil {
				return err
			}
		}

		locked.Status = model.BorrowStatusRejected
		locked.StorageRejectionReason = reason
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("legacy_rejected", id, model.BorrowStatusRejected)
	return s.requestRepo.FindBorrowByID(id)
}

func (s *borrowService) RequestReturn(actor authz.Actor, id uuid.UUID, req *ReturnDetails) (*model.ReturnRequest, error) {
	request, err := s.requestRepo.FindBorrowByID(id)
	if err != nil {
		return nil, apperr.NotFound("borrow request not found")
	}

	target := authz.Target{OwnerID: request.RequesterID}
	if !authz.CanPerform(actor, authz.BorrowRequestReturn, target) {
		return nil, apperr.Forbidden("only the request owner or an admin may request a return")
	}

	// A return request is one-to-one with its borrow; the guard inside the
	// transaction re-checks under lock.
	if existing, err := s.requestRepo.FindReturnByBorrowID(id); err == nil && existing != nil {
		return nil, apperr.PreconditionFailed("return already requested")
	}

	var returnRequest *model.ReturnRequest
	err = s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanRequestReturn(); err != nil {
			return err
		}

		now := time.Now()
		returnRequest = &model.ReturnRequest{
			BorrowRequestID: locked.ID,
			ReturnCondition: req.ReturnCondition,
			ReturnNotes:     req.ReturnNotes,
			Reason:          req.Reason,
			Status:          model.ReturnStatusPending,
		}
		returnRequest.CreatedBy = actor.UserID.String()
		returnRequest.UpdatedBy = actor.UserID.String()
		if err := s.requestRepo.CreateReturn(tx, returnRequest); err != nil {
			return err
		}

		locked.Status = model.BorrowStatusPendingReturn
		locked.ReturnRequestedAt = &now
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("return_requested", id, model.BorrowStatusPendingReturn)
	return returnRequest, nil
}

func (s *borrowService) ApproveReturn(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error) {
	if !authz.CanPerform(actor, authz.BorrowApproveReturn, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to approve returns")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanApproveReturn(); err != nil {
			return err
		}

		now := time.Now()
		locked.Status = model.BorrowStatusReturned
		locked.ReturnApprovedBy = &actor.UserID
		locked.ReturnApprovedAt = &now
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("return_approved", id, model.BorrowStatusReturned)
	return s.requestRepo.FindBorrowByID(id)
}

// Receive books the physical item back in. Stock-record items move the
// borrowed quantity transit -> storage through the ledger; legacy
// numeric-inventory items increment the scalar counter.
func (s *borrowService) Receive(actor authz.Actor, id uuid.UUID) (*model.BorrowRequest, error) {
	if !authz.CanPerform(actor, authz.BorrowReceive, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to receive items")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.requestRepo.FindBorrowByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("borrow request not found")
		}
		if err := locked.CanReceive(); err != nil {
			return err
		}

		_, err = s.ledger.MoveStockTx(tx, locked.ItemID, locked.Quantity,
			model.StockStateTransit, model.StockStateStorage,
			actor.UserID.String(), model.MovementBorrowBack, locked.ID.String(), "borrow_request")
		if err != nil {
			if apperr.KindOf(err) != apperr.KindNotFound {
				return err
			}
			// Legacy numeric-inventory item: no stock record exists.
			item, err := s.itemRepo.FindByIDForUpdate(tx, locked.ItemID)
			if err != nil {
				return apperr.NotFound("item not found")
			}
			item.Inventory += locked.Quantity
			item.UpdatedBy = actor.UserID.String()
			if err := s.itemRepo.Save(tx, item); err != nil {
				return err
			}
		}

		now := time.Now()
		locked.ReceivedAt = &now
		locked.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveBorrow(tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.publishBorrowEvent("item_received", id, model.BorrowStatusReturned)
	return s.requestRepo.FindBorrowByID(id)
}

func (s *borrowService) publishBorrowEvent(action string, requestID uuid.UUID, status string) {
	go s.wsHub.Publish(ws.Event{
		Type:   "request_update",
		Action: action,
		Payload: map[string]interface{}{
			"borrow_request_id": requestID,
			"status":            status,
		},
	})
}
