package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-storage-hub/internal/apperr"
	"go-storage-hub/internal/authz"
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/internal/ws"
	"go-storage-hub/pkg/catalog"
	"go-storage-hub/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntakeService governs item-request (intake) transitions: a pending request
// is approved (item becomes available) or rejected (item and every dependent
// record set cascade-delete atomically). Both paths are terminal.
type IntakeService interface {
	Create(actor authz.Actor, req *CreateIntakeRequest) (*model.ItemRequest, error)
	List(actor authz.Actor, status string) ([]model.ItemRequest, error)
	Approve(actor authz.Actor, requestID uuid.UUID, location string) (*model.ItemRequest, error)
	Reject(actor authz.Actor, requestID uuid.UUID, reason string) (*model.ItemRequest, error)
}

type CreateIntakeRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Brand       string `json:"brand"`
	Division    string `json:"division"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

type intakeService struct {
	requestRepo   repository.RequestRepository
	itemRepo      repository.ItemRepository
	db            *gorm.DB
	wsHub         *ws.Hub
	catalogClient *catalog.Client
}

func NewIntakeService(requestRepo repository.RequestRepository, itemRepo repository.ItemRepository, db *gorm.DB, hub *ws.Hub, catalogClient *catalog.Client) IntakeService {
	return &intakeService{
		requestRepo:   requestRepo,
		itemRepo:      itemRepo,
		db:            db,
		wsHub:         hub,
		catalogClient: catalogClient,
	}
}

func (s *intakeService) Create(actor authz.Actor, req *CreateIntakeRequest) (*model.ItemRequest, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.PreconditionFailed(
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	existing, _ := s.itemRepo.FindByProductCode(req.ProductCode)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, apperr.PreconditionFailed("product code already exists")
	}

	// Catalog validation is advisory: an unreachable catalog never blocks
	// intake, an unknown SKU does.
	if s.catalogClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		known, err := s.catalogClient.KnownSKU(ctx, req.ProductCode)
		if err != nil {
			log.Printf("catalog lookup skipped for %s: %v", req.ProductCode, err)
		} else if !known {
			return nil, apperr.PreconditionFailed("product code not found in catalog")
		}
	}

	var request *model.ItemRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item := &model.Item{
			ProductCode: req.ProductCode,
			Name:        req.Name,
			Brand:       req.Brand,
			Division:    req.Division,
			Category:    req.Category,
			Condition:   req.Condition,
			Status:      model.ItemStatusPending,
		}
		item.CreatedBy = actor.UserID.String()
		item.UpdatedBy = actor.UserID.String()
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		stock := &model.ItemStock{
			ItemID:    item.ID,
			InStorage: req.Quantity,
		}
		stock.CreatedBy = actor.UserID.String()
		stock.UpdatedBy = actor.UserID.String()
		if err := tx.Create(stock).Error; err != nil {
			return err
		}

		request = &model.ItemRequest{
			ItemID:      item.ID,
			RequestedBy: actor.UserID,
			Status:      model.IntakeStatusPending,
		}
		request.CreatedBy = actor.UserID.String()
		request.UpdatedBy = actor.UserID.String()
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}

	return s.requestRepo.FindIntakeByID(request.ID)
}

func (s *intakeService) List(actor authz.Actor, status string) ([]model.ItemRequest, error) {
	if !authz.CanPerform(actor, authz.IntakeList, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to list item requests")
	}
	return s.requestRepo.FindAllIntake(status)
}

func (s *intakeService) Approve(actor authz.Actor, requestID uuid.UUID, location string) (*model.ItemRequest, error) {
	if !authz.CanPerform(actor, authz.IntakeApprove, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to approve item requests")
	}
	if location == "" {
		return nil, apperr.PreconditionFailed("location is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.requestRepo.FindIntakeByIDForUpdate(tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("item request not found")
			}
			return err
		}
		if err := request.CanApprove(); err != nil {
			return err
		}

		item, err := s.itemRepo.FindByIDForUpdate(tx, request.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("item not found")
			}
			return err
		}

		now := time.Now()
		item.Status = model.ItemStatusAvailable
		item.Location = location
		item.UpdatedBy = actor.UserID.String()
		if err := s.itemRepo.Save(tx, item); err != nil {
			return err
		}

		request.Status = model.IntakeStatusApproved
		request.Location = location
		request.ApprovedBy = &actor.UserID
		request.ApprovedAt = &now
		request.UpdatedBy = actor.UserID.String()
		return s.requestRepo.SaveIntake(tx, request)
	})
	if err != nil {
		return nil, err
	}

	s.publishIntakeEvent("intake_approved", requestID)
	return s.requestRepo.FindIntakeByID(requestID)
}

// Reject marks the request rejected and cascade-deletes the item together
// with every dependent record set in FK-safe order, all in one transaction so
// a mid-sequence failure cannot leave orphaned rows.
func (s *intakeService) Reject(actor authz.Actor, requestID uuid.UUID, reason string) (*model.ItemRequest, error) {
	if !authz.CanPerform(actor, authz.IntakeReject, authz.Target{}) {
		return nil, apperr.Forbidden("not allowed to reject item requests")
	}
	if reason == "" {
		return nil, apperr.PreconditionFailed("reason is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.requestRepo.FindIntakeByIDForUpdate(tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("item request not found")
			}
			return err
		}
		if err := request.CanReject(); err != nil {
			return err
		}

		now := time.Now()
		request.Status = model.IntakeStatusRejected
		request.Reason = reason
		request.RejectedBy = &actor.UserID
		request.RejectedAt = &now
		request.UpdatedBy = actor.UserID.String()
		if err := s.requestRepo.SaveIntake(tx, request); err != nil {
			return err
		}

		return cascadeDeleteItem(tx, request.ItemID)
	})
	if err != nil {
		return nil, err
	}

	s.publishIntakeEvent("intake_rejected", requestID)
	return s.requestRepo.FindIntakeByID(requestID)
}

// cascadeDeleteItem removes a rejected intake item and its dependents.
// Order matters: children before parents, and return requests key on borrow
// rows so they go before the borrow rows themselves.
func cascadeDeleteItem(tx *gorm.DB, itemID uuid.UUID) error {
	if err := tx.Unscoped().Where("item_id = ?", itemID).Delete(&model.StockMovement{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().
		Where("borrow_request_id IN (?)",
			tx.Model(&model.BorrowRequest{}).Select("id").Where("item_id = ?", itemID)).
		Delete(&model.ReturnRequest{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("item_id = ?", itemID).Delete(&model.BorrowRequest{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("item_id = ?", itemID).Delete(&model.ItemClearance{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("item_id = ?", itemID).Delete(&model.ItemImage{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("item_id = ?", itemID).Delete(&model.ItemSize{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("item_id = ?", itemID).Delete(&model.ItemStock{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&model.Item{}, "id = ?", itemID).Error
}

func (s *intakeService) publishIntakeEvent(action string, requestID uuid.UUID) {
	go s.wsHub.Publish(ws.Event{
		Type:   "request_update",
		Action: action,
		Payload: map[string]interface{}{
			"request_id": requestID,
		},
	})
}
