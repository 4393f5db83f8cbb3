package model

import (
	"time"

	"github.com/google/uuid"

	"go-storage-hub/internal/apperr"
)

// ItemRequest (intake) statuses. Terminal once the request leaves pending.
const (
	IntakeStatusPending  = "pending"
	IntakeStatusApproved = "approved"
	IntakeStatusRejected = "rejected"
)

// ItemRequest registers a new item into inventory, pending storage approval.
type ItemRequest struct {
	BaseModel
	ItemID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	Item        *Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	RequestedBy uuid.UUID  `gorm:"type:uuid;not null;index" json:"requested_by"`
	Requester   *User      `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reason      string     `gorm:"type:text" json:"reason,omitempty"`
	Location    string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedBy  *uuid.UUID `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
}

// CanApprove checks the approve-intake precondition.
func (r *ItemRequest) CanApprove() error {
	if r.Status != IntakeStatusPending {
		return apperr.PreconditionFailed("item request already processed")
	}
	return nil
}

// CanReject checks the reject-intake precondition.
func (r *ItemRequest) CanReject() error {
	if r.Status != IntakeStatusPending {
		return apperr.PreconditionFailed("item request already processed")
	}
	return nil
}

// BorrowRequest statuses. The dual-approval pipeline runs
// pending_manager -> pending_storage -> active -> pending_return -> returned,
// with rejected reachable from either approval gate. The legacy single-stage
// flow uses pending/approved.
const (
	BorrowStatusPendingManager = "pending_manager"
	BorrowStatusPendingStorage = "pending_storage"
	BorrowStatusActive         = "active"
	BorrowStatusRejected       = "rejected"
	BorrowStatusPendingReturn  = "pending_return"
	BorrowStatusReturned       = "returned"

	// Legacy single-stage statuses
	BorrowStatusPending  = "pending"
	BorrowStatusApproved = "approved"
)

// BorrowRequest reserves item quantity for a user, subject to dual approval.
type BorrowRequest struct {
	BaseModel
	ItemID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	Item        *Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	ItemSizeID  *uuid.UUID `gorm:"type:uuid;index" json:"item_size_id,omitempty"`
	ItemSize    *ItemSize  `gorm:"foreignKey:ItemSizeID" json:"item_size,omitempty"`
	RequesterID uuid.UUID  `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   *User      `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Quantity    int        `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Purpose     string     `gorm:"type:text" json:"purpose"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending_manager';index" json:"status"`

	ManagerApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"manager_approved_by,omitempty"`
	ManagerApprovedAt      *time.Time `json:"manager_approved_at,omitempty"`
	ManagerRejectionReason string     `gorm:"type:text" json:"manager_rejection_reason,omitempty"`

	StorageApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"storage_approved_by,omitempty"`
	StorageApprovedAt      *time.Time `json:"storage_approved_at,omitempty"`
	StorageRejectionReason string     `gorm:"type:text" json:"storage_rejection_reason,omitempty"`

	ReturnRequestedAt *time.Time `json:"return_requested_at,omitempty"`
	ReturnApprovedBy  *uuid.UUID `gorm:"type:uuid" json:"return_approved_by,omitempty"`
	ReturnApprovedAt  *time.Time `json:"return_approved_at,omitempty"`
	ReceivedAt        *time.Time `json:"received_at,omitempty"`
}

// Every transition guard below verifies the exact expected predecessor
// status and fails with a precondition error otherwise. No silent no-ops.

// CanManagerDecide checks the manager-gate precondition (approve or reject).
func (b *BorrowRequest) CanManagerDecide() error {
	if b.Status != BorrowStatusPendingManager {
		return apperr.PreconditionFailed("borrow request is not pending manager approval")
	}
	return nil
}

// CanStorageDecide checks the storage-gate precondition (approve or reject).
func (b *BorrowRequest) CanStorageDecide() error {
	if b.Status != BorrowStatusPendingStorage {
		return apperr.PreconditionFailed("borrow request is not pending storage approval")
	}
	return nil
}

// CanLegacyReject checks the legacy single-stage reject precondition.
func (b *BorrowRequest) CanLegacyReject() error {
	if b.Status != BorrowStatusPending {
		return apperr.PreconditionFailed("request is not pending")
	}
	return nil
}

// CanRequestReturn checks the request-return precondition. Both the new
// (active) and legacy (approved) flows qualify; a duplicate return request
// fails.
func (b *BorrowRequest) CanRequestReturn() error {
	if b.Status != BorrowStatusActive && b.Status != BorrowStatusApproved {
		return apperr.PreconditionFailed("borrow request is not active")
	}
	if b.ReturnRequestedAt != nil {
		return apperr.PreconditionFailed("return already requested")
	}
	return nil
}

// CanApproveReturn checks the approve-return precondition.
func (b *BorrowRequest) CanApproveReturn() error {
	if b.ReturnRequestedAt == nil {
		return apperr.PreconditionFailed("no return has been requested")
	}
	if b.ReturnApprovedAt != nil {
		return apperr.PreconditionFailed("return already approved")
	}
	return nil
}

// CanReceive checks the receive-item precondition.
func (b *BorrowRequest) CanReceive() error {
	if b.ReturnApprovedAt == nil {
		return apperr.PreconditionFailed("return has not been approved")
	}
	if b.ReceivedAt != nil {
		return apperr.PreconditionFailed("item already received")
	}
	return nil
}

// ReturnRequest statuses.
const (
	ReturnStatusPending = "pending"
)

// ReturnRequest is created when an active borrow requests return; one-to-one
// with the BorrowRequest transition to pending_return.
type ReturnRequest struct {
	BaseModel
	BorrowRequestID uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"borrow_request_id"`
	BorrowRequest   *BorrowRequest `gorm:"foreignKey:BorrowRequestID" json:"borrow_request,omitempty"`
	ReturnCondition string         `gorm:"type:varchar(50)" json:"return_condition"`
	ReturnNotes     string         `gorm:"type:text" json:"return_notes"`
	Reason          string         `gorm:"type:text" json:"reason"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
