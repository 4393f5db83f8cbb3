package model

import (
	"time"

	"github.com/google/uuid"
)

// ClearanceKind tags the disposition type of a clearance record. Replaces the
// free-form metadata bag: seeding records carry OriginalQuantity and an
// optional BorrowRequestID, the other kinds carry nothing extra.
type ClearanceKind string

const (
	ClearanceSeeding  ClearanceKind = "seeding"
	ClearanceDamaged  ClearanceKind = "damaged"
	ClearanceExpired  ClearanceKind = "expired"
	ClearanceObsolete ClearanceKind = "obsolete"
	ClearanceRecall   ClearanceKind = "recall"
	ClearanceOther    ClearanceKind = "other"
)

// Valid reports whether the kind is a known disposition. Listing queries
// exclude rows with an unknown kind instead of failing.
func (k ClearanceKind) Valid() bool {
	switch k {
	case ClearanceSeeding, ClearanceDamaged, ClearanceExpired, ClearanceObsolete, ClearanceRecall, ClearanceOther:
		return true
	}
	return false
}

// Clearance record statuses.
const (
	ClearanceStatusActive   = "active"
	ClearanceStatusReverted = "reverted"
)

// ItemClearance records an out-of-normal-flow disposition of stock.
// Quantity is signed: positive for clearance-out, negative for a revert
// audit row. Seeding records are reversible by a superadmin.
type ItemClearance struct {
	BaseModel
	ItemID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"item_id"`
	Item     *Item         `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Kind     ClearanceKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	Quantity int           `gorm:"not null" json:"quantity"`
	Reason   string        `gorm:"type:text;not null" json:"reason"`
	Status   string        `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// Seeding-only fields
	OriginalQuantity *int       `json:"original_quantity,omitempty"`
	BorrowRequestID  *uuid.UUID `gorm:"type:uuid;index" json:"borrow_request_id,omitempty"`

	ClearedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"cleared_by"`
	RevertedBy *uuid.UUID `gorm:"type:uuid" json:"reverted_by,omitempty"`
	RevertedAt *time.Time `json:"reverted_at,omitempty"`
}
