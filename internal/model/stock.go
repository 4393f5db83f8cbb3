package model

import (
	"github.com/google/uuid"

	"go-storage-hub/internal/apperr"
)

// StockState identifies a stock bucket on an ItemStock row.
type StockState string

const (
	StockStateStorage   StockState = "storage"
	StockStateClearance StockState = "clearance"
	StockStateTransit   StockState = "transit"
)

// ItemStock holds the per-item bucket counters. Every bucket stays
// non-negative; mutations go through Move so an underflow is rejected
// before anything is written.
type ItemStock struct {
	BaseModel
	ItemID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"item_id"`
	InStorage   int       `gorm:"not null;default:0" json:"in_storage"`
	InClearance int       `gorm:"not null;default:0" json:"in_clearance"`
	InTransit   int       `gorm:"not null;default:0" json:"in_transit"`
}

func (s *ItemStock) bucket(state StockState) (*int, error) {
	switch state {
	case StockStateStorage:
		return &s.InStorage, nil
	case StockStateClearance:
		return &s.InClearance, nil
	case StockStateTransit:
		return &s.InTransit, nil
	default:
		return nil, apperr.PreconditionFailed("unknown stock state: " + string(state))
	}
}

// Balance returns the counter for the given bucket, 0 for unknown states.
func (s *ItemStock) Balance(state StockState) int {
	b, err := s.bucket(state)
	if err != nil {
		return 0
	}
	return *b
}

// Move shifts quantity units from one bucket to another. Quantity must be a
// positive integer; direction is encoded by from/to, never by sign. The
// source bucket must hold at least quantity units or nothing changes.
func (s *ItemStock) Move(from, to StockState, quantity int) error {
	if quantity <= 0 {
		return apperr.PreconditionFailed("quantity must be a positive integer")
	}
	if from == to {
		return apperr.PreconditionFailed("from and to states must differ")
	}

	src, err := s.bucket(from)
	if err != nil {
		return err
	}
	dst, err := s.bucket(to)
	if err != nil {
		return err
	}

	if *src < quantity {
		return apperr.InsufficientQuantity("insufficient " + string(from) + " quantity")
	}

	*src -= quantity
	*dst += quantity
	return nil
}

// StockMovement is the audit row paired with every ledger mutation,
// referencing the domain event that triggered it.
type StockMovement struct {
	BaseModel
	ItemID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	MovementType  string     `gorm:"type:varchar(50);not null" json:"movement_type"`
	FromState     StockState `gorm:"type:varchar(20);not null" json:"from_state"`
	ToState       StockState `gorm:"type:varchar(20);not null" json:"to_state"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	PerformedBy   string     `gorm:"type:varchar(255);not null" json:"performed_by"`
	ReferenceID   string     `gorm:"type:varchar(255)" json:"reference_id"`
	ReferenceType string     `gorm:"type:varchar(50)" json:"reference_type"`
}

// Movement types recorded on the audit trail.
const (
	MovementClearanceOut  = "clearance_out"
	MovementClearanceBack = "clearance_revert"
	MovementBorrowOut     = "borrow_out"
	MovementBorrowBack    = "borrow_return"
)
