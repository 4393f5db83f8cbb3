package model

import "github.com/google/uuid"

// ItemStatus values an item can hold across its lifecycle.
const (
	ItemStatusPending   = "pending"
	ItemStatusAvailable = "available"
	ItemStatusRejected  = "rejected"
	ItemStatusActive    = "active"
	ItemStatusArchived  = "archived"
)

// Item is a physical inventory item. Created pending on intake, transitioned
// by approval, borrow/return and clearance. Never physically deleted once
// approved; rejected intake items cascade-delete with all dependents.
type Item struct {
	BaseModel
	ProductCode string `gorm:"type:varchar(100);uniqueIndex;not null" json:"product_code" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand       string `gorm:"type:varchar(100)" json:"brand"`
	Division    string `gorm:"type:varchar(100)" json:"division"`
	Category    string `gorm:"type:varchar(100)" json:"category"`
	Condition   string `gorm:"type:varchar(50)" json:"condition"`
	Status      string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Location    string `gorm:"type:varchar(255)" json:"location"`

	// Legacy scalar count, kept for items registered before per-bucket stock
	// records existed. New items carry a Stock relation instead.
	Inventory int `gorm:"default:0" json:"inventory"`

	Stock  *ItemStock  `gorm:"foreignKey:ItemID" json:"stock,omitempty"`
	Sizes  []ItemSize  `gorm:"foreignKey:ItemID" json:"sizes,omitempty"`
	Images []ItemImage `gorm:"foreignKey:ItemID" json:"images,omitempty"`
}

// ItemSize is a per-size availability counter used by the legacy single-stage
// borrow flow, which restocks Available on rejection.
type ItemSize struct {
	BaseModel
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Label     string    `gorm:"type:varchar(20);not null" json:"label"`
	Available int       `gorm:"default:0" json:"available"`
}

// ItemImage is an uploaded photo of an item.
type ItemImage struct {
	BaseModel
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	URL      string    `gorm:"type:text;not null" json:"url"`
	Position int       `gorm:"default:0" json:"position"`
}
