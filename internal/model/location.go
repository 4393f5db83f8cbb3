package model

import "github.com/google/uuid"

// Location is a physical storage area (room, shelf zone).
type Location struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}

// Box is a container within a location.
type Box struct {
	BaseModel
	Code       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id" validate:"uuid_required"`
	Location   *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Capacity   int       `gorm:"default:0" json:"capacity"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}
