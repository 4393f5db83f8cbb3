package model

// Department groups a manager with the users reporting to them.
// Manager-stage borrow approval is scoped to the requester's department.
type Department struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}
