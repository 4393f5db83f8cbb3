package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants
const (
	RoleSuperadmin           = "superadmin"
	RoleAdmin                = "admin"
	RoleManager              = "manager"
	RoleStorageMaster        = "storage-master"
	RoleStorageMasterManager = "storage-master-manager"
	RoleStorageManager       = "storage-manager"
	RoleUser                 = "user"
)

// ValidRoles enumerates every role the system accepts.
var ValidRoles = []string{
	RoleSuperadmin,
	RoleAdmin,
	RoleManager,
	RoleStorageMaster,
	RoleStorageMasterManager,
	RoleStorageManager,
	RoleUser,
}

// IsValidRole reports whether code is a known role. Unknown roles fail-closed.
func IsValidRole(code string) bool {
	for _, r := range ValidRoles {
		if r == code {
			return true
		}
	}
	return false
}

// RoleRequiresDepartment reports whether users with this role must belong to
// a department. Superadmin and admin operate across departments.
func RoleRequiresDepartment(code string) bool {
	return code != RoleSuperadmin && code != RoleAdmin
}

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string      `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber  string      `gorm:"type:varchar(20)" json:"phone_number"`
	Role         string      `gorm:"type:varchar(50);not null;index" json:"role" validate:"required"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index" json:"department_id,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time  `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	PhoneNumber  string      `json:"phone_number"`
	Role         string      `json:"role"`
	DepartmentID *uuid.UUID  `json:"department_id,omitempty"`
	Department   *Department `json:"department,omitempty"`
	IsActive     bool        `json:"is_active"`
	LastSeenAt   *time.Time  `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PhoneNumber:  u.PhoneNumber,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		Department:   u.Department,
		IsActive:     u.IsActive,
		LastSeenAt:   u.LastSeenAt,
	}
}
