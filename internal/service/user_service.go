package service

import (
	"errors"
	"fmt"

	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEmailExists = errors.New("email already exists")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
	GetAllUsers(departmentID *uuid.UUID) ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	FullName     string  `json:"full_name" validate:"required"`
	PhoneNumber  string  `json:"phone_number"`
	Role         string  `json:"role" validate:"required,role"`
	DepartmentID *string `json:"department_id"`
}

type UpdateUserRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName     string  `json:"full_name" validate:"required"`
	PhoneNumber  string  `json:"phone_number"`
	Role         string  `json:"role" validate:"required,role"`
	DepartmentID *string `json:"department_id"`
	IsActive     *bool   `json:"is_active"`
}

type userService struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
}

func NewUserService(userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository) UserService {
	return &userService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

// resolveDepartment validates the role/department pairing: every role except
// superadmin and admin must belong to an existing department.
func (s *userService) resolveDepartment(role string, departmentID *string) (*uuid.UUID, error) {
	if !model.IsValidRole(role) {
		return nil, errors.New("unknown role")
	}

	if departmentID == nil || *departmentID == "" {
		if model.RoleRequiresDepartment(role) {
			return nil, fmt.Errorf("role %s requires a department", role)
		}
		return nil, nil
	}

	id, err := uuid.Parse(*departmentID)
	if err != nil {
		return nil, errors.New("invalid department ID")
	}
	if _, err := s.departmentRepo.FindByID(id); err != nil {
		return nil, errors.New("department not found")
	}
	return &id, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	departmentID, err := s.resolveDepartment(req.Role, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		DepartmentID: departmentID,
		IsActive:     true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != user.Email {
		existing, _ := s.userRepo.FindByEmail(req.Email)
		if existing != nil {
			return nil, ErrEmailExists
		}
	}

	departmentID, err := s.resolveDepartment(req.Role, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.Role = req.Role
	user.DepartmentID = departmentID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = updaterID

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	return s.userRepo.Delete(userID)
}

// GetAllUsers lists users, optionally restricted to one department.
func (s *userService) GetAllUsers(departmentID *uuid.UUID) ([]model.UserResponse, error) {
	var users []model.User
	var err error
	if departmentID != nil {
		users, err = s.userRepo.FindByDepartment(*departmentID)
	} else {
		users, err = s.userRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}
