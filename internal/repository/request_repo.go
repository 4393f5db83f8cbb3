package repository

import (
	"go-storage-hub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	// Intake (item requests)
	FindIntakeByID(id uuid.UUID) (*model.ItemRequest, error)
	FindIntakeByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ItemRequest, error)
	FindAllIntake(status string) ([]model.ItemRequest, error)
	SaveIntake(tx *gorm.DB, request *model.ItemRequest) error

	// Borrow requests
	FindBorrowByID(id uuid.UUID) (*model.BorrowRequest, error)
	FindBorrowByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.BorrowRequest, error)
	FindBorrowsByRequester(requesterID uuid.UUID) ([]model.BorrowRequest, error)
	FindBorrowsByDepartment(departmentID uuid.UUID) ([]model.BorrowRequest, error)
	FindAllBorrows(status string) ([]model.BorrowRequest, error)
	SaveBorrow(tx *gorm.DB, request *model.BorrowRequest) error

	// Return requests
	CreateReturn(tx *gorm.DB, request *model.ReturnRequest) error
	FindReturnByBorrowID(borrowRequestID uuid.UUID) (*model.ReturnRequest, error)
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db}
}

func (r *requestRepo) FindIntakeByID(id uuid.UUID) (*model.ItemRequest, error) {
	var request model.ItemRequest
	if err := r.db.Preload("Item").Preload("Requester").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindIntakeByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ItemRequest, error) {
	var request model.ItemRequest
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindAllIntake(status string) ([]model.ItemRequest, error) {
	var requests []model.ItemRequest
	query := r.db.Preload("Item").Preload("Requester").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&requests).Error
	return requests, err
}

func (r *requestRepo) SaveIntake(tx *gorm.DB, request *model.ItemRequest) error {
	return tx.Save(request).Error
}

func (r *requestRepo) FindBorrowByID(id uuid.UUID) (*model.BorrowRequest, error) {
	var request model.BorrowRequest
	if err := r.db.Preload("Item").Preload("ItemSize").Preload("Requester").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindBorrowByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.BorrowRequest, error) {
	var request model.BorrowRequest
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindBorrowsByRequester(requesterID uuid.UUID) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	err := r.db.Preload("Item").Preload("ItemSize").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// FindBorrowsByDepartment lists borrow requests whose requester belongs to
// the given department (manager queue).
func (r *requestRepo) FindBorrowsByDepartment(departmentID uuid.UUID) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	err := r.db.Preload("Item").Preload("ItemSize").Preload("Requester").
		Joins("JOIN users ON users.id = borrow_requests.requester_id").
		Where("users.department_id = ?", departmentID).
		Order("borrow_requests.created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *requestRepo) FindAllBorrows(status string) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	query := r.db.Preload("Item").Preload("ItemSize").Preload("Requester").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&requests).Error
	return requests, err
}

func (r *requestRepo) SaveBorrow(tx *gorm.DB, request *model.BorrowRequest) error {
	return tx.Save(request).Error
}

func (r *requestRepo) CreateReturn(tx *gorm.DB, request *model.ReturnRequest) error {
	return tx.Create(request).Error
}

func (r *requestRepo) FindReturnByBorrowID(borrowRequestID uuid.UUID) (*model.ReturnRequest, error) {
	var request model.ReturnRequest
	if err := r.db.First(&request, "borrow_request_id = ?", borrowRequestID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}
