package repository

import (
	"go-storage-hub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindAll() ([]model.Department, error)
	FindByID(id uuid.UUID) (*model.Department, error)
	FindByName(name string) (*model.Department, error)
	Create(department *model.Department) error
	Update(department *model.Department) error
	Delete(id uuid.UUID) error
	SeedDefaults() error
}

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db}
}

func (r *departmentRepo) FindAll() ([]model.Department, error) {
	var departments []model.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepo) FindByID(id uuid.UUID) (*model.Department, error) {
	var department model.Department
	if err := r.db.First(&department, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepo) FindByName(name string) (*model.Department, error) {
	var department model.Department
	if err := r.db.Where("name = ?", name).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepo) Create(department *model.Department) error {
	return r.db.Create(department).Error
}

func (r *departmentRepo) Update(department *model.Department) error {
	return r.db.Save(department).Error
}

func (r *departmentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Department{}, "id = ?", id).Error
}

// SeedDefaults creates the default departments if they don't exist
func (r *departmentRepo) SeedDefaults() error {
	defaults := []model.Department{
		{Name: "General Affairs", Description: "Default department for unassigned users"},
		{Name: "Warehouse", Description: "Storage and logistics staff"},
	}
	for _, d := range defaults {
		var existing model.Department
		if err := r.db.Where("name = ?", d.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := r.db.Create(&d).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
