package repository

import (
	"go-storage-hub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	FindAll() ([]model.Location, error)
	FindByID(id uuid.UUID) (*model.Location, error)
	Create(location *model.Location) error
	Update(location *model.Location) error
	Delete(id uuid.UUID) error

	FindAllBoxes() ([]model.Box, error)
	FindBoxByID(id uuid.UUID) (*model.Box, error)
	CreateBox(box *model.Box) error
	UpdateBox(box *model.Box) error
	DeleteBox(id uuid.UUID) error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) FindAll() ([]model.Location, error) {
	var locations []model.Location
	err := r.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) FindByID(id uuid.UUID) (*model.Location, error) {
	var location model.Location
	if err := r.db.First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) Create(location *model.Location) error {
	return r.db.Create(location).Error
}

func (r *locationRepo) Update(location *model.Location) error {
	return r.db.Save(location).Error
}

func (r *locationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Location{}, "id = ?", id).Error
}

func (r *locationRepo) FindAllBoxes() ([]model.Box, error) {
	var boxes []model.Box
	err := r.db.Preload("Location").Order("code ASC").Find(&boxes).Error
	return boxes, err
}

func (r *locationRepo) FindBoxByID(id uuid.UUID) (*model.Box, error) {
	var box model.Box
	if err := r.db.Preload("Location").First(&box, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *locationRepo) CreateBox(box *model.Box) error {
	return r.db.Create(box).Error
}

func (r *locationRepo) UpdateBox(box *model.Box) error {
	return r.db.Save(box).Error
}

func (r *locationRepo) DeleteBox(id uuid.UUID) error {
	return r.db.Delete(&model.Box{}, "id = ?", id).Error
}
