package repository

import (
	"go-storage-hub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uuid.UUID) (*model.Item, error)
	FindByProductCode(code string) (*model.Item, error)
	Update(item *model.Item) error

	// Tx-scoped variants for use inside transitions.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Item, error)
	Save(tx *gorm.DB, item *model.Item) error

	FindSizeByID(id uuid.UUID) (*model.ItemSize, error)
	ReserveSize(tx *gorm.DB, sizeID uuid.UUID, quantity int) (bool, error)
	RestockSize(tx *gorm.DB, sizeID uuid.UUID, quantity int) error
	CreateImage(image *model.ItemImage) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindAll() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Preload("Stock").Preload("Sizes").Preload("Images").Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.Preload("Stock").Preload("Sizes").Preload("Images").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByProductCode(code string) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "product_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Update(item *model.Item) error {
	return r.db.Save(item).Error
}

// FindByIDForUpdate locks the item row for the duration of the enclosing
// transaction (pessimistic locking).
func (r *itemRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Save(tx *gorm.DB, item *model.Item) error {
	return tx.Save(item).Error
}

func (r *itemRepo) FindSizeByID(id uuid.UUID) (*model.ItemSize, error) {
	var size model.ItemSize
	if err := r.db.First(&size, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

// ReserveSize takes quantity units off a size counter. The balance check is
// part of the UPDATE itself; false means fewer than quantity units remained.
func (r *itemRepo) ReserveSize(tx *gorm.DB, sizeID uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&model.ItemSize{}).
		Where("id = ? AND available >= ?", sizeID, quantity).
		Update("available", gorm.Expr("available - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *itemRepo) RestockSize(tx *gorm.DB, sizeID uuid.UUID, quantity int) error {
	return tx.Model(&model.ItemSize{}).
		Where("id = ?", sizeID).
		Update("available", gorm.Expr("available + ?", quantity)).Error
}

func (r *itemRepo) CreateImage(image *model.ItemImage) error {
	return r.db.Create(image).Error
}
