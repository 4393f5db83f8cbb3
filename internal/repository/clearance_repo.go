package repository

import (
	"time"

	"go-storage-hub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClearanceRepository interface {
	Create(tx *gorm.DB, clearance *model.ItemClearance) error
	FindByID(id uuid.UUID) (*model.ItemClearance, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ItemClearance, error)
	Save(tx *gorm.DB, clearance *model.ItemClearance) error
	ListByKind(kind model.ClearanceKind, status string, from, to *time.Time) ([]model.ItemClearance, error)
}

type clearanceRepo struct {
	db *gorm.DB
}

func NewClearanceRepo(db *gorm.DB) ClearanceRepository {
	return &clearanceRepo{db}
}

func (r *clearanceRepo) Create(tx *gorm.DB, clearance *model.ItemClearance) error {
	return tx.Create(clearance).Error
}

func (r *clearanceRepo) FindByID(id uuid.UUID) (*model.ItemClearance, error) {
	var clearance model.ItemClearance
	if err := r.db.Preload("Item").First(&clearance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &clearance, nil
}

func (r *clearanceRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ItemClearance, error) {
	var clearance model.ItemClearance
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&clearance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &clearance, nil
}

func (r *clearanceRepo) Save(tx *gorm.DB, clearance *model.ItemClearance) error {
	return tx.Save(clearance).Error
}

// ListByKind filters clearance records by kind, with optional status and
// date-range filters. Rows whose kind column does not parse to a known kind
// are excluded rather than failing the query.
func (r *clearanceRepo) ListByKind(kind model.ClearanceKind, status string, from, to *time.Time) ([]model.ItemClearance, error) {
	var records []model.ItemClearance
	query := r.db.Preload("Item").Where("kind = ?", kind).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	filtered := records[:0]
	for _, rec := range records {
		if rec.Kind.Valid() {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}
