package repository

import (
	"time"

	"go-storage-hub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	FindByItemID(itemID uuid.UUID) (*model.ItemStock, error)
	FindByItemIDForUpdate(tx *gorm.DB, itemID uuid.UUID) (*model.ItemStock, error)
	Save(tx *gorm.DB, stock *model.ItemStock) error
	CreateMovement(tx *gorm.DB, movement *model.StockMovement) error
	FindMovementsByItem(itemID uuid.UUID) ([]model.StockMovement, error)
	GetMovementSeries(startDate, endDate time.Time) ([]MovementSeriesData, error)
	GetStockTotals() (*StockTotals, error)
}

// MovementSeriesData is the per-day aggregate for dashboard charts.
type MovementSeriesData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// StockTotals is the dashboard overview of all stock buckets.
type StockTotals struct {
	TotalInStorage   int64 `json:"total_in_storage"`
	TotalInClearance int64 `json:"total_in_clearance"`
	TotalInTransit   int64 `json:"total_in_transit"`
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindByItemID(itemID uuid.UUID) (*model.ItemStock, error) {
	var stock model.ItemStock
	if err := r.db.First(&stock, "item_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// FindByItemIDForUpdate locks the stock row so concurrent transitions against
// the same item serialize instead of interleaving reads and writes.
func (r *stockRepo) FindByItemIDForUpdate(tx *gorm.DB, itemID uuid.UUID) (*model.ItemStock, error) {
	var stock model.ItemStock
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&stock, "item_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) Save(tx *gorm.DB, stock *model.ItemStock) error {
	return tx.Save(stock).Error
}

func (r *stockRepo) CreateMovement(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockRepo) FindMovementsByItem(itemID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Where("item_id = ?", itemID).Order("created_at DESC").Find(&movements).Error
	return movements, err
}

func (r *stockRepo) GetMovementSeries(startDate, endDate time.Time) ([]MovementSeriesData, error) {
	var results []MovementSeriesData

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN to_state = 'storage' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN from_state = 'storage' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MovementSeriesData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *stockRepo) GetStockTotals() (*StockTotals, error) {
	var totals StockTotals

	err := r.db.Model(&model.ItemStock{}).
		Select(`
			COALESCE(SUM(in_storage), 0) as total_in_storage,
			COALESCE(SUM(in_clearance), 0) as total_in_clearance,
			COALESCE(SUM(in_transit), 0) as total_in_transit
		`).
		Scan(&totals).Error

	return &totals, err
}
