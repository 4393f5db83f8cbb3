package service

import (
	"time"

	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"

	"gorm.io/gorm"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.MovementSeriesData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// DashboardStats is the overview shown on the landing page.
type DashboardStats struct {
	TotalItems         int64                   `json:"total_items"`
	PendingIntake      int64                   `json:"pending_intake"`
	OpenBorrowRequests int64                   `json:"open_borrow_requests"`
	Stock              *repository.StockTotals `json:"stock"`
}

type dashboardService struct {
	stockRepo repository.StockRepository
	db        *gorm.DB
}

func NewDashboardService(stockRepo repository.StockRepository, db *gorm.DB) DashboardService {
	return &dashboardService{stockRepo: stockRepo, db: db}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.MovementSeriesData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.stockRepo.GetMovementSeries(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	s.db.Model(&model.Item{}).Count(&stats.TotalItems)
	s.db.Model(&model.ItemRequest{}).Where("status = ?", model.IntakeStatusPending).Count(&stats.PendingIntake)
	s.db.Model(&model.BorrowRequest{}).
		Where("status IN ?", []string{
			model.BorrowStatusPendingManager,
			model.BorrowStatusPendingStorage,
			model.BorrowStatusActive,
			model.BorrowStatusPendingReturn,
		}).Count(&stats.OpenBorrowRequests)

	totals, err := s.stockRepo.GetStockTotals()
	if err != nil {
		return nil, err
	}
	stats.Stock = totals

	return &stats, nil
}
