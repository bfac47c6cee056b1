package service

import (
	"time"

	"go-pharmacy-stock/internal/repository"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	logRepo repository.LogEntryRepository
}

func NewDashboardService(logRepo repository.LogEntryRepository) DashboardService {
	return &dashboardService{logRepo: logRepo}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.logRepo.GetStockMovement(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.logRepo.GetDashboardStats()
}
