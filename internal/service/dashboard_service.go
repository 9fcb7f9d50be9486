package service

import (
	"go-stocktrack/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardStats is the overview block rendered on the landing page
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

type DashboardService interface {
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
}

func NewDashboardService(productRepo repository.ProductRepository) DashboardService {
	return &dashboardService{productRepo: productRepo}
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	total, err := s.productRepo.CountActive()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountLowStock()
	if err != nil {
		return nil, err
	}
	valuation, err := s.productRepo.TotalValuation()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:  total,
		LowStockCount:  lowStock,
		TotalValuation: valuation,
	}, nil
}
