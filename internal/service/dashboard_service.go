package service

import (
	"context"
	"time"

	"go-dealer-stock/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	GetDealerStats(ctx context.Context, dealerID uuid.UUID) (*repository.DealerStats, error)
	GetDailyMovement(ctx context.Context, dealerID uuid.UUID, days int) ([]repository.DailyMovementData, error)
}

type dashboardService struct {
	movementRepo repository.MovementRepository
}

func NewDashboardService(movRepo repository.MovementRepository) DashboardService {
	return &dashboardService{movementRepo: movRepo}
}

func (s *dashboardService) GetDealerStats(ctx context.Context, dealerID uuid.UUID) (*repository.DealerStats, error) {
	return s.movementRepo.GetDealerStats(dealerID)
}

func (s *dashboardService) GetDailyMovement(ctx context.Context, dealerID uuid.UUID, days int) ([]repository.DailyMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.movementRepo.GetDailyMovement(dealerID, startDate, endDate)
}
