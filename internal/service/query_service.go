package service

import (
	"context"
	"strings"
	"time"

	"go-dealer-stock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is a model's on-hand quantity and its valuation at the current
// unit price.
type Position struct {
	CurrentQuantity int             `json:"currentQuantity"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

// HistoryEntry is one ledger row prepared for display. Amount is the entry
// magnitude valued at the price in effect at query time, not the price when
// the movement was recorded.
type HistoryEntry struct {
	MovementID          uuid.UUID       `json:"id"`
	Date                time.Time       `json:"date"`
	Quantity            int             `json:"quantity"`
	RunningBalanceAfter int             `json:"currentTotalQuantity"`
	Amount              decimal.Decimal `json:"amount"`
}

// ModelPosition is the stock-table block the front end renders per model.
type ModelPosition struct {
	ModelID       uuid.UUID       `json:"modelId"`
	BrandName     string          `json:"brandName"`
	ModelName     string          `json:"modelName"`
	Price         decimal.Decimal `json:"price"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	StockHistory  []HistoryEntry  `json:"stockHistory"`
}

type QueryService interface {
	GetPosition(ctx context.Context, dealerID, modelID uuid.UUID) (*Position, error)
	GetHistory(ctx context.Context, dealerID, modelID uuid.UUID) ([]HistoryEntry, error)
	// Overview returns one position per model whose brand or model name
	// contains query, case-insensitively. An empty query matches all.
	Overview(ctx context.Context, dealerID uuid.UUID, query string) ([]ModelPosition, error)
}

type queryService struct {
	modelRepo    repository.VehicleModelRepository
	movementRepo repository.MovementRepository
}

func NewQueryService(mRepo repository.VehicleModelRepository, movRepo repository.MovementRepository) QueryService {
	return &queryService{
		modelRepo:    mRepo,
		movementRepo: movRepo,
	}
}

func (s *queryService) GetPosition(ctx context.Context, dealerID, modelID uuid.UUID) (*Position, error) {
	vm, err := s.modelRepo.FindByID(modelID)
	if err != nil || vm.Brand.DealerID != dealerID {
		return nil, ErrModelNotFound
	}

	latest, err := s.movementRepo.LatestForModel(modelID)
	if err != nil {
		return nil, err
	}

	quantity := 0
	if latest != nil {
		quantity = latest.RunningBalanceAfter
	}

	return &Position{
		CurrentQuantity: quantity,
		TotalAmount:     vm.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

func (s *queryService) GetHistory(ctx context.Context, dealerID, modelID uuid.UUID) ([]HistoryEntry, error) {
	vm, err := s.modelRepo.FindByID(modelID)
	if err != nil || vm.Brand.DealerID != dealerID {
		return nil, ErrModelNotFound
	}

	movements, err := s.movementRepo.ListForModel(modelID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(movements))
	for _, m := range movements {
		magnitude := m.Quantity
		if magnitude < 0 {
			magnitude = -magnitude
		}
		entries = append(entries, HistoryEntry{
			MovementID:          m.ID,
			Date:                m.OccurredAt,
			Quantity:            m.Quantity,
			RunningBalanceAfter: m.RunningBalanceAfter,
			Amount:              vm.Price.Mul(decimal.NewFromInt(int64(magnitude))),
		})
	}
	return entries, nil
}

func (s *queryService) Overview(ctx context.Context, dealerID uuid.UUID, query string) ([]ModelPosition, error) {
	models, err := s.modelRepo.ListByDealer(dealerID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))

	positions := make([]ModelPosition, 0, len(models))
	for _, vm := range models {
		if q != "" &&
			!strings.Contains(strings.ToLower(vm.Brand.Name), q) &&
			!strings.Contains(strings.ToLower(vm.Name), q) {
			continue
		}

		history, err := s.GetHistory(ctx, dealerID, vm.ID)
		if err != nil {
			return nil, err
		}

		quantity := 0
		if len(history) > 0 {
			// History is ordered by occurred_at; the stored balance of the
			// latest appended movement is still the current quantity.
			latest, err := s.movementRepo.LatestForModel(vm.ID)
			if err != nil {
				return nil, err
			}
			quantity = latest.RunningBalanceAfter
		}

		positions = append(positions, ModelPosition{
			ModelID:       vm.ID,
			BrandName:     vm.Brand.Name,
			ModelName:     vm.Name,
			Price:         vm.Price,
			TotalQuantity: quantity,
			TotalAmount:   vm.Price.Mul(decimal.NewFromInt(int64(quantity))),
			StockHistory:  history,
		})
	}

	return positions, nil
}
