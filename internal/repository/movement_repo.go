package repository

import (
	"time"

	"go-dealer-stock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DealerStats is the aggregate overview shown on the dealer dashboard.
type DealerStats struct {
	TotalBrands    int64           `json:"total_brands"`
	TotalModels    int64           `json:"total_models"`
	TotalUnits     int64           `json:"total_units"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// DailyMovementData aggregates inbound/outbound units per day for charts.
type DailyMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type MovementRepository interface {
	// Create appends one immutable ledger entry. Movements are never
	// updated or deleted individually.
	Create(m *model.StockMovement) error
	// LatestForModel returns the most recently appended movement for the
	// model, or (nil, nil) if the model has no movements yet.
	LatestForModel(modelID uuid.UUID) (*model.StockMovement, error)
	// ListForModel returns the full history ordered by
	// (occurred_at, recorded_at) ascending.
	ListForModel(modelID uuid.UUID) ([]model.StockMovement, error)
	HasForModel(modelID uuid.UUID) (bool, error)
	GetDealerStats(dealerID uuid.UUID) (*DealerStats, error)
	GetDailyMovement(dealerID uuid.UUID, startDate, endDate time.Time) ([]DailyMovementData, error)
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

func (r *movementRepo) Create(m *model.StockMovement) error {
	return r.db.Create(m).Error
}

func (r *movementRepo) LatestForModel(modelID uuid.UUID) (*model.StockMovement, error) {
	var movement model.StockMovement
	err := r.db.Where("model_id = ?", modelID).
		Order("recorded_at DESC").
		Order("created_at DESC").
		First(&movement).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &movement, nil
}

func (r *movementRepo) ListForModel(modelID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Where("model_id = ?", modelID).
		Order("occurred_at ASC").
		Order("recorded_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *movementRepo) HasForModel(modelID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.StockMovement{}).Where("model_id = ?", modelID).Count(&count).Error
	return count > 0, err
}

func (r *movementRepo) GetDealerStats(dealerID uuid.UUID) (*DealerStats, error) {
	var stats DealerStats

	if err := r.db.Model(&model.Brand{}).Where("dealer_id = ?", dealerID).Count(&stats.TotalBrands).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.VehicleModel{}).
		Joins("JOIN brands ON brands.id = vehicle_models.brand_id").
		Where("brands.dealer_id = ? AND brands.deleted_at IS NULL", dealerID).
		Count(&stats.TotalModels).Error; err != nil {
		return nil, err
	}

	// Current units per model = running balance of the latest movement.
	err := r.db.Raw(`
		SELECT COALESCE(SUM(lb.balance), 0) AS total_units,
		       COALESCE(SUM(lb.balance * lb.price), 0) AS total_valuation
		FROM (
			SELECT DISTINCT ON (sm.model_id)
			       sm.running_balance_after AS balance,
			       vm.price AS price
			FROM stock_movements sm
			JOIN vehicle_models vm ON vm.id = sm.model_id
			WHERE sm.dealer_id = ? AND sm.deleted_at IS NULL
			ORDER BY sm.model_id, sm.recorded_at DESC, sm.created_at DESC
		) lb
	`, dealerID).Row().Scan(&stats.TotalUnits, &stats.TotalValuation)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *movementRepo) GetDailyMovement(dealerID uuid.UUID, startDate, endDate time.Time) ([]DailyMovementData, error) {
	var results []DailyMovementData

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(occurred_at) as date,
			COALESCE(SUM(CASE WHEN kind = 'PURCHASE' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN kind = 'SALE' THEN -quantity ELSE 0 END), 0) as outbound
		`).
		Where("dealer_id = ? AND occurred_at BETWEEN ? AND ?", dealerID, startDate, endDate).
		Group("DATE(occurred_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
