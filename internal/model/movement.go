package model

import (
	"time"

	"github.com/google/uuid"
)

type MovementKind string

const (
	MovementPurchase MovementKind = "PURCHASE"
	MovementSale     MovementKind = "SALE"
)

// StockMovement is one immutable ledger entry: a signed quantity applied to
// a vehicle model. Quantity is positive for a purchase and negative for a
// sale. RunningBalanceAfter is computed once at commit time and stored, so
// the ledger stays auditable without re-folding the log on every read.
type StockMovement struct {
	BaseModel
	ModelID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_model_order,priority:1" json:"model_id"`
	Model    VehicleModel `gorm:"foreignKey:ModelID" json:"-" validate:"-"`
	DealerID uuid.UUID    `gorm:"type:uuid;not null;index" json:"dealer_id"`
	Kind     MovementKind `gorm:"type:varchar(10);not null" json:"kind" validate:"required,oneof=PURCHASE SALE"`
	// Signed: +n purchase, -n sale. Magnitude always > 0.
	Quantity int `gorm:"not null" json:"quantity"`
	// Dealer-supplied date; may be backdated.
	OccurredAt time.Time `gorm:"type:date;not null;index:idx_movements_model_order,priority:2" json:"date"`
	// Server commit timestamp, monotonically non-decreasing per model.
	// Tie-breaker when two movements share an occurred_at date.
	RecordedAt          time.Time `gorm:"not null;index:idx_movements_model_order,priority:3" json:"recorded_at"`
	RunningBalanceAfter int       `gorm:"not null" json:"running_balance_after"`
}
