package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleModel is a sellable model under a brand. The unit price values
// on-hand stock at read time; price changes are never applied retroactively
// to recorded movements.
type VehicleModel struct {
	BaseModel
	BrandID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_models_brand_name,priority:1" json:"brand_id" validate:"uuid_required"`
	Brand   Brand           `json:"brand,omitempty" validate:"-"`
	Name    string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_models_brand_name,priority:2" json:"name" validate:"required"`
	Price   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price" validate:"decimal_gte_zero"`

	Movements []StockMovement `gorm:"foreignKey:ModelID" json:"movements,omitempty"`
}
