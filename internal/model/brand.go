package model

import "github.com/google/uuid"

// Brand groups vehicle models under a dealer. Name is unique per dealer.
type Brand struct {
	BaseModel
	DealerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_brands_dealer_name,priority:1" json:"dealer_id"`
	Dealer   Dealer    `json:"-" validate:"-"`
	Name     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_brands_dealer_name,priority:2" json:"name" validate:"required"`

	Models []VehicleModel `json:"models,omitempty"`
}
