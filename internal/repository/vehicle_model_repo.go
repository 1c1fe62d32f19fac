package repository

import (
	"go-dealer-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleModelRepository interface {
	Create(m *model.VehicleModel) error
	// FindByID preloads the owning brand so callers can check dealer ownership.
	FindByID(id uuid.UUID) (*model.VehicleModel, error)
	FindByName(brandID uuid.UUID, name string) (*model.VehicleModel, error)
	ListByBrand(brandID uuid.UUID) ([]model.VehicleModel, error)
	ListByDealer(dealerID uuid.UUID) ([]model.VehicleModel, error)
	Update(m *model.VehicleModel) error
	Delete(id uuid.UUID) error
}

type vehicleModelRepo struct {
	db *gorm.DB
}

func NewVehicleModelRepo(db *gorm.DB) VehicleModelRepository {
	return &vehicleModelRepo{db}
}

func (r *vehicleModelRepo) Create(m *model.VehicleModel) error {
	return r.db.Create(m).Error
}

func (r *vehicleModelRepo) FindByID(id uuid.UUID) (*model.VehicleModel, error) {
	var m model.VehicleModel
	if err := r.db.Preload("Brand").First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *vehicleModelRepo) FindByName(brandID uuid.UUID, name string) (*model.VehicleModel, error) {
	var m model.VehicleModel
	if err := r.db.First(&m, "brand_id = ? AND name = ?", brandID, name).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *vehicleModelRepo) ListByBrand(brandID uuid.UUID) ([]model.VehicleModel, error) {
	var models []model.VehicleModel
	err := r.db.Where("brand_id = ?", brandID).Order("created_at ASC").Find(&models).Error
	return models, err
}

func (r *vehicleModelRepo) ListByDealer(dealerID uuid.UUID) ([]model.VehicleModel, error) {
	var models []model.VehicleModel
	err := r.db.Preload("Brand").
		Joins("JOIN brands ON brands.id = vehicle_models.brand_id").
		Where("brands.dealer_id = ? AND brands.deleted_at IS NULL", dealerID).
		Order("vehicle_models.created_at ASC").
		Find(&models).Error
	return models, err
}

func (r *vehicleModelRepo) Update(m *model.VehicleModel) error {
	return r.db.Save(m).Error
}

func (r *vehicleModelRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.VehicleModel{}, "id = ?", id).Error
}
