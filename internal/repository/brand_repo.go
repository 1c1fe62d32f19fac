package repository

import (
	"go-dealer-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindByID(id uuid.UUID) (*model.Brand, error)
	FindByName(dealerID uuid.UUID, name string) (*model.Brand, error)
	ListByDealer(dealerID uuid.UUID) ([]model.Brand, error)
	Update(brand *model.Brand) error
	Delete(id uuid.UUID) error
	HasModels(brandID uuid.UUID) (bool, error)
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepo(db *gorm.DB) BrandRepository {
	return &brandRepo{db}
}

func (r *brandRepo) Create(brand *model.Brand) error {
	return r.db.Create(brand).Error
}

func (r *brandRepo) FindByID(id uuid.UUID) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) FindByName(dealerID uuid.UUID, name string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, "dealer_id = ? AND name = ?", dealerID, name).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) ListByDealer(dealerID uuid.UUID) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.Where("dealer_id = ?", dealerID).Order("created_at ASC").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) Update(brand *model.Brand) error {
	return r.db.Save(brand).Error
}

func (r *brandRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Brand{}, "id = ?", id).Error
}

func (r *brandRepo) HasModels(brandID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.VehicleModel{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count > 0, err
}
