package repository

import (
	"go-dealer-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealerRepository interface {
	Create(dealer *model.Dealer) error
	FindByEmail(email string) (*model.Dealer, error)
	UpdatePassword(dealerID uuid.UUID, hashedPassword string) error
}

type dealerRepo struct {
	db *gorm.DB
}

func NewDealerRepo(db *gorm.DB) DealerRepository {
	return &dealerRepo{db}
}

func (r *dealerRepo) Create(dealer *model.Dealer) error {
	return r.db.Create(dealer).Error
}

func (r *dealerRepo) FindByEmail(email string) (*model.Dealer, error) {
	var dealer model.Dealer
	if err := r.db.Where("email = ?", email).First(&dealer).Error; err != nil {
		return nil, err
	}
	return &dealer, nil
}

func (r *dealerRepo) UpdatePassword(dealerID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Dealer{}).Where("id = ?", dealerID).Update("password", hashedPassword).Error
}
