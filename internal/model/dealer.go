package model

import (
	"golang.org/x/crypto/bcrypt"
)

// Dealer is the authenticated owner of brands, models and stock movements.
// Everything a dealer records is private to that dealer.
type Dealer struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`

	Brands []Brand `json:"brands,omitempty"`
}

// SetPassword hashes and sets the dealer's password
func (d *Dealer) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (d *Dealer) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(d.Password), []byte(password))
	return err == nil
}
