package service

import (
	"fmt"

	"go-dealer-stock/internal/model"
	"go-dealer-stock/internal/repository"
	"go-dealer-stock/pkg/jwt"
	"go-dealer-stock/pkg/validator"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(email, password, name string) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token  string        `json:"token"`
	Dealer *model.Dealer `json:"dealer"`
}

type authService struct {
	dealerRepo repository.DealerRepository
}

func NewAuthService(dealerRepo repository.DealerRepository) AuthService {
	return &authService{dealerRepo: dealerRepo}
}

func (s *authService) Register(email, password, name string) (*LoginResponse, error) {
	dealer := &model.Dealer{Email: email, Name: name}
	if errs := validator.ValidateStruct(dealer); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidInput, errs[0].FailedField, errs[0].Tag)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	existing, _ := s.dealerRepo.FindByEmail(email)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrEmailTaken
	}

	if err := dealer.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.dealerRepo.Create(dealer); err != nil {
		return nil, err
	}

	return s.issueToken(dealer)
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	dealer, err := s.dealerRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !dealer.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(dealer)
}

func (s *authService) issueToken(dealer *model.Dealer) (*LoginResponse, error) {
	token, err := jwt.GenerateToken(dealer.ID, dealer.Email, dealer.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, Dealer: dealer}, nil
}
