package service

import (
	"context"
	"fmt"
	"time"

	"go-dealer-stock/internal/lock"
	"go-dealer-stock/internal/model"
	"go-dealer-stock/internal/repository"
	"go-dealer-stock/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService owns the brand/model records the ledger writes against.
// Every operation is scoped to the calling dealer; records owned by another
// dealer behave as if they do not exist.
type CatalogService interface {
	CreateBrand(ctx context.Context, dealerID uuid.UUID, name string) (*model.Brand, error)
	ListBrands(ctx context.Context, dealerID uuid.UUID) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, dealerID, brandID uuid.UUID, name string) (*model.Brand, error)
	// DeleteBrand rejects with ErrBrandHasModels while models reference it.
	DeleteBrand(ctx context.Context, dealerID, brandID uuid.UUID) error

	CreateModel(ctx context.Context, dealerID, brandID uuid.UUID, name string, price decimal.Decimal) (*model.VehicleModel, error)
	ListModels(ctx context.Context, dealerID, brandID uuid.UUID) ([]model.VehicleModel, error)
	UpdateModel(ctx context.Context, dealerID, modelID uuid.UUID, name string, price decimal.Decimal) (*model.VehicleModel, error)
	// DeleteModel rejects with ErrModelHasMovements while ledger entries
	// reference it; the movement log must never be orphaned.
	DeleteModel(ctx context.Context, dealerID, modelID uuid.UUID) error
}

type catalogService struct {
	brandRepo    repository.BrandRepository
	modelRepo    repository.VehicleModelRepository
	movementRepo repository.MovementRepository
	locks        *lock.Keyed
	lockWait     time.Duration
}

// NewCatalogService shares the ledger's Keyed instance: model deletion
// takes the model's slot so its referenced-by-movements check cannot
// interleave with an append, and brand deletion takes a brand slot
// against concurrent model creation.
func NewCatalogService(bRepo repository.BrandRepository, mRepo repository.VehicleModelRepository, movRepo repository.MovementRepository, locks *lock.Keyed, lockWait time.Duration) CatalogService {
	return &catalogService{
		brandRepo:    bRepo,
		modelRepo:    mRepo,
		movementRepo: movRepo,
		locks:        locks,
		lockWait:     lockWait,
	}
}

func brandLockKey(dealerID, brandID uuid.UUID) string {
	return dealerID.String() + "/brand/" + brandID.String()
}

func (s *catalogService) CreateBrand(ctx context.Context, dealerID uuid.UUID, name string) (*model.Brand, error) {
	brand := &model.Brand{DealerID: dealerID, Name: name}
	if errs := validator.ValidateStruct(brand); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidInput, errs[0].FailedField, errs[0].Tag)
	}

	existing, _ := s.brandRepo.FindByName(dealerID, name)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrBrandNameTaken
	}

	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) ListBrands(ctx context.Context, dealerID uuid.UUID) ([]model.Brand, error) {
	return s.brandRepo.ListByDealer(dealerID)
}

func (s *catalogService) UpdateBrand(ctx context.Context, dealerID, brandID uuid.UUID, name string) (*model.Brand, error) {
	brand, err := s.ownedBrand(dealerID, brandID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if name != brand.Name {
		existing, _ := s.brandRepo.FindByName(dealerID, name)
		if existing != nil && existing.ID != uuid.Nil {
			return nil, ErrBrandNameTaken
		}
	}

	brand.Name = name
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) DeleteBrand(ctx context.Context, dealerID, brandID uuid.UUID) error {
	release, err := acquireSlot(ctx, s.locks, s.lockWait, brandLockKey(dealerID, brandID))
	if err != nil {
		return err
	}
	defer release()

	brand, err := s.ownedBrand(dealerID, brandID)
	if err != nil {
		return err
	}

	hasModels, err := s.brandRepo.HasModels(brand.ID)
	if err != nil {
		return err
	}
	if hasModels {
		return ErrBrandHasModels
	}

	return s.brandRepo.Delete(brand.ID)
}

func (s *catalogService) CreateModel(ctx context.Context, dealerID, brandID uuid.UUID, name string, price decimal.Decimal) (*model.VehicleModel, error) {
	// Same slot as DeleteBrand, so a model cannot be inserted under a
	// brand that is being deleted.
	release, err := acquireSlot(ctx, s.locks, s.lockWait, brandLockKey(dealerID, brandID))
	if err != nil {
		return nil, err
	}
	defer release()

	brand, err := s.ownedBrand(dealerID, brandID)
	if err != nil {
		return nil, err
	}

	vm := &model.VehicleModel{BrandID: brand.ID, Name: name, Price: price}
	if errs := validator.ValidateStruct(vm); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidInput, errs[0].FailedField, errs[0].Tag)
	}

	existing, _ := s.modelRepo.FindByName(brand.ID, name)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrModelNameTaken
	}

	if err := s.modelRepo.Create(vm); err != nil {
		return nil, err
	}
	return vm, nil
}

func (s *catalogService) ListModels(ctx context.Context, dealerID, brandID uuid.UUID) ([]model.VehicleModel, error) {
	brand, err := s.ownedBrand(dealerID, brandID)
	if err != nil {
		return nil, err
	}
	return s.modelRepo.ListByBrand(brand.ID)
}

func (s *catalogService) UpdateModel(ctx context.Context, dealerID, modelID uuid.UUID, name string, price decimal.Decimal) (*model.VehicleModel, error) {
	vm, err := s.ownedModel(dealerID, modelID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if name != vm.Name {
		existing, _ := s.modelRepo.FindByName(vm.BrandID, name)
		if existing != nil && existing.ID != uuid.Nil {
			return nil, ErrModelNameTaken
		}
	}

	// Price changes are allowed; they are reflected in read-side valuations
	// only, never applied retroactively to recorded movements.
	vm.Name = name
	vm.Price = price
	if err := s.modelRepo.Update(vm); err != nil {
		return nil, err
	}
	return vm, nil
}

func (s *catalogService) DeleteModel(ctx context.Context, dealerID, modelID uuid.UUID) error {
	// The ledger appends under this slot too; holding it here keeps the
	// referenced-by-movements check and the delete atomic with respect
	// to concurrent appends.
	release, err := acquireSlot(ctx, s.locks, s.lockWait, lockKey(dealerID, modelID))
	if err != nil {
		return err
	}
	defer release()

	vm, err := s.ownedModel(dealerID, modelID)
	if err != nil {
		return err
	}

	hasMovements, err := s.movementRepo.HasForModel(vm.ID)
	if err != nil {
		return err
	}
	if hasMovements {
		return ErrModelHasMovements
	}

	return s.modelRepo.Delete(vm.ID)
}

func (s *catalogService) ownedBrand(dealerID, brandID uuid.UUID) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(brandID)
	if err != nil || brand.DealerID != dealerID {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

func (s *catalogService) ownedModel(dealerID, modelID uuid.UUID) (*model.VehicleModel, error) {
	vm, err := s.modelRepo.FindByID(modelID)
	if err != nil || vm.Brand.DealerID != dealerID {
		return nil, ErrModelNotFound
	}
	return vm, nil
}
