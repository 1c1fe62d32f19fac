package service

import (
	"sort"
	"sync"
	"time"

	"go-dealer-stock/internal/lock"
	"go-dealer-stock/internal/model"
	"go-dealer-stock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	_ repository.BrandRepository        = (*mockBrandRepo)(nil)
	_ repository.VehicleModelRepository = (*mockVehicleModelRepo)(nil)
	_ repository.MovementRepository     = (*mockMovementRepo)(nil)
	_ repository.DealerRepository       = (*mockDealerRepo)(nil)
)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// In-memory repositories for exercising the services without a database.

type mockBrandRepo struct {
	mu     sync.Mutex
	brands map[uuid.UUID]model.Brand
	models *mockVehicleModelRepo

	// beforeHasModels, when set, runs at the top of HasModels. Tests use
	// it to interleave concurrent catalog calls at the widest window.
	beforeHasModels func()
}

func newMockBrandRepo(models *mockVehicleModelRepo) *mockBrandRepo {
	return &mockBrandRepo{brands: make(map[uuid.UUID]model.Brand), models: models}
}

func (m *mockBrandRepo) Create(brand *model.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	brand.CreatedAt = time.Now()
	m.brands[brand.ID] = *brand
	return nil
}

func (m *mockBrandRepo) FindByID(id uuid.UUID) (*model.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.brands[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (m *mockBrandRepo) FindByName(dealerID uuid.UUID, name string) (*model.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if b.DealerID == dealerID && b.Name == name {
			found := b
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrandRepo) ListByDealer(dealerID uuid.UUID) ([]model.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Brand
	for _, b := range m.brands {
		if b.DealerID == dealerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockBrandRepo) Update(brand *model.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brands[brand.ID] = *brand
	return nil
}

func (m *mockBrandRepo) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.brands, id)
	return nil
}

func (m *mockBrandRepo) HasModels(brandID uuid.UUID) (bool, error) {
	if m.beforeHasModels != nil {
		m.beforeHasModels()
	}
	m.models.mu.Lock()
	defer m.models.mu.Unlock()
	for _, vm := range m.models.models {
		if vm.BrandID == brandID {
			return true, nil
		}
	}
	return false, nil
}

type mockVehicleModelRepo struct {
	mu     sync.Mutex
	models map[uuid.UUID]model.VehicleModel
	brands func(id uuid.UUID) (*model.Brand, error)
}

func newMockVehicleModelRepo() *mockVehicleModelRepo {
	return &mockVehicleModelRepo{models: make(map[uuid.UUID]model.VehicleModel)}
}

func (m *mockVehicleModelRepo) Create(vm *model.VehicleModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if vm.ID == uuid.Nil {
		vm.ID = uuid.New()
	}
	vm.CreatedAt = time.Now()
	m.models[vm.ID] = *vm
	return nil
}

func (m *mockVehicleModelRepo) FindByID(id uuid.UUID) (*model.VehicleModel, error) {
	m.mu.Lock()
	vm, ok := m.models[id]
	m.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if m.brands != nil {
		if b, err := m.brands(vm.BrandID); err == nil {
			vm.Brand = *b
		}
	}
	return &vm, nil
}

func (m *mockVehicleModelRepo) FindByName(brandID uuid.UUID, name string) (*model.VehicleModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, vm := range m.models {
		if vm.BrandID == brandID && vm.Name == name {
			found := vm
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVehicleModelRepo) ListByBrand(brandID uuid.UUID) ([]model.VehicleModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.VehicleModel
	for _, vm := range m.models {
		if vm.BrandID == brandID {
			out = append(out, vm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockVehicleModelRepo) ListByDealer(dealerID uuid.UUID) ([]model.VehicleModel, error) {
	m.mu.Lock()
	models := make([]model.VehicleModel, 0, len(m.models))
	for _, vm := range m.models {
		models = append(models, vm)
	}
	m.mu.Unlock()

	var out []model.VehicleModel
	for _, vm := range models {
		if m.brands == nil {
			continue
		}
		b, err := m.brands(vm.BrandID)
		if err != nil || b.DealerID != dealerID {
			continue
		}
		vm.Brand = *b
		out = append(out, vm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockVehicleModelRepo) Update(vm *model.VehicleModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *vm
	stored.Brand = model.Brand{}
	m.models[vm.ID] = stored
	return nil
}

func (m *mockVehicleModelRepo) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.models, id)
	return nil
}

type mockMovementRepo struct {
	mu        sync.Mutex
	movements []model.StockMovement

	// beforeHasForModel, when set, runs at the top of HasForModel.
	beforeHasForModel func()
}

func newMockMovementRepo() *mockMovementRepo {
	return &mockMovementRepo{}
}

func (m *mockMovementRepo) Create(sm *model.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sm.ID == uuid.Nil {
		sm.ID = uuid.New()
	}
	sm.CreatedAt = time.Now()
	m.movements = append(m.movements, *sm)
	return nil
}

func (m *mockMovementRepo) LatestForModel(modelID uuid.UUID) (*model.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.movements) - 1; i >= 0; i-- {
		if m.movements[i].ModelID == modelID {
			found := m.movements[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockMovementRepo) ListForModel(modelID uuid.UUID) ([]model.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.StockMovement
	for _, sm := range m.movements {
		if sm.ModelID == modelID {
			out = append(out, sm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}

func (m *mockMovementRepo) HasForModel(modelID uuid.UUID) (bool, error) {
	if m.beforeHasForModel != nil {
		m.beforeHasForModel()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sm := range m.movements {
		if sm.ModelID == modelID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMovementRepo) GetDealerStats(dealerID uuid.UUID) (*repository.DealerStats, error) {
	return &repository.DealerStats{}, nil
}

func (m *mockMovementRepo) GetDailyMovement(dealerID uuid.UUID, startDate, endDate time.Time) ([]repository.DailyMovementData, error) {
	return nil, nil
}

func (m *mockMovementRepo) count(modelID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, sm := range m.movements {
		if sm.ModelID == modelID {
			n++
		}
	}
	return n
}

type mockDealerRepo struct {
	mu      sync.Mutex
	dealers map[uuid.UUID]model.Dealer
}

func newMockDealerRepo() *mockDealerRepo {
	return &mockDealerRepo{dealers: make(map[uuid.UUID]model.Dealer)}
}

func (m *mockDealerRepo) Create(dealer *model.Dealer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dealer.ID == uuid.Nil {
		dealer.ID = uuid.New()
	}
	m.dealers[dealer.ID] = *dealer
	return nil
}

func (m *mockDealerRepo) FindByEmail(email string) (*model.Dealer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.dealers {
		if d.Email == email {
			found := d
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDealerRepo) UpdatePassword(dealerID uuid.UUID, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dealers[dealerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Password = hashedPassword
	m.dealers[dealerID] = d
	return nil
}

// testCatalog wires one dealer, one brand and one model into fresh mocks.
type testCatalog struct {
	dealerID  uuid.UUID
	brandID   uuid.UUID
	modelID   uuid.UUID
	brands    *mockBrandRepo
	models    *mockVehicleModelRepo
	movements *mockMovementRepo
}

func newTestCatalog(brandName, modelName string, price int64) *testCatalog {
	models := newMockVehicleModelRepo()
	brands := newMockBrandRepo(models)
	models.brands = brands.FindByID

	dealerID := uuid.New()
	brand := &model.Brand{DealerID: dealerID, Name: brandName}
	brands.Create(brand)

	vm := &model.VehicleModel{BrandID: brand.ID, Name: modelName, Price: decimalFromInt(price)}
	models.Create(vm)

	return &testCatalog{
		dealerID:  dealerID,
		brandID:   brand.ID,
		modelID:   vm.ID,
		brands:    brands,
		models:    models,
		movements: newMockMovementRepo(),
	}
}

func newTestCatalogService(cat *testCatalog) CatalogService {
	return NewCatalogService(cat.brands, cat.models, cat.movements, lock.NewKeyed(), time.Second)
}
