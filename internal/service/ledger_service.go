package service

import (
	"context"
	"fmt"
	"time"

	"go-dealer-stock/internal/lock"
	"go-dealer-stock/internal/model"
	"go-dealer-stock/internal/repository"
	"go-dealer-stock/internal/ws"
	"go-dealer-stock/pkg/logger"
	"go-dealer-stock/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppendMovementRequest records one purchase or sale against a model.
// Quantity is the positive magnitude; the sign comes from Kind.
type AppendMovementRequest struct {
	ModelID    uuid.UUID          `json:"model_id" validate:"uuid_required"`
	Kind       model.MovementKind `json:"kind" validate:"required,oneof=PURCHASE SALE"`
	Quantity   int                `json:"quantity" validate:"required,gt=0"`
	OccurredAt time.Time          `json:"date" validate:"required"`
}

// AppendMovementResult carries the authoritative state after the commit,
// so callers never need a blind re-fetch.
type AppendMovementResult struct {
	MovementID          uuid.UUID `json:"movement_id"`
	RunningBalanceAfter int       `json:"running_balance_after"`
}

type LedgerService interface {
	AppendMovement(ctx context.Context, dealerID uuid.UUID, req *AppendMovementRequest) (*AppendMovementResult, error)
}

type ledgerService struct {
	modelRepo    repository.VehicleModelRepository
	movementRepo repository.MovementRepository
	locks        *lock.Keyed
	lockWait     time.Duration
	wsHub        *ws.Hub
	now          func() time.Time
}

// NewLedgerService takes the same Keyed instance the catalog uses, so
// movement appends and model deletion serialize on one slot per model.
func NewLedgerService(mRepo repository.VehicleModelRepository, movRepo repository.MovementRepository, locks *lock.Keyed, lockWait time.Duration, hub *ws.Hub) LedgerService {
	return &ledgerService{
		modelRepo:    mRepo,
		movementRepo: movRepo,
		locks:        locks,
		lockWait:     lockWait,
		wsHub:        hub,
		now:          time.Now,
	}
}

func lockKey(dealerID, modelID uuid.UUID) string {
	return dealerID.String() + "/" + modelID.String()
}

// acquireSlot bounds the wait for a keyed slot and maps the outcome onto
// the service error taxonomy: caller cancellation is surfaced as-is, a
// plain timeout becomes the retryable ErrLockTimeout.
func acquireSlot(ctx context.Context, locks *lock.Keyed, wait time.Duration, key string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	release, err := locks.Acquire(lockCtx, key)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrLockTimeout
	}
	return release, nil
}

// AppendMovement runs the balance-check-and-commit critical section.
// Appends for the same (dealer, model) pair are strictly serialized so two
// concurrent sales can never both read the same balance and jointly
// oversell; unrelated models never contend.
func (s *ledgerService) AppendMovement(ctx context.Context, dealerID uuid.UUID, req *AppendMovementRequest) (*AppendMovementResult, error) {
	// Input validation happens before any lock is taken.
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidInput, firstErr.FailedField, firstErr.Tag)
	}

	release, err := acquireSlot(ctx, s.locks, s.lockWait, lockKey(dealerID, req.ModelID))
	if err != nil {
		return nil, err
	}
	defer release()

	// Resolved inside the slot: a model deleted by a concurrent catalog
	// call must not gain movements afterwards.
	vm, err := s.modelRepo.FindByID(req.ModelID)
	if err != nil || vm.Brand.DealerID != dealerID {
		return nil, ErrModelNotFound
	}

	latest, err := s.movementRepo.LatestForModel(req.ModelID)
	if err != nil {
		return nil, err
	}

	balance := 0
	var prevRecordedAt time.Time
	if latest != nil {
		balance = latest.RunningBalanceAfter
		prevRecordedAt = latest.RecordedAt
	}

	signed := req.Quantity
	if req.Kind == model.MovementSale {
		signed = -signed
	}

	candidate := balance + signed
	if candidate < 0 {
		return nil, &InsufficientStockError{Available: balance, Requested: req.Quantity}
	}

	// Commit order is lock-acquisition order; clamp the timestamp so
	// recorded_at never decreases within one model's log.
	recordedAt := s.now()
	if recordedAt.Before(prevRecordedAt) {
		recordedAt = prevRecordedAt
	}

	movement := &model.StockMovement{
		ModelID:             req.ModelID,
		DealerID:            dealerID,
		Kind:                req.Kind,
		Quantity:            signed,
		OccurredAt:          req.OccurredAt,
		RecordedAt:          recordedAt,
		RunningBalanceAfter: candidate,
	}

	if err := s.movementRepo.Create(movement); err != nil {
		return nil, err
	}

	logger.WithModel(dealerID.String(), req.ModelID.String()).Info("movement recorded",
		zap.String("kind", string(req.Kind)),
		zap.Int("quantity", signed),
		zap.Int("balance", candidate),
	)

	if s.wsHub != nil {
		go s.wsHub.BroadcastJSON(dealerID, map[string]interface{}{
			"type":   "stock_update",
			"action": "movement_recorded",
			"movement": map[string]interface{}{
				"id":         movement.ID,
				"model_id":   req.ModelID,
				"model_name": vm.Name,
				"brand_name": vm.Brand.Name,
				"kind":       req.Kind,
				"quantity":   signed,
				"balance":    candidate,
			},
		})
	}

	return &AppendMovementResult{
		MovementID:          movement.ID,
		RunningBalanceAfter: candidate,
	}, nil
}
