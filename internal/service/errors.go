package service

import (
	"errors"
	"fmt"
)

var (
	// Invalid input: rejected before any lock is taken, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// Not found: unknown record for this dealer. Cross-dealer lookups
	// answer the same way so record IDs never leak between dealers.
	ErrBrandNotFound = errors.New("brand not found")
	ErrModelNotFound = errors.New("model not found")

	// Catalog conflicts.
	ErrBrandNameTaken    = errors.New("brand name already exists")
	ErrModelNameTaken    = errors.New("model name already exists")
	ErrBrandHasModels    = errors.New("brand still has models")
	ErrModelHasMovements = errors.New("model has recorded movements")

	// Ledger.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrLockTimeout means the per-model append slot could not be acquired
	// in time. Nothing was written; safe to retry with backoff.
	ErrLockTimeout = errors.New("timed out waiting for model lock")

	// Auth.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// InsufficientStockError reports how short the sale fell so the caller can
// inform the dealer. Matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available, %d requested", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
