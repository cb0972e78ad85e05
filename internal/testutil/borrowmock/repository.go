package borrowmock

import (
	"context"

	domain "bottlekeep-backend/internal/domain/borrow"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, b *domain.Borrow) error
	GetByBorrowIDFn          func(ctx context.Context, borrowID string) (*domain.Borrow, error)
	GetByBorrowIDForUpdateFn func(ctx context.Context, borrowID string) (*domain.Borrow, error)
	ListByStoreFn            func(ctx context.Context, storeID string) ([]domain.Borrow, error)
	SaveFn                   func(ctx context.Context, b *domain.Borrow) error
}

func (m *Repo) Create(ctx context.Context, b *domain.Borrow) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}
func (m *Repo) GetByBorrowID(ctx context.Context, borrowID string) (*domain.Borrow, error) {
	if m.GetByBorrowIDFn != nil {
		return m.GetByBorrowIDFn(ctx, borrowID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByBorrowIDForUpdate(ctx context.Context, borrowID string) (*domain.Borrow, error) {
	if m.GetByBorrowIDForUpdateFn != nil {
		return m.GetByBorrowIDForUpdateFn(ctx, borrowID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByStore(ctx context.Context, storeID string) ([]domain.Borrow, error) {
	if m.ListByStoreFn != nil {
		return m.ListByStoreFn(ctx, storeID)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, b *domain.Borrow) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}
