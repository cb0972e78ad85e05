package transfermock

import (
	"context"

	domain "bottlekeep-backend/internal/domain/transfer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, it *domain.Item) error
	GetByTransferIDFn          func(ctx context.Context, transferID string) (*domain.Item, error)
	GetByTransferIDForUpdateFn func(ctx context.Context, transferID string) (*domain.Item, error)
	ListByCodeForUpdateFn      func(ctx context.Context, transferCode string) ([]domain.Item, error)
	ListByStoreFn              func(ctx context.Context, storeID string, p domain.Perspective) ([]domain.Item, error)
	SaveFn                     func(ctx context.Context, it *domain.Item) error
	CountPendingByStoreFn      func(ctx context.Context) (map[string]int64, error)
}

func (m *Repo) Create(ctx context.Context, it *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, it)
	}
	return nil
}
func (m *Repo) GetByTransferID(ctx context.Context, transferID string) (*domain.Item, error) {
	if m.GetByTransferIDFn != nil {
		return m.GetByTransferIDFn(ctx, transferID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByTransferIDForUpdate(ctx context.Context, transferID string) (*domain.Item, error) {
	if m.GetByTransferIDForUpdateFn != nil {
		return m.GetByTransferIDForUpdateFn(ctx, transferID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByCodeForUpdate(ctx context.Context, transferCode string) ([]domain.Item, error) {
	if m.ListByCodeForUpdateFn != nil {
		return m.ListByCodeForUpdateFn(ctx, transferCode)
	}
	return nil, nil
}
func (m *Repo) ListByStore(ctx context.Context, storeID string, p domain.Perspective) ([]domain.Item, error) {
	if m.ListByStoreFn != nil {
		return m.ListByStoreFn(ctx, storeID, p)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, it *domain.Item) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, it)
	}
	return nil
}
func (m *Repo) CountPendingByStore(ctx context.Context) (map[string]int64, error) {
	if m.CountPendingByStoreFn != nil {
		return m.CountPendingByStoreFn(ctx)
	}
	return nil, nil
}
