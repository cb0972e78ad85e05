package warehousemock

import (
	"context"

	domain "bottlekeep-backend/internal/domain/warehouse"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, h *domain.HqDeposit) error
	GetByHqDepositIDFn          func(ctx context.Context, hqDepositID string) (*domain.HqDeposit, error)
	GetByHqDepositIDForUpdateFn func(ctx context.Context, hqDepositID string) (*domain.HqDeposit, error)
	GetByTransferItemIDFn       func(ctx context.Context, transferItemID uint64) (*domain.HqDeposit, error)
	SaveFn                      func(ctx context.Context, h *domain.HqDeposit) error
	DeleteFn                    func(ctx context.Context, id uint64) error
	CountAwaitingByStoreFn      func(ctx context.Context) (map[string]int64, error)
}

func (m *Repo) Create(ctx context.Context, h *domain.HqDeposit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, h)
	}
	return nil
}
func (m *Repo) GetByHqDepositID(ctx context.Context, hqDepositID string) (*domain.HqDeposit, error) {
	if m.GetByHqDepositIDFn != nil {
		return m.GetByHqDepositIDFn(ctx, hqDepositID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByHqDepositIDForUpdate(ctx context.Context, hqDepositID string) (*domain.HqDeposit, error) {
	if m.GetByHqDepositIDForUpdateFn != nil {
		return m.GetByHqDepositIDForUpdateFn(ctx, hqDepositID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByTransferItemID(ctx context.Context, transferItemID uint64) (*domain.HqDeposit, error) {
	if m.GetByTransferItemIDFn != nil {
		return m.GetByTransferItemIDFn(ctx, transferItemID)
	}
	return nil, context.Canceled
}
func (m *Repo) Save(ctx context.Context, h *domain.HqDeposit) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, h)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *Repo) CountAwaitingByStore(ctx context.Context) (map[string]int64, error) {
	if m.CountAwaitingByStoreFn != nil {
		return m.CountAwaitingByStoreFn(ctx)
	}
	return nil, nil
}
