package withdrawalmock

import (
	"context"

	domain "bottlekeep-backend/internal/domain/withdrawal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                     func(ctx context.Context, w *domain.Withdrawal) error
	GetByWithdrawalIDFn          func(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)
	GetByWithdrawalIDForUpdateFn func(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)
	ListByDepositFn              func(ctx context.Context, depositNumericID uint64) ([]domain.Withdrawal, error)
	SaveFn                       func(ctx context.Context, w *domain.Withdrawal) error
}

func (m *Repo) Create(ctx context.Context, w *domain.Withdrawal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}
func (m *Repo) GetByWithdrawalID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	if m.GetByWithdrawalIDFn != nil {
		return m.GetByWithdrawalIDFn(ctx, withdrawalID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByWithdrawalIDForUpdate(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	if m.GetByWithdrawalIDForUpdateFn != nil {
		return m.GetByWithdrawalIDForUpdateFn(ctx, withdrawalID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByDeposit(ctx context.Context, depositNumericID uint64) ([]domain.Withdrawal, error) {
	if m.ListByDepositFn != nil {
		return m.ListByDepositFn(ctx, depositNumericID)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, w *domain.Withdrawal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	return nil
}
