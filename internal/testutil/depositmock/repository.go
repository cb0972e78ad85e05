package depositmock

import (
	"context"
	"time"

	domain "bottlekeep-backend/internal/domain/deposit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters return
// context.Canceled so a forgotten stub fails loudly.
type Repo struct {
	CreateFn                  func(ctx context.Context, d *domain.Deposit) error
	GetByDepositIDFn          func(ctx context.Context, depositID string) (*domain.Deposit, error)
	GetByDepositIDForUpdateFn func(ctx context.Context, depositID string) (*domain.Deposit, error)
	GetByIDForUpdateFn        func(ctx context.Context, id uint64) (*domain.Deposit, error)
	ListByStoreFn             func(ctx context.Context, storeID string, statuses ...domain.Status) ([]domain.Deposit, error)
	SaveFn                    func(ctx context.Context, d *domain.Deposit) error
	UpdateStatusFn            func(ctx context.Context, id uint64, expected, next domain.Status) (int64, error)
	ExpireOverdueFn           func(ctx context.Context, now time.Time) (int64, error)
	CountExpiredByStoreFn     func(ctx context.Context) (map[string]int64, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Deposit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
func (m *Repo) GetByDepositID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	if m.GetByDepositIDFn != nil {
		return m.GetByDepositIDFn(ctx, depositID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByDepositIDForUpdate(ctx context.Context, depositID string) (*domain.Deposit, error) {
	if m.GetByDepositIDForUpdateFn != nil {
		return m.GetByDepositIDForUpdateFn(ctx, depositID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Deposit, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByStore(ctx context.Context, storeID string, statuses ...domain.Status) ([]domain.Deposit, error) {
	if m.ListByStoreFn != nil {
		return m.ListByStoreFn(ctx, storeID, statuses...)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, d *domain.Deposit) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}
func (m *Repo) UpdateStatus(ctx context.Context, id uint64, expected, next domain.Status) (int64, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, expected, next)
	}
	return 1, nil
}
func (m *Repo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireOverdueFn != nil {
		return m.ExpireOverdueFn(ctx, now)
	}
	return 0, nil
}
func (m *Repo) CountExpiredByStore(ctx context.Context) (map[string]int64, error) {
	if m.CountExpiredByStoreFn != nil {
		return m.CountExpiredByStoreFn(ctx)
	}
	return nil, nil
}
