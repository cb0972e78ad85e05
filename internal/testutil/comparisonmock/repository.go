package comparisonmock

import (
	"context"
	"time"

	domain "bottlekeep-backend/internal/domain/comparison"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                     func(ctx context.Context, c *domain.Comparison) error
	GetByComparisonIDFn          func(ctx context.Context, comparisonID string) (*domain.Comparison, error)
	GetByComparisonIDForUpdateFn func(ctx context.Context, comparisonID string) (*domain.Comparison, error)
	ListFn                       func(ctx context.Context, storeID string, compDate time.Time, statuses ...domain.Status) ([]domain.Comparison, error)
	SaveFn                       func(ctx context.Context, c *domain.Comparison) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Comparison) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *Repo) GetByComparisonID(ctx context.Context, comparisonID string) (*domain.Comparison, error) {
	if m.GetByComparisonIDFn != nil {
		return m.GetByComparisonIDFn(ctx, comparisonID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByComparisonIDForUpdate(ctx context.Context, comparisonID string) (*domain.Comparison, error) {
	if m.GetByComparisonIDForUpdateFn != nil {
		return m.GetByComparisonIDForUpdateFn(ctx, comparisonID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, storeID string, compDate time.Time, statuses ...domain.Status) ([]domain.Comparison, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, storeID, compDate, statuses...)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, c *domain.Comparison) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
