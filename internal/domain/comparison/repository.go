package comparison

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Comparison) error
	GetByComparisonID(ctx context.Context, comparisonID string) (*Comparison, error)
	GetByComparisonIDForUpdate(ctx context.Context, comparisonID string) (*Comparison, error)
	// List filters by store and day; pass empty statuses for all.
	List(ctx context.Context, storeID string, compDate time.Time, statuses ...Status) ([]Comparison, error)
	Save(ctx context.Context, c *Comparison) error
}
