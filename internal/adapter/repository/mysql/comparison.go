package mysql

import (
	"context"
	"time"

	comparisonDomain "bottlekeep-backend/internal/domain/comparison"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComparisonRepository struct{ db *gorm.DB }

func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

func (r *ComparisonRepository) Create(ctx context.Context, c *comparisonDomain.Comparison) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ComparisonRepository) Save(ctx context.Context, c *comparisonDomain.Comparison) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ComparisonRepository) GetByComparisonID(ctx context.Context, comparisonID string) (*comparisonDomain.Comparison, error) {
	var out comparisonDomain.Comparison
	res := r.db.WithContext(ctx).Where("comparison_id = ?", comparisonID).First(&out)
	return &out, res.Error
}

func (r *ComparisonRepository) GetByComparisonIDForUpdate(ctx context.Context, comparisonID string) (*comparisonDomain.Comparison, error) {
	var out comparisonDomain.Comparison
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("comparison_id = ?", comparisonID).
		First(&out)
	return &out, res.Error
}

func (r *ComparisonRepository) List(ctx context.Context, storeID string, compDate time.Time, statuses ...comparisonDomain.Status) ([]comparisonDomain.Comparison, error) {
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if !compDate.IsZero() {
		q = q.Where("comp_date = ?", compDate.Format("2006-01-02"))
	}
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []comparisonDomain.Comparison
	res := q.Order("product_code ASC").Find(&out)
	return out, res.Error
}
