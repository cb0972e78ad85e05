package mysql

import (
	"context"
	"time"

	depositDomain "bottlekeep-backend/internal/domain/deposit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepositRepository struct{ db *gorm.DB }

func NewDepositRepository(db *gorm.DB) *DepositRepository { return &DepositRepository{db: db} }

func (r *DepositRepository) Create(ctx context.Context, d *depositDomain.Deposit) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DepositRepository) Save(ctx context.Context, d *depositDomain.Deposit) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DepositRepository) GetByDepositID(ctx context.Context, depositID string) (*depositDomain.Deposit, error) {
	var out depositDomain.Deposit
	res := r.db.WithContext(ctx).Where("deposit_id = ?", depositID).First(&out)
	return &out, res.Error
}

func (r *DepositRepository) GetByDepositIDForUpdate(ctx context.Context, depositID string) (*depositDomain.Deposit, error) {
	var out depositDomain.Deposit
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("deposit_id = ?", depositID).
		First(&out)
	return &out, res.Error
}

func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*depositDomain.Deposit, error) {
	var out depositDomain.Deposit
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *DepositRepository) ListByStore(ctx context.Context, storeID string, statuses ...depositDomain.Status) ([]depositDomain.Deposit, error) {
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []depositDomain.Deposit
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

// UpdateStatus is the conditional write every cross-actor transition rides
// on: zero rows affected means the expected prior status was already gone.
func (r *DepositRepository) UpdateStatus(ctx context.Context, id uint64, expected, next depositDomain.Status) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&depositDomain.Deposit{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":            next,
			"status_updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *DepositRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&depositDomain.Deposit{}).
		Where("expiry_date < ? AND status IN ?", now,
			[]depositDomain.Status{depositDomain.StatusInStore, depositDomain.StatusPendingWithdrawal}).
		Updates(map[string]any{
			"status":            depositDomain.StatusExpired,
			"status_updated_at": now.UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *DepositRepository) CountExpiredByStore(ctx context.Context) (map[string]int64, error) {
	type row struct {
		StoreID string
		N       int64
	}
	var rows []row
	res := r.db.WithContext(ctx).
		Model(&depositDomain.Deposit{}).
		Select("store_id, COUNT(*) AS n").
		Where("status = ?", depositDomain.StatusExpired).
		Group("store_id").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.StoreID] = r.N
	}
	return out, nil
}
