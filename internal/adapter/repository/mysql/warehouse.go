package mysql

import (
	"context"

	warehouseDomain "bottlekeep-backend/internal/domain/warehouse"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WarehouseRepository struct{ db *gorm.DB }

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) Create(ctx context.Context, h *warehouseDomain.HqDeposit) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *WarehouseRepository) Save(ctx context.Context, h *warehouseDomain.HqDeposit) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *WarehouseRepository) GetByHqDepositID(ctx context.Context, hqDepositID string) (*warehouseDomain.HqDeposit, error) {
	var out warehouseDomain.HqDeposit
	res := r.db.WithContext(ctx).Where("hq_deposit_id = ?", hqDepositID).First(&out)
	return &out, res.Error
}

func (r *WarehouseRepository) GetByHqDepositIDForUpdate(ctx context.Context, hqDepositID string) (*warehouseDomain.HqDeposit, error) {
	var out warehouseDomain.HqDeposit
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hq_deposit_id = ?", hqDepositID).
		First(&out)
	return &out, res.Error
}

func (r *WarehouseRepository) GetByTransferItemID(ctx context.Context, transferItemID uint64) (*warehouseDomain.HqDeposit, error) {
	var out warehouseDomain.HqDeposit
	res := r.db.WithContext(ctx).Where("transfer_item_id = ?", transferItemID).First(&out)
	return &out, res.Error
}

func (r *WarehouseRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&warehouseDomain.HqDeposit{}, id).Error
}

func (r *WarehouseRepository) CountAwaitingByStore(ctx context.Context) (map[string]int64, error) {
	type row struct {
		StoreID string
		N       int64
	}
	var rows []row
	res := r.db.WithContext(ctx).
		Model(&warehouseDomain.HqDeposit{}).
		Select("from_store_id AS store_id, COUNT(*) AS n").
		Where("status = ?", warehouseDomain.StatusAwaitingWithdrawal).
		Group("from_store_id").
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
