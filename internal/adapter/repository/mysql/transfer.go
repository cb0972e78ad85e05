package mysql

import (
	"context"

	transferDomain "bottlekeep-backend/internal/domain/transfer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransferRepository struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) *TransferRepository { return &TransferRepository{db: db} }

func (r *TransferRepository) Create(ctx context.Context, it *transferDomain.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *TransferRepository) Save(ctx context.Context, it *transferDomain.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *TransferRepository) GetByTransferID(ctx context.Context, transferID string) (*transferDomain.Item, error) {
	var out transferDomain.Item
	res := r.db.WithContext(ctx).Where("transfer_id = ?", transferID).First(&out)
	return &out, res.Error
}

func (r *TransferRepository) GetByTransferIDForUpdate(ctx context.Context, transferID string) (*transferDomain.Item, error) {
	var out transferDomain.Item
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transfer_id = ?", transferID).
		First(&out)
	return &out, res.Error
}

func (r *TransferRepository) ListByCodeForUpdate(ctx context.Context, transferCode string) ([]transferDomain.Item, error) {
	var out []transferDomain.Item
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transfer_code = ?", transferCode).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TransferRepository) ListByStore(ctx context.Context, storeID string, p transferDomain.Perspective) ([]transferDomain.Item, error) {
	col := "from_store_id"
	if p == transferDomain.PerspectiveReceiving {
		col = "to_store_id"
	}
	var out []transferDomain.Item
	res := r.db.WithContext(ctx).
		Where(col+" = ?", storeID).
		Order("transfer_code ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TransferRepository) CountPendingByStore(ctx context.Context) (map[string]int64, error) {
	type row struct {
		StoreID string
		N       int64
	}
	var rows []row
	res := r.db.WithContext(ctx).
		Model(&transferDomain.Item{}).
		Select("from_store_id AS store_id, COUNT(*) AS n").
		Where("status = ?", transferDomain.StatusPending).
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
