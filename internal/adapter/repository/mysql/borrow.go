package mysql

import (
	"context"

	borrowDomain "bottlekeep-backend/internal/domain/borrow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BorrowRepository struct{ db *gorm.DB }

func NewBorrowRepository(db *gorm.DB) *BorrowRepository { return &BorrowRepository{db: db} }

func (r *BorrowRepository) Create(ctx context.Context, b *borrowDomain.Borrow) error {
	// gorm persists Items through the association in the same insert.
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowRepository) Save(ctx context.Context, b *borrowDomain.Borrow) error {
	// Items are immutable after creation; only the borrow row is saved.
	return r.db.WithContext(ctx).Omit("Items").Save(b).Error
}

func (r *BorrowRepository) GetByBorrowID(ctx context.Context, borrowID string) (*borrowDomain.Borrow, error) {
	var out borrowDomain.Borrow
	res := r.db.WithContext(ctx).
		Preload("Items").
		Where("borrow_id = ?", borrowID).
		First(&out)
	return &out, res.Error
}

// GetByBorrowIDForUpdate locks the borrow row and loads Items in a second,
// unlocked query. The lock covers only the parent row's status and flags;
// Items are written once at creation and never updated (Save omits the
// association), so the unlocked read cannot observe a stale item set.
func (r *BorrowRepository) GetByBorrowIDForUpdate(ctx context.Context, borrowID string) (*borrowDomain.Borrow, error) {
	var out borrowDomain.Borrow
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("borrow_id = ?", borrowID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if err := r.db.WithContext(ctx).Where("borrow_id = ?", out.ID).Find(&out.Items).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BorrowRepository) ListByStore(ctx context.Context, storeID string) ([]borrowDomain.Borrow, error) {
	var out []borrowDomain.Borrow
	res := r.db.WithContext(ctx).
		Preload("Items").
		Where("from_store_id = ? OR to_store_id = ?", storeID, storeID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
