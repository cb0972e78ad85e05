package mysql

import (
	"context"

	"bottlekeep-backend/internal/domain/borrow"
	"bottlekeep-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Deposits:    &DepositRepository{db: tx},
		Withdrawals: &WithdrawalRepository{db: tx},
		Transfers:   &TransferRepository{db: tx},
		Warehouse:   &WarehouseRepository{db: tx},
		Borrows:     &BorrowRepository{db: tx},
		Comparisons: &ComparisonRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinBorrowTx(ctx context.Context, borrowID string, fn func(r uow.Repos, b *borrow.Borrow) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the borrow row up-front: dual-flag completion must be a
		// single read-modify-write
		b, err := r.Borrows.GetByBorrowIDForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		return fn(r, b)
	})
}
