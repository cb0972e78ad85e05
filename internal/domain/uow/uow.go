package uow

import (
	"context"

	"bottlekeep-backend/internal/domain/borrow"
	"bottlekeep-backend/internal/domain/comparison"
	"bottlekeep-backend/internal/domain/deposit"
	"bottlekeep-backend/internal/domain/transfer"
	"bottlekeep-backend/internal/domain/warehouse"
	"bottlekeep-backend/internal/domain/withdrawal"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Deposits    deposit.Repository
	Withdrawals withdrawal.Repository
	Transfers   transfer.Repository
	Warehouse   warehouse.Repository
	Borrows     borrow.Repository
	Comparisons comparison.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the borrow row first, then pass it in
	WithinBorrowTx(ctx context.Context, borrowID string, fn func(r Repos, b *borrow.Borrow) error) error
}
