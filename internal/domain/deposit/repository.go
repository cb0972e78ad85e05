package deposit

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d *Deposit) error
	GetByDepositID(ctx context.Context, depositID string) (*Deposit, error)
	// Row-locked reads for use inside a unit-of-work transaction.
	GetByDepositIDForUpdate(ctx context.Context, depositID string) (*Deposit, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Deposit, error)
	ListByStore(ctx context.Context, storeID string, statuses ...Status) ([]Deposit, error)
	Save(ctx context.Context, d *Deposit) error

	// UpdateStatus is a conditional write: rows move from expected to next
	// only if still in expected. Returns rows affected; 0 means another
	// actor got there first.
	UpdateStatus(ctx context.Context, id uint64, expected, next Status) (int64, error)

	// ExpireOverdue flips in_store/pending_withdrawal deposits past their
	// expiry date to expired. Returns the number of rows swept.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)

	CountExpiredByStore(ctx context.Context) (map[string]int64, error)
}
