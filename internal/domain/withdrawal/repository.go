package withdrawal

import "context"

type Repository interface {
	Create(ctx context.Context, w *Withdrawal) error
	GetByWithdrawalID(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	GetByWithdrawalIDForUpdate(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	ListByDeposit(ctx context.Context, depositNumericID uint64) ([]Withdrawal, error)
	Save(ctx context.Context, w *Withdrawal) error
}
