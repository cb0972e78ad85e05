package warehouse

import "context"

type Repository interface {
	Create(ctx context.Context, h *HqDeposit) error
	GetByHqDepositID(ctx context.Context, hqDepositID string) (*HqDeposit, error)
	GetByHqDepositIDForUpdate(ctx context.Context, hqDepositID string) (*HqDeposit, error)
	GetByTransferItemID(ctx context.Context, transferItemID uint64) (*HqDeposit, error)
	Save(ctx context.Context, h *HqDeposit) error
	// Delete soft-deletes a warehouse record whose transfer item was
	// rejected after confirmation.
	Delete(ctx context.Context, id uint64) error
	CountAwaitingByStore(ctx context.Context) (map[string]int64, error)
}
