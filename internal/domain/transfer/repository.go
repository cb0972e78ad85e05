package transfer

import "context"

// Perspective selects which side of a transfer a listing is for.
type Perspective string

const (
	PerspectiveSending   Perspective = "sending"
	PerspectiveReceiving Perspective = "receiving"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByTransferID(ctx context.Context, transferID string) (*Item, error)
	GetByTransferIDForUpdate(ctx context.Context, transferID string) (*Item, error)
	// ListByCodeForUpdate locks every member of a batch for the duration
	// of the surrounding transaction.
	ListByCodeForUpdate(ctx context.Context, transferCode string) ([]Item, error)
	ListByStore(ctx context.Context, storeID string, p Perspective) ([]Item, error)
	Save(ctx context.Context, it *Item) error
	CountPendingByStore(ctx context.Context) (map[string]int64, error)
}
