package borrow

import "context"

type Repository interface {
	// Create persists the borrow together with its items.
	Create(ctx context.Context, b *Borrow) error
	GetByBorrowID(ctx context.Context, borrowID string) (*Borrow, error)
	GetByBorrowIDForUpdate(ctx context.Context, borrowID string) (*Borrow, error)
	// ListByStore returns borrows where the store is either party.
	ListByStore(ctx context.Context, storeID string) ([]Borrow, error)
	Save(ctx context.Context, b *Borrow) error
}
