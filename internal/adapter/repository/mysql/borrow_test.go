package mysql

import (
	"context"
	"testing"
	"time"

	borrowDomain "bottlekeep-backend/internal/domain/borrow"
	"bottlekeep-backend/pkg/id"
)

func makeBorrow(from, to string) *borrowDomain.Borrow {
	return &borrowDomain.Borrow{
		BorrowID:    id.NewID32(),
		FromStoreID: from,
		ToStoreID:   to,
		Status:      borrowDomain.StatusPendingApproval,
		Items: []borrowDomain.Item{
			{ProductName: "Kakubin", Quantity: 6, Unit: "bottle"},
			{ProductName: "Jim Beam", Quantity: 2, Unit: "bottle"},
		},
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestBorrow_CreatePersistsItems(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b := makeBorrow("store-a", "store-b")
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByBorrowID(ctx, b.BorrowID)
	if err != nil {
		t.Fatalf("GetByBorrowID: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items=%d", len(got.Items))
	}
	for _, it := range got.Items {
		if it.BorrowID != b.ID {
			t.Fatalf("item FK=%d want %d", it.BorrowID, b.ID)
		}
	}
}

func TestBorrow_SaveLeavesItemsAlone(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b := makeBorrow("store-a", "store-b")
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	b.Status = borrowDomain.StatusApproved
	b.Items = nil // caller dropped the association; Save must not cascade
	if err := repo.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByBorrowID(ctx, b.BorrowID)
	if err != nil {
		t.Fatalf("GetByBorrowID: %v", err)
	}
	if got.Status != borrowDomain.StatusApproved {
		t.Fatalf("status=%s", got.Status)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items after Save=%d", len(got.Items))
	}
}

func TestBorrow_ListByStore_EitherParty(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	asBorrower := makeBorrow("store-a", "store-b")
	asLender := makeBorrow("store-c", "store-a")
	unrelated := makeBorrow("store-x", "store-y")
	for _, b := range []*borrowDomain.Borrow{asBorrower, asLender, unrelated} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByStore(ctx, "store-a")
	if err != nil {
		t.Fatalf("ListByStore: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("borrows=%d", len(got))
	}
	for _, b := range got {
		if b.FromStoreID != "store-a" && b.ToStoreID != "store-a" {
			t.Fatalf("stranger borrow listed: %+v", b)
		}
		if len(b.Items) == 0 {
			t.Fatalf("items not preloaded for %s", b.BorrowID)
		}
	}
}
