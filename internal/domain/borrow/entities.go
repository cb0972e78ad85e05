package borrow

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusPosAdjusting    Status = "pos_adjusting"
	StatusCompleted       Status = "completed"
	StatusRejected        Status = "rejected"
)

// Side names which party of a loan is acting.
type Side string

const (
	SideBorrower Side = "borrower"
	SideLender   Side = "lender"
)

var (
	ErrNotFound          = errors.New("borrow not found")
	ErrConflict          = errors.New("borrow changed by another actor")
	ErrWrongStore        = errors.New("store is not a party to this borrow")
	ErrInvalidTransition = errors.New("borrow transition not allowed")
)

var transitions = map[Status][]Status{
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusPosAdjusting, StatusCompleted},
	StatusPosAdjusting:    {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the borrow to the given status, or returns
// ErrInvalidTransition leaving it untouched.
func (b *Borrow) Transition(to Status) error {
	if !CanTransition(b.Status, to) {
		return ErrInvalidTransition
	}
	b.Status = to
	b.StatusUpdatedAt = time.Now().UTC()
	return nil
}

// Borrow is a peer-to-peer stock loan: FromStoreID borrows, ToStoreID
// lends. Completion requires both POS confirmation flags.
type Borrow struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	BorrowID    string `gorm:"column:borrow_id;type:char(32);not null;uniqueIndex:ux_borrows_borrow_id_active"`
	FromStoreID string `gorm:"column:from_store_id;size:32;not null;index"`
	ToStoreID   string `gorm:"column:to_store_id;size:32;not null;index"`
	Status      Status `gorm:"column:status;size:32;not null"`

	BorrowerPosConfirmed bool `gorm:"column:borrower_pos_confirmed;not null;default:false"`
	LenderPosConfirmed   bool `gorm:"column:lender_pos_confirmed;not null;default:false"`

	BorrowerPhotoURL string `gorm:"column:borrower_photo_url;type:text"`
	LenderPhotoURL   string `gorm:"column:lender_photo_url;type:text"`
	Notes            string `gorm:"column:notes;type:text"`
	RejectionReason  string `gorm:"column:rejection_reason;type:text"`

	Items []Item `gorm:"foreignKey:BorrowID;references:ID"`

	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Borrow) TableName() string { return "borrows" }

type Item struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FK to borrows.id (numeric)
	BorrowID    uint64    `gorm:"column:borrow_id;not null;index"`
	ProductName string    `gorm:"column:product_name;size:200;not null"`
	Category    string    `gorm:"column:category;size:64"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Unit        string    `gorm:"column:unit;size:32"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Item) TableName() string { return "borrow_items" }

// OtherStore names the counterparty of the given store.
func (b *Borrow) OtherStore(storeID string) string {
	if storeID == b.FromStoreID {
		return b.ToStoreID
	}
	return b.FromStoreID
}

// StoreSide resolves which side a store plays, or ErrWrongStore.
func (b *Borrow) StoreSide(storeID string) (Side, error) {
	switch storeID {
	case b.FromStoreID:
		return SideBorrower, nil
	case b.ToStoreID:
		return SideLender, nil
	default:
		return "", ErrWrongStore
	}
}
