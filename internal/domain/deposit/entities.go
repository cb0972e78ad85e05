package deposit

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingConfirm    Status = "pending_confirm"
	StatusInStore           Status = "in_store"
	StatusPendingWithdrawal Status = "pending_withdrawal"
	StatusWithdrawn         Status = "withdrawn"
	StatusExpired           Status = "expired"
	StatusTransferPending   Status = "transfer_pending"
	StatusTransferredOut    Status = "transferred_out"
)

var (
	ErrNotFound          = errors.New("deposit not found")
	ErrConflict          = errors.New("deposit changed by another actor")
	ErrInvalidTransition = errors.New("deposit transition not allowed")
)

// transitions is the single source of truth for legal status moves.
// withdrawn is terminal; transferred_out only leaves via batch reject.
var transitions = map[Status][]Status{
	StatusPendingConfirm:    {StatusInStore, StatusExpired},
	StatusInStore:           {StatusPendingWithdrawal, StatusExpired},
	StatusPendingWithdrawal: {StatusInStore, StatusWithdrawn, StatusExpired},
	StatusExpired:           {StatusTransferPending},
	StatusTransferPending:   {StatusTransferredOut, StatusExpired},
	StatusTransferredOut:    {StatusExpired},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the deposit to the given status, or returns
// ErrInvalidTransition leaving it untouched.
func (d *Deposit) Transition(to Status) error {
	if !CanTransition(d.Status, to) {
		return ErrInvalidTransition
	}
	d.Status = to
	d.StatusUpdatedAt = time.Now().UTC()
	return nil
}

type Deposit struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	DepositID       string         `gorm:"column:deposit_id;type:char(32);not null;uniqueIndex:ux_deposits_deposit_id_active"`
	StoreID         string         `gorm:"column:store_id;size:32;not null;index:idx_deposits_store_status"`
	CustomerID      *string        `gorm:"column:customer_id;type:char(32)"`
	ProductName     string         `gorm:"column:product_name;size:200;not null"`
	Category        string         `gorm:"column:category;size:64"`
	Quantity        int            `gorm:"column:quantity;not null"`
	RemainingQty    int            `gorm:"column:remaining_qty;not null"`
	Status          Status         `gorm:"column:status;size:32;not null;index:idx_deposits_store_status"`
	ExpiryDate      time.Time      `gorm:"column:expiry_date;not null"`
	PhotoURL        string         `gorm:"column:photo_url;type:text"`
	Notes           string         `gorm:"column:notes;type:text"`
	RejectionReason string         `gorm:"column:rejection_reason;type:text"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Deposit) TableName() string { return "deposits" }
