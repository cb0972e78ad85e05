package warehouse

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusAwaitingWithdrawal Status = "awaiting_withdrawal"
	StatusWithdrawn          Status = "withdrawn"
)

var (
	ErrNotFound          = errors.New("hq deposit not found")
	ErrConflict          = errors.New("hq deposit changed by another actor")
	ErrInvalidTransition = errors.New("hq deposit transition not allowed")
)

// The warehouse record has exactly one legal move; withdrawn is terminal.
func CanTransition(from, to Status) bool {
	return from == StatusAwaitingWithdrawal && to == StatusWithdrawn
}

// Transition moves the record to the given status, or returns
// ErrInvalidTransition leaving it untouched.
func (h *HqDeposit) Transition(to Status) error {
	if !CanTransition(h.Status, to) {
		return ErrInvalidTransition
	}
	h.Status = to
	return nil
}

// HqDeposit is the warehouse-side record created when a transfer item is
// confirmed received at the central store. Exactly one exists per
// confirmed item.
type HqDeposit struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	HqDepositID string `gorm:"column:hq_deposit_id;type:char(32);not null;uniqueIndex:ux_hq_deposits_hq_deposit_id_active"`
	// FKs to transfer_items.id and deposits.id (numeric)
	TransferItemID uint64         `gorm:"column:transfer_item_id;not null;uniqueIndex:ux_hq_deposits_transfer_item_active"`
	DepositID      uint64         `gorm:"column:deposit_id;not null;index"`
	FromStoreID    string         `gorm:"column:from_store_id;size:32;not null;index"`
	Quantity       int            `gorm:"column:quantity;not null"`
	Status         Status         `gorm:"column:status;size:32;not null"`
	ReceivedBy     string         `gorm:"column:received_by;type:char(32)"`
	WithdrawnBy    *string        `gorm:"column:withdrawn_by;type:char(32)"`
	WithdrawnAt    *time.Time     `gorm:"column:withdrawn_at"`
	Notes          string         `gorm:"column:notes;type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (HqDeposit) TableName() string { return "hq_deposits" }
