package transfer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

var (
	ErrNotFound          = errors.New("transfer item not found")
	ErrConflict          = errors.New("transfer item changed by another actor")
	ErrWrongStore        = errors.New("only the destination store may act on this batch")
	ErrDepositNotExpired = errors.New("deposit is not expired and cannot join a transfer batch")
	ErrNothingToTransfer = errors.New("deposit has no remaining quantity to transfer")
	ErrInvalidTransition = errors.New("transfer item transition not allowed")
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusRejected},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the item to the given status, or returns
// ErrInvalidTransition leaving it untouched.
func (i *Item) Transition(to Status) error {
	if !CanTransition(i.Status, to) {
		return ErrInvalidTransition
	}
	i.Status = to
	return nil
}

// Item is one deposit's membership in a transfer batch. All items sharing
// a TransferCode move in lockstep. An empty TransferCode marks a legacy
// ungrouped item; its own id then acts as a singleton group key.
type Item struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	TransferID   string `gorm:"column:transfer_id;type:char(32);not null;uniqueIndex:ux_transfer_items_transfer_id_active"`
	TransferCode string `gorm:"column:transfer_code;size:64;index:idx_transfer_items_code"`
	FromStoreID  string `gorm:"column:from_store_id;size:32;not null;index"`
	ToStoreID    string `gorm:"column:to_store_id;size:32;not null;index"`
	// FK to deposits.id (numeric) plus the deposit's public id, kept
	// denormalized so listings don't need a join.
	DepositID         uint64         `gorm:"column:deposit_id;not null;index"`
	DepositRef        string         `gorm:"column:deposit_ref;type:char(32);not null"`
	ProductName       string         `gorm:"column:product_name;size:200;not null"`
	Quantity          int            `gorm:"column:quantity;not null"`
	Status            Status         `gorm:"column:status;size:32;not null"`
	SendingPhotoURL   string         `gorm:"column:sending_photo_url;type:text"`
	ReceivingPhotoURL string         `gorm:"column:receiving_photo_url;type:text"`
	Notes             string         `gorm:"column:notes;type:text"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Item) TableName() string { return "transfer_items" }

// GroupKey returns the batch key an item sorts under: the shared code, or
// the item's own public id for legacy codeless rows.
func (i Item) GroupKey() string {
	if i.TransferCode != "" {
		return i.TransferCode
	}
	return i.TransferID
}
