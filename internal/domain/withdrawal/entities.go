package withdrawal

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

var (
	ErrNotFound          = errors.New("withdrawal not found")
	ErrConflict          = errors.New("withdrawal changed by another actor")
	ErrInvalidTransition = errors.New("withdrawal transition not allowed")
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCompleted, StatusRejected},
	StatusApproved: {StatusCompleted, StatusRejected},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the withdrawal to the given status, or returns
// ErrInvalidTransition leaving it untouched.
func (w *Withdrawal) Transition(to Status) error {
	if !CanTransition(w.Status, to) {
		return ErrInvalidTransition
	}
	w.Status = to
	return nil
}

// Open reports whether a withdrawal can still be completed or rejected.
func (s Status) Open() bool { return s == StatusPending || s == StatusApproved }

type Withdrawal struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	WithdrawalID string `gorm:"column:withdrawal_id;type:char(32);not null;uniqueIndex:ux_withdrawals_withdrawal_id_active"`
	// FK to deposits.id (numeric)
	DepositID       uint64         `gorm:"column:deposit_id;not null;index"`
	RequestedQty    int            `gorm:"column:requested_qty;not null"`
	ActualQty       int            `gorm:"column:actual_qty"`
	Status          Status         `gorm:"column:status;size:32;not null"`
	PhotoURL        string         `gorm:"column:photo_url;type:text"`
	Notes           string         `gorm:"column:notes;type:text"`
	RejectionReason string         `gorm:"column:rejection_reason;type:text"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Withdrawal) TableName() string { return "withdrawals" }
