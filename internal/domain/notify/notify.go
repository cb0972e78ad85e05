package notify

import "context"

// Event types dispatched by the engines. Downstream delivery (push, LINE)
// subscribes to these; the engines only publish.
const (
	EventDepositRequested    = "deposit_requested"
	EventDepositConfirmed    = "deposit_confirmed"
	EventDepositRejected     = "deposit_rejected"
	EventWithdrawalRequested = "withdrawal_requested"
	EventWithdrawalCompleted = "withdrawal_completed"
	EventWithdrawalRejected  = "withdrawal_rejected"
	EventTransferCreated     = "transfer_created"
	EventTransferConfirmed   = "transfer_confirmed"
	EventTransferRejected    = "transfer_rejected"
	EventHqDisposed          = "hq_disposed"
	EventBorrowRequested     = "borrow_requested"
	EventBorrowApproved      = "borrow_approved"
	EventBorrowRejected      = "borrow_rejected"
	EventBorrowPosConfirmed  = "borrow_pos_confirmed"
	EventBorrowCompleted     = "borrow_completed"
	EventComparisonExplained = "comparison_explained"
	EventComparisonApproved  = "comparison_approved"
	EventComparisonRejected  = "comparison_rejected"
)

type Message struct {
	UserID    string         `json:"user_id,omitempty"`
	StoreID   string         `json:"store_id"`
	EventType string         `json:"event_type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
}

// Notifier is fire-and-forget: failures must never roll back or block the
// state transition that triggered the message.
type Notifier interface {
	Notify(ctx context.Context, m Message) error
}
