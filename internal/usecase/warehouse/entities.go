package warehouse

import "time"

type DisposeInput struct {
	HqDepositID string
	ActorID     string
	Notes       string
}

type HqDepositDTO struct {
	HqDepositID string     `json:"hq_deposit_id"`
	FromStoreID string     `json:"from_store_id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	ReceivedBy  string     `json:"received_by"`
	WithdrawnBy string     `json:"withdrawn_by,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawn_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BranchSummary is a read-only dashboard row; it is not part of the state
// machine contract.
type BranchSummary struct {
	StoreID              string `json:"store_id"`
	PendingTransferItems int64  `json:"pending_transfer_items"`
	AwaitingWithdrawal   int64  `json:"awaiting_withdrawal"`
	ExpiredDeposits      int64  `json:"expired_deposits"`
}
