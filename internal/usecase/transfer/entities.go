package transfer

import "time"

type CreateBatchInput struct {
	StoreID     string
	DestStoreID string
	DepositIDs  []string // public deposit ids
	PhotoURL    string
	Notes       string
	ActorID     string
}

type ConfirmItemInput struct {
	TransferID        string
	ActingStoreID     string
	ReceivingPhotoURL string
	ActorID           string
}

type RejectBatchInput struct {
	TransferCode  string
	ActingStoreID string
	Reason        string
	ActorID       string
}

type ItemDTO struct {
	TransferID   string    `json:"transfer_id"`
	TransferCode string    `json:"transfer_code,omitempty"`
	FromStoreID  string    `json:"from_store_id"`
	ToStoreID    string    `json:"to_store_id"`
	DepositID    string    `json:"deposit_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// GroupDTO is one batch (or legacy singleton) partitioned by status.
type GroupDTO struct {
	TransferCode string    `json:"transfer_code"`
	Pending      []ItemDTO `json:"pending"`
	Confirmed    []ItemDTO `json:"confirmed"`
	Rejected     []ItemDTO `json:"rejected"`
}

type BatchDTO struct {
	TransferCode string    `json:"transfer_code"`
	Items        []ItemDTO `json:"items"`
}
