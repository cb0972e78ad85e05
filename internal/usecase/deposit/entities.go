package deposit

import "time"

type CreateDepositInput struct {
	StoreID     string
	CustomerID  string // optional
	ProductName string
	Category    string
	Quantity    int
	ExpiryDate  time.Time
	ActorID     string
}

type ConfirmReceiptInput struct {
	DepositID string
	PhotoURL  string
	Notes     string
	ActorID   string
}

type RejectReceiptInput struct {
	DepositID string
	Reason    string
	ActorID   string
}

type RequestWithdrawalInput struct {
	DepositID    string
	RequestedQty int
	ActorID      string
}

type CompleteWithdrawalInput struct {
	WithdrawalID string
	ActualQty    int
	PhotoURL     string
	Notes        string
	ActorID      string
}

type RejectWithdrawalInput struct {
	WithdrawalID string
	Reason       string
	ActorID      string
}

type DepositDTO struct {
	DepositID    string    `json:"deposit_id"`
	StoreID      string    `json:"store_id"`
	CustomerID   string    `json:"customer_id,omitempty"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	RemainingQty int       `json:"remaining_qty"`
	Status       string    `json:"status"`
	ExpiryDate   time.Time `json:"expiry_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type WithdrawalDTO struct {
	WithdrawalID string    `json:"withdrawal_id"`
	DepositID    string    `json:"deposit_id"`
	RequestedQty int       `json:"requested_qty"`
	ActualQty    int       `json:"actual_qty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
