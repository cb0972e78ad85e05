package borrow

import "time"

type ItemInput struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

type CreateBorrowInput struct {
	FromStoreID      string
	ToStoreID        string
	Items            []ItemInput
	Notes            string
	BorrowerPhotoURL string
	ActorID          string
}

type ApproveInput struct {
	BorrowID       string
	ActingStoreID  string
	LenderPhotoURL string
	ActorID        string
}

type RejectInput struct {
	BorrowID      string
	ActingStoreID string
	Reason        string
	ActorID       string
}

type ConfirmPosInput struct {
	BorrowID      string
	ActingStoreID string
	Side          string // "borrower" or "lender"
	ActorID       string
}

type UploadPhotoInput struct {
	BorrowID      string
	ActingStoreID string
	PhotoURL      string
	ActorID       string
}

type ItemDTO struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

// BorrowDTO is the aggregate returned by every borrow operation; JSON
// field names follow the public API contract (camelCase).
type BorrowDTO struct {
	BorrowID             string    `json:"borrowId"`
	FromStoreID          string    `json:"fromStoreId"`
	ToStoreID            string    `json:"toStoreId"`
	Status               string    `json:"status"`
	BorrowerPosConfirmed bool      `json:"borrowerPosConfirmed"`
	LenderPosConfirmed   bool      `json:"lenderPosConfirmed"`
	BorrowerPhotoURL     string    `json:"borrowerPhotoUrl,omitempty"`
	LenderPhotoURL       string    `json:"lenderPhotoUrl,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	RejectionReason      string    `json:"rejectionReason,omitempty"`
	Items                []ItemDTO `json:"items"`
	CreatedAt            time.Time `json:"createdAt"`
}
