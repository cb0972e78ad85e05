package comparison

import "time"

type ImportRow struct {
	ProductCode    string
	ProductName    string
	PosQuantity    *int
	ManualQuantity *int
}

type ImportInput struct {
	StoreID  string
	CompDate time.Time
	Rows     []ImportRow
	ActorID  string
}

type ExplainInput struct {
	ComparisonID string
	StaffID      string
	Text         string
}

type ExplainAllItem struct {
	ComparisonID string
	Text         string
}

type ReviewInput struct {
	ComparisonID string
	OwnerID      string
	Notes        string
}

// ExplainResult reports the per-item outcome of a batch submission; items
// are independent, so one failure never blocks the rest.
type ExplainResult struct {
	ComparisonID string `json:"comparison_id"`
	Error        string `json:"error,omitempty"`
}

type ComparisonDTO struct {
	ComparisonID   string    `json:"comparison_id"`
	StoreID        string    `json:"store_id"`
	CompDate       time.Time `json:"comp_date"`
	ProductCode    string    `json:"product_code"`
	ProductName    string    `json:"product_name,omitempty"`
	PosQuantity    *int      `json:"pos_quantity"`
	ManualQuantity *int      `json:"manual_quantity"`
	Difference     *int      `json:"difference"`
	DiffPercent    *float64  `json:"diff_percent"`
	Classification string    `json:"classification"`
	Status         string    `json:"status"`
	Explanation    string    `json:"explanation,omitempty"`
	OwnerNotes     string    `json:"owner_notes,omitempty"`
}
