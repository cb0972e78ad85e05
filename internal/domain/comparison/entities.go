package comparison

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusExplained Status = "explained"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var (
	ErrNotFound          = errors.New("comparison not found")
	ErrConflict          = errors.New("comparison changed by another actor")
	ErrInvalidTransition = errors.New("comparison transition not allowed")
)

// Status only advances pending → explained → approved/rejected.
var transitions = map[Status][]Status{
	StatusPending:   {StatusExplained},
	StatusExplained: {StatusApproved, StatusRejected},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the row to the given status, or returns
// ErrInvalidTransition leaving it untouched.
func (c *Comparison) Transition(to Status) error {
	if !CanTransition(c.Status, to) {
		return ErrInvalidTransition
	}
	c.Status = to
	return nil
}

// Classification is derived from diff_percent, never stored.
type Classification string

const (
	ClassMatch           Classification = "match"
	ClassWithinTolerance Classification = "within_tolerance"
	ClassOverTolerance   Classification = "over_tolerance"
	ClassUnmeasured      Classification = "unmeasured"
)

const tolerancePercent = 5.0

// Classify buckets a POS-vs-manual discrepancy. A nil percent means one
// side was never measured.
func Classify(diffPercent *float64) Classification {
	if diffPercent == nil {
		return ClassUnmeasured
	}
	switch {
	case *diffPercent == 0:
		return ClassMatch
	case math.Abs(*diffPercent) <= tolerancePercent:
		return ClassWithinTolerance
	default:
		return ClassOverTolerance
	}
}

// Comparison is one product's daily POS-vs-manual-count discrepancy.
// Difference and DiffPercent stay NULL when either side is unmeasured.
type Comparison struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ComparisonID string `gorm:"column:comparison_id;type:char(32);not null;uniqueIndex:ux_comparisons_comparison_id_active"`
	StoreID      string `gorm:"column:store_id;size:32;not null;index:idx_comparisons_store_date"`
	CompDate     time.Time `gorm:"column:comp_date;type:date;not null;index:idx_comparisons_store_date"`
	ProductCode  string    `gorm:"column:product_code;size:64;not null"`
	ProductName  string    `gorm:"column:product_name;size:200"`

	PosQuantity    *int     `gorm:"column:pos_quantity"`
	ManualQuantity *int     `gorm:"column:manual_quantity"`
	Difference     *int     `gorm:"column:difference"`
	DiffPercent    *float64 `gorm:"column:diff_percent;type:decimal(8,2)"`

	Status      Status `gorm:"column:status;size:32;not null"`
	Explanation string `gorm:"column:explanation;type:text"`
	ExplainedBy string `gorm:"column:explained_by;type:char(32)"`
	OwnerNotes  string `gorm:"column:owner_notes;type:text"`
	ReviewedBy  string `gorm:"column:reviewed_by;type:char(32)"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Comparison) TableName() string { return "comparisons" }
