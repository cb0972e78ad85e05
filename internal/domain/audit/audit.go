package audit

import (
	"context"
	"time"

	"bottlekeep-backend/pkg/idgen"

	"gorm.io/gorm"
)

// Entry is one appended state transition: who moved what from where to
// where. Rows are never updated or deleted.
type Entry struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	StoreID    string    `gorm:"column:store_id;size:32;index"`
	ActionType string    `gorm:"column:action_type;size:64;not null"`
	Table      string    `gorm:"column:table_name;size:64;not null"`
	RecordID   string    `gorm:"column:record_id;size:64;not null;index"`
	OldValue   string    `gorm:"column:old_value;type:text"`
	NewValue   string    `gorm:"column:new_value;type:text"`
	ActorID    string    `gorm:"column:actor_id;type:char(32)"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Entry) TableName() string { return "audit_logs" }

func (e *Entry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == 0 {
		e.ID = idgen.GenerateID()
	}
	return
}

// Sink records entries out-of-band: callers log failures and move on,
// never rolling back the transition that produced the entry.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}
