package mysql

import (
	"context"

	auditDomain "bottlekeep-backend/internal/domain/audit"

	"gorm.io/gorm"
)

// AuditSink appends audit_logs rows. It is deliberately outside the
// unit-of-work: a failed audit write never rolls back the transition.
type AuditSink struct{ db *gorm.DB }

func NewAuditSink(db *gorm.DB) *AuditSink { return &AuditSink{db: db} }

func (s *AuditSink) Record(ctx context.Context, e auditDomain.Entry) error {
	return s.db.WithContext(ctx).Create(&e).Error
}
