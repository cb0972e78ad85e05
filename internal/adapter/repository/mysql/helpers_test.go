package mysql

import (
	"testing"

	"bottlekeep-backend/internal/domain/audit"
	borrowDomain "bottlekeep-backend/internal/domain/borrow"
	comparisonDomain "bottlekeep-backend/internal/domain/comparison"
	depositDomain "bottlekeep-backend/internal/domain/deposit"
	transferDomain "bottlekeep-backend/internal/domain/transfer"
	warehouseDomain "bottlekeep-backend/internal/domain/warehouse"
	withdrawalDomain "bottlekeep-backend/internal/domain/withdrawal"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The
// domain models avoid vendor-specific column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&depositDomain.Deposit{},
		&withdrawalDomain.Withdrawal{},
		&transferDomain.Item{},
		&warehouseDomain.HqDeposit{},
		&borrowDomain.Borrow{},
		&borrowDomain.Item{},
		&comparisonDomain.Comparison{},
		&audit.Entry{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
