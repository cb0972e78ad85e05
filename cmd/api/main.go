package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "bottlekeep-backend/internal/adapter/http"
	"bottlekeep-backend/internal/adapter/middleware"
	"bottlekeep-backend/internal/adapter/notifier"
	"bottlekeep-backend/internal/adapter/repository/mysql"
	"bottlekeep-backend/internal/config"
	"bottlekeep-backend/internal/domain/audit"
	domainBorrow "bottlekeep-backend/internal/domain/borrow"
	domainComparison "bottlekeep-backend/internal/domain/comparison"
	domainDeposit "bottlekeep-backend/internal/domain/deposit"
	domainTransfer "bottlekeep-backend/internal/domain/transfer"
	domainWarehouse "bottlekeep-backend/internal/domain/warehouse"
	domainWithdrawal "bottlekeep-backend/internal/domain/withdrawal"
	"bottlekeep-backend/internal/infrastructure/cache"
	"bottlekeep-backend/internal/infrastructure/db"
	ucBorrow "bottlekeep-backend/internal/usecase/borrow"
	ucComparison "bottlekeep-backend/internal/usecase/comparison"
	ucDeposit "bottlekeep-backend/internal/usecase/deposit"
	ucTransfer "bottlekeep-backend/internal/usecase/transfer"
	ucWarehouse "bottlekeep-backend/internal/usecase/warehouse"
	"bottlekeep-backend/pkg/idgen"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := idgen.Init(cfg.NodeID); err != nil {
		log.Fatalf("idgen: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&domainDeposit.Deposit{},
		&domainWithdrawal.Withdrawal{},
		&domainTransfer.Item{},
		&domainWarehouse.HqDeposit{},
		&domainBorrow.Borrow{},
		&domainBorrow.Item{},
		&domainComparison.Comparison{},
		&audit.Entry{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	deposits := mysql.NewDepositRepository(gdb)
	withdrawals := mysql.NewWithdrawalRepository(gdb)
	transfers := mysql.NewTransferRepository(gdb)
	wh := mysql.NewWarehouseRepository(gdb)
	borrows := mysql.NewBorrowRepository(gdb)
	comparisons := mysql.NewComparisonRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	sink := mysql.NewAuditSink(gdb)
	notif := notifier.NewRedisNotifier(rdb, "bottlekeep:events")

	depositUC := ucDeposit.NewUsecase(deposits, withdrawals, tx, sink, notif)
	transferUC := ucTransfer.NewUsecase(transfers, tx, sink, notif)
	warehouseUC := ucWarehouse.NewUsecase(wh, transfers, deposits, tx, sink, notif)
	borrowUC := ucBorrow.NewUsecase(borrows, tx, sink, notif)
	comparisonUC := ucComparison.NewUsecase(comparisons, tx, sink, notif)

	h := httpadp.NewHandler()
	dh := httpadp.NewDepositHandler(depositUC)
	th := httpadp.NewTransferHandler(transferUC)
	wah := httpadp.NewWarehouseHandler(warehouseUC)
	bh := httpadp.NewBorrowHandler(borrowUC)
	ch := httpadp.NewComparisonHandler(comparisonUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	// Mutating routes go through the redis idempotency guard.
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	api := e.Group("", idemp)

	api.POST("/deposits", dh.CreateDeposit)
	api.POST("/deposits/:deposit_id/confirm", dh.ConfirmReceipt)
	api.POST("/deposits/:deposit_id/reject", dh.RejectReceipt)
	api.POST("/deposits/:deposit_id/withdrawals", dh.RequestWithdrawal)
	api.POST("/withdrawals/:withdrawal_id/complete", dh.CompleteWithdrawal)
	api.POST("/withdrawals/:withdrawal_id/reject", dh.RejectWithdrawal)
	api.POST("/deposits/expire-sweep", dh.ExpireSweep)
	e.GET("/deposits/:deposit_id", dh.GetDeposit)
	e.GET("/stores/:store_id/deposits", dh.ListDeposits)

	api.POST("/transfers", th.CreateBatch)
	api.POST("/transfers/:transfer_id/confirm", th.ConfirmItem)
	api.POST("/transfers/batches/:transfer_code/reject", th.RejectBatch)
	e.GET("/stores/:store_id/transfers", th.ListTransfers)

	api.POST("/warehouse/deposits/:hq_deposit_id/dispose", wah.Dispose)
	e.GET("/warehouse/deposits/:hq_deposit_id", wah.GetHqDeposit)
	e.GET("/warehouse/summary", wah.Summary)

	api.POST("/borrows", bh.CreateBorrow)
	api.PATCH("/borrows/:borrow_id", bh.PatchBorrow)
	e.GET("/borrows/:borrow_id", bh.GetBorrow)
	e.GET("/stores/:store_id/borrows", bh.ListBorrows)

	api.POST("/comparisons/import", ch.Import)
	api.POST("/comparisons/explain-all", ch.ExplainAll)
	api.POST("/comparisons/:comparison_id/explain", ch.Explain)
	api.POST("/comparisons/:comparison_id/approve", ch.Approve)
	api.POST("/comparisons/:comparison_id/reject", ch.Reject)
	e.GET("/stores/:store_id/comparisons", ch.ListComparisons)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
