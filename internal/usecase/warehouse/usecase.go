package warehouse

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"bottlekeep-backend/internal/domain/audit"
	domainDeposit "bottlekeep-backend/internal/domain/deposit"
	"bottlekeep-backend/internal/domain/notify"
	domainTransfer "bottlekeep-backend/internal/domain/transfer"
	"bottlekeep-backend/internal/domain/uow"
	domainWarehouse "bottlekeep-backend/internal/domain/warehouse"
)

type Usecase struct {
	warehouse domainWarehouse.Repository
	transfers domainTransfer.Repository
	deposits  domainDeposit.Repository
	uow       uow.UnitOfWork
	sink      audit.Sink
	notifier  notify.Notifier
}

func NewUsecase(wh domainWarehouse.Repository, transfers domainTransfer.Repository, deposits domainDeposit.Repository, tx uow.UnitOfWork, sink audit.Sink, notifier notify.Notifier) *Usecase {
	return &Usecase{warehouse: wh, transfers: transfers, deposits: deposits, uow: tx, sink: sink, notifier: notifier}
}

func (u *Usecase) audit(ctx context.Context, e audit.Entry) {
	if u.sink == nil {
		return
	}
	if err := u.sink.Record(ctx, e); err != nil {
		log.Printf("audit sink: %v", err)
	}
}

func (u *Usecase) notify(ctx context.Context, m notify.Message) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, m); err != nil {
		log.Printf("notifier: %v", err)
	}
}

// Dispose finalizes a received item. withdrawn is terminal: there is no
// reversal path once bottles leave the warehouse.
func (u *Usecase) Dispose(ctx context.Context, in DisposeInput) (*HqDepositDTO, error) {
	var hq *domainWarehouse.HqDeposit
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		hq, err = r.Warehouse.GetByHqDepositIDForUpdate(ctx, in.HqDepositID)
		if err != nil {
			return domainWarehouse.ErrNotFound
		}
		if hq.Status != domainWarehouse.StatusAwaitingWithdrawal {
			return domainWarehouse.ErrConflict
		}
		if err := hq.Transition(domainWarehouse.StatusWithdrawn); err != nil {
			return err
		}
		now := time.Now().UTC()
		actor := in.ActorID
		hq.WithdrawnBy = &actor
		hq.WithdrawnAt = &now
		hq.Notes = in.Notes
		return r.Warehouse.Save(ctx, hq)
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: hq.FromStoreID, ActionType: "hq_dispose", Table: "hq_deposits",
		RecordID: hq.HqDepositID,
		OldValue: string(domainWarehouse.StatusAwaitingWithdrawal), NewValue: string(hq.Status),
		ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		StoreID: hq.FromStoreID, EventType: notify.EventHqDisposed,
		Title: "Warehouse stock disposed",
		Body:  fmt.Sprintf("%d bottles disposed at the warehouse", hq.Quantity),
		Data:  map[string]any{"hq_deposit_id": hq.HqDepositID},
	})
	return toDTO(hq), nil
}

func (u *Usecase) Get(ctx context.Context, hqDepositID string) (*HqDepositDTO, error) {
	hq, err := u.warehouse.GetByHqDepositID(ctx, hqDepositID)
	if err != nil {
		return nil, domainWarehouse.ErrNotFound
	}
	return toDTO(hq), nil
}

// Summary merges three per-branch counts for the warehouse dashboard.
func (u *Usecase) Summary(ctx context.Context) ([]BranchSummary, error) {
	pending, err := u.transfers.CountPendingByStore(ctx)
	if err != nil {
		return nil, err
	}
	awaiting, err := u.warehouse.CountAwaitingByStore(ctx)
	if err != nil {
		return nil, err
	}
	expired, err := u.deposits.CountExpiredByStore(ctx)
	if err != nil {
		return nil, err
	}

	stores := make(map[string]struct{})
	for s := range pending {
		stores[s] = struct{}{}
	}
	for s := range awaiting {
		stores[s] = struct{}{}
	}
	for s := range expired {
		stores[s] = struct{}{}
	}

	out := make([]BranchSummary, 0, len(stores))
	for s := range stores {
		out = append(out, BranchSummary{
			StoreID:              s,
			PendingTransferItems: pending[s],
			AwaitingWithdrawal:   awaiting[s],
			ExpiredDeposits:      expired[s],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out, nil
}

func toDTO(hq *domainWarehouse.HqDeposit) *HqDepositDTO {
	dto := &HqDepositDTO{
		HqDepositID: hq.HqDepositID,
		FromStoreID: hq.FromStoreID,
		Quantity:    hq.Quantity,
		Status:      string(hq.Status),
		ReceivedBy:  hq.ReceivedBy,
		WithdrawnAt: hq.WithdrawnAt,
		CreatedAt:   hq.CreatedAt,
	}
	if hq.WithdrawnBy != nil {
		dto.WithdrawnBy = *hq.WithdrawnBy
	}
	return dto
}
