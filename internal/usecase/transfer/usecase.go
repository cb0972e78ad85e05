package transfer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"bottlekeep-backend/internal/domain/audit"
	domainDeposit "bottlekeep-backend/internal/domain/deposit"
	"bottlekeep-backend/internal/domain/notify"
	domainTransfer "bottlekeep-backend/internal/domain/transfer"
	"bottlekeep-backend/internal/domain/uow"
	domainWarehouse "bottlekeep-backend/internal/domain/warehouse"
	"bottlekeep-backend/pkg/id"
	"bottlekeep-backend/pkg/idgen"

	"gorm.io/gorm"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyBatch   = errors.New("a batch needs at least one deposit")
)

type Usecase struct {
	transfers domainTransfer.Repository
	uow       uow.UnitOfWork
	sink      audit.Sink
	notifier  notify.Notifier
}

func NewUsecase(transfers domainTransfer.Repository, tx uow.UnitOfWork, sink audit.Sink, notifier notify.Notifier) *Usecase {
	return &Usecase{transfers: transfers, uow: tx, sink: sink, notifier: notifier}
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

// CreateBatch stamps one shared transfer code on every expired deposit and
// parks them in transfer_pending. One failed guard rolls back the whole
// batch: no half-created batches.
func (u *Usecase) CreateBatch(ctx context.Context, in CreateBatchInput) (*BatchDTO, error) {
	if in.StoreID == "" || in.DestStoreID == "" || in.StoreID == in.DestStoreID {
		return nil, ErrInvalidInput
	}
	if len(in.DepositIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	code := idgen.NewTransferCode()
	var items []domainTransfer.Item

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		for _, depositID := range in.DepositIDs {
			d, err := r.Deposits.GetByDepositIDForUpdate(ctx, depositID)
			if err != nil {
				return domainDeposit.ErrNotFound
			}
			if d.StoreID != in.StoreID {
				return fmt.Errorf("%w: deposit %s belongs to another store", ErrInvalidInput, depositID)
			}
			if d.Status != domainDeposit.StatusExpired {
				return domainTransfer.ErrDepositNotExpired
			}
			if d.RemainingQty < 1 {
				return domainTransfer.ErrNothingToTransfer
			}

			it := domainTransfer.Item{
				TransferID:      id.NewID32(),
				TransferCode:    code,
				FromStoreID:     in.StoreID,
				ToStoreID:       in.DestStoreID,
				DepositID:       d.ID,
				DepositRef:      d.DepositID,
				ProductName:     d.ProductName,
				Quantity:        d.RemainingQty,
				Status:          domainTransfer.StatusPending,
				SendingPhotoURL: in.PhotoURL,
				Notes:           in.Notes,
			}
			if err := r.Transfers.Create(ctx, &it); err != nil {
				return err
			}

			if err := d.Transition(domainDeposit.StatusTransferPending); err != nil {
				return err
			}
			if err := r.Deposits.Save(ctx, d); err != nil {
				return err
			}
			items = append(items, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		u.audit(ctx, audit.Entry{
			StoreID: in.StoreID, ActionType: "transfer_create", Table: "transfer_items",
			RecordID: items[i].TransferID, NewValue: string(items[i].Status), ActorID: in.ActorID,
		})
	}
	u.notify(ctx, notify.Message{
		StoreID: in.DestStoreID, EventType: notify.EventTransferCreated,
		Title: "Incoming transfer batch",
		Body:  fmt.Sprintf("%d expired deposits shipped from %s", len(items), in.StoreID),
		Data:  map[string]any{"transfer_code": code},
	})

	dto := &BatchDTO{TransferCode: code}
	for i := range items {
		dto.Items = append(dto.Items, toItemDTO(&items[i]))
	}
	return dto, nil
}

// ConfirmItem is the destination store's receipt. The warehouse record is
// created and the source deposit flipped in the same transaction: exactly
// one HqDeposit per confirmed item.
func (u *Usecase) ConfirmItem(ctx context.Context, in ConfirmItemInput) (*ItemDTO, error) {
	var (
		it *domainTransfer.Item
		hq *domainWarehouse.HqDeposit
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		it, err = r.Transfers.GetByTransferIDForUpdate(ctx, in.TransferID)
		if err != nil {
			return domainTransfer.ErrNotFound
		}
		if it.ToStoreID != in.ActingStoreID {
			return domainTransfer.ErrWrongStore
		}
		if it.Status != domainTransfer.StatusPending {
			return domainTransfer.ErrConflict
		}

		if err := it.Transition(domainTransfer.StatusConfirmed); err != nil {
			return err
		}
		it.ReceivingPhotoURL = in.ReceivingPhotoURL
		if err := r.Transfers.Save(ctx, it); err != nil {
			return err
		}

		hq = &domainWarehouse.HqDeposit{
			HqDepositID:    id.NewID32(),
			TransferItemID: it.ID,
			DepositID:      it.DepositID,
			FromStoreID:    it.FromStoreID,
			Quantity:       it.Quantity,
			Status:         domainWarehouse.StatusAwaitingWithdrawal,
			ReceivedBy:     in.ActorID,
		}
		if err := r.Warehouse.Create(ctx, hq); err != nil {
			return err
		}

		n, err := r.Deposits.UpdateStatus(ctx, it.DepositID,
			domainDeposit.StatusTransferPending, domainDeposit.StatusTransferredOut)
		if err != nil {
			return err
		}
		if n == 0 {
			return domainDeposit.ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: in.ActingStoreID, ActionType: "transfer_confirm", Table: "transfer_items",
		RecordID: it.TransferID,
		OldValue: string(domainTransfer.StatusPending), NewValue: string(it.Status),
		ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		StoreID: it.FromStoreID, EventType: notify.EventTransferConfirmed,
		Title: "Transfer item received",
		Body:  fmt.Sprintf("%s x%d received at the warehouse", it.ProductName, it.Quantity),
		Data:  map[string]any{"transfer_id": it.TransferID, "hq_deposit_id": hq.HqDepositID},
	})
	dto := toItemDTO(it)
	return &dto, nil
}

// RejectBatch rejects every member of a batch and reverts every referenced
// deposit to expired in one transaction, so a deposit can never be left
// stuck referencing a rejected batch.
func (u *Usecase) RejectBatch(ctx context.Context, in RejectBatchInput) (*BatchDTO, error) {
	var items []domainTransfer.Item
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		items, err = r.Transfers.ListByCodeForUpdate(ctx, in.TransferCode)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domainTransfer.ErrNotFound
		}
		for i := range items {
			it := &items[i]
			if it.ToStoreID != in.ActingStoreID {
				return domainTransfer.ErrWrongStore
			}
			if it.Status == domainTransfer.StatusRejected {
				return domainTransfer.ErrConflict
			}
			wasConfirmed := it.Status == domainTransfer.StatusConfirmed

			// A confirmed item already spawned a warehouse record. Stock
			// disposed there no longer exists, so the batch cannot be
			// taken back; checked before any write.
			var hq *domainWarehouse.HqDeposit
			if wasConfirmed {
				found, err := r.Warehouse.GetByTransferItemID(ctx, it.ID)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if err == nil {
					if found.Status == domainWarehouse.StatusWithdrawn {
						return domainTransfer.ErrConflict
					}
					hq = found
				}
			}

			if err := it.Transition(domainTransfer.StatusRejected); err != nil {
				return err
			}
			it.Notes = in.Reason
			if err := r.Transfers.Save(ctx, it); err != nil {
				return err
			}

			// Revert the deposit from whichever transfer state it is in.
			from := domainDeposit.StatusTransferPending
			if wasConfirmed {
				from = domainDeposit.StatusTransferredOut
			}
			n, err := r.Deposits.UpdateStatus(ctx, it.DepositID, from, domainDeposit.StatusExpired)
			if err != nil {
				return err
			}
			if n == 0 {
				return domainDeposit.ErrConflict
			}

			if hq != nil {
				if err := r.Warehouse.Delete(ctx, hq.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		u.audit(ctx, audit.Entry{
			StoreID: in.ActingStoreID, ActionType: "transfer_reject", Table: "transfer_items",
			RecordID: items[i].TransferID, NewValue: string(domainTransfer.StatusRejected),
			ActorID: in.ActorID,
		})
	}
	u.notify(ctx, notify.Message{
		StoreID: items[0].FromStoreID, EventType: notify.EventTransferRejected,
		Title: "Transfer batch rejected", Body: in.Reason,
		Data: map[string]any{"transfer_code": in.TransferCode},
	})

	dto := &BatchDTO{TransferCode: in.TransferCode}
	for i := range items {
		dto.Items = append(dto.Items, toItemDTO(&items[i]))
	}
	return dto, nil
}

// ListGrouped returns the store's transfer items grouped by batch and
// partitioned by status. Legacy codeless items group under their own id.
func (u *Usecase) ListGrouped(ctx context.Context, storeID string, p domainTransfer.Perspective) ([]GroupDTO, error) {
	items, err := u.transfers.ListByStore(ctx, storeID, p)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*GroupDTO)
	var order []string
	for i := range items {
		it := &items[i]
		key := it.GroupKey()
		g, ok := groups[key]
		if !ok {
			g = &GroupDTO{TransferCode: key}
			groups[key] = g
			order = append(order, key)
		}
		dto := toItemDTO(it)
		switch it.Status {
		case domainTransfer.StatusConfirmed:
			g.Confirmed = append(g.Confirmed, dto)
		case domainTransfer.StatusRejected:
			g.Rejected = append(g.Rejected, dto)
		default:
			g.Pending = append(g.Pending, dto)
		}
	}

	sort.Strings(order)
	out := make([]GroupDTO, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out, nil
}

func toItemDTO(it *domainTransfer.Item) ItemDTO {
	return ItemDTO{
		TransferID:   it.TransferID,
		TransferCode: it.TransferCode,
		FromStoreID:  it.FromStoreID,
		ToStoreID:    it.ToStoreID,
		DepositID:    it.DepositRef,
		ProductName:  it.ProductName,
		Quantity:     it.Quantity,
		Status:       string(it.Status),
		CreatedAt:    it.CreatedAt,
	}
}
