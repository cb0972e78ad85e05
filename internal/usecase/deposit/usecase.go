package deposit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bottlekeep-backend/internal/domain/audit"
	domainDeposit "bottlekeep-backend/internal/domain/deposit"
	"bottlekeep-backend/internal/domain/notify"
	"bottlekeep-backend/internal/domain/uow"
	domainWithdrawal "bottlekeep-backend/internal/domain/withdrawal"
	"bottlekeep-backend/pkg/id"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrReasonRequired   = errors.New("a non-empty reason is required")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrQuantityExceeds  = errors.New("quantity exceeds remaining deposit quantity")
	ErrWithdrawalClosed = errors.New("withdrawal is no longer open")
)

type Usecase struct {
	deposits    domainDeposit.Repository
	withdrawals domainWithdrawal.Repository
	uow         uow.UnitOfWork
	sink        audit.Sink
	notifier    notify.Notifier
}

func NewUsecase(deposits domainDeposit.Repository, withdrawals domainWithdrawal.Repository, tx uow.UnitOfWork, sink audit.Sink, notifier notify.Notifier) *Usecase {
	return &Usecase{deposits: deposits, withdrawals: withdrawals, uow: tx, sink: sink, notifier: notifier}
}

// audit/notify run after the transaction committed; failures are logged
// and never propagate.
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

// Create registers a customer's deposit request; staff confirm it later.
func (u *Usecase) Create(ctx context.Context, in CreateDepositInput) (*DepositDTO, error) {
	if in.StoreID == "" || in.ProductName == "" {
		return nil, ErrInvalidInput
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if in.ExpiryDate.IsZero() {
		return nil, fmt.Errorf("%w: missing expiry date", ErrInvalidInput)
	}

	d := &domainDeposit.Deposit{
		DepositID:       id.NewID32(),
		StoreID:         in.StoreID,
		ProductName:     in.ProductName,
		Category:        in.Category,
		Quantity:        in.Quantity,
		RemainingQty:    in.Quantity,
		Status:          domainDeposit.StatusPendingConfirm,
		ExpiryDate:      in.ExpiryDate,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if in.CustomerID != "" {
		c := in.CustomerID
		d.CustomerID = &c
	}
	if err := u.deposits.Create(ctx, d); err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: d.StoreID, ActionType: "deposit_create", Table: "deposits",
		RecordID: d.DepositID, NewValue: string(d.Status), ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		UserID: in.CustomerID, StoreID: d.StoreID, EventType: notify.EventDepositRequested,
		Title: "Deposit requested", Body: fmt.Sprintf("%s x%d awaiting staff confirmation", d.ProductName, d.Quantity),
		Data: map[string]any{"deposit_id": d.DepositID},
	})
	return toDepositDTO(d), nil
}

// ConfirmReceipt moves pending_confirm → in_store once staff have the
// bottles in hand.
func (u *Usecase) ConfirmReceipt(ctx context.Context, in ConfirmReceiptInput) (*DepositDTO, error) {
	var d *domainDeposit.Deposit
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		d, err = r.Deposits.GetByDepositIDForUpdate(ctx, in.DepositID)
		if err != nil {
			return domainDeposit.ErrNotFound
		}
		if d.Status != domainDeposit.StatusPendingConfirm {
			return domainDeposit.ErrConflict
		}
		if err := d.Transition(domainDeposit.StatusInStore); err != nil {
			return err
		}
		d.PhotoURL = in.PhotoURL
		d.Notes = in.Notes
		return r.Deposits.Save(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: d.StoreID, ActionType: "deposit_confirm", Table: "deposits",
		RecordID: d.DepositID,
		OldValue: string(domainDeposit.StatusPendingConfirm), NewValue: string(d.Status),
		ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		UserID: deref(d.CustomerID), StoreID: d.StoreID, EventType: notify.EventDepositConfirmed,
		Title: "Deposit confirmed", Body: fmt.Sprintf("%s x%d is now stored", d.ProductName, d.Quantity),
		Data: map[string]any{"deposit_id": d.DepositID},
	})
	return toDepositDTO(d), nil
}

// RejectReceipt refuses a pending deposit. The item never entered stock,
// so remaining quantity drops to zero and the row parks in expired.
func (u *Usecase) RejectReceipt(ctx context.Context, in RejectReceiptInput) (*DepositDTO, error) {
	if in.Reason == "" {
		return nil, ErrReasonRequired
	}
	var d *domainDeposit.Deposit
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		d, err = r.Deposits.GetByDepositIDForUpdate(ctx, in.DepositID)
		if err != nil {
			return domainDeposit.ErrNotFound
		}
		if d.Status != domainDeposit.StatusPendingConfirm {
			return domainDeposit.ErrConflict
		}
		if err := d.Transition(domainDeposit.StatusExpired); err != nil {
			return err
		}
		d.RemainingQty = 0
		d.RejectionReason = in.Reason
		return r.Deposits.Save(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: d.StoreID, ActionType: "deposit_reject", Table: "deposits",
		RecordID: d.DepositID,
		OldValue: string(domainDeposit.StatusPendingConfirm), NewValue: string(d.Status),
		ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		UserID: deref(d.CustomerID), StoreID: d.StoreID, EventType: notify.EventDepositRejected,
		Title: "Deposit rejected", Body: in.Reason,
		Data: map[string]any{"deposit_id": d.DepositID},
	})
	return toDepositDTO(d), nil
}

// RequestWithdrawal opens a withdrawal against an in-store deposit and
// parks the deposit in pending_withdrawal until staff complete or reject.
func (u *Usecase) RequestWithdrawal(ctx context.Context, in RequestWithdrawalInput) (*WithdrawalDTO, error) {
	if in.RequestedQty < 1 {
		return nil, ErrInvalidQuantity
	}
	var (
		d *domainDeposit.Deposit
		w *domainWithdrawal.Withdrawal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		d, err = r.Deposits.GetByDepositIDForUpdate(ctx, in.DepositID)
		if err != nil {
			return domainDeposit.ErrNotFound
		}
		if d.Status != domainDeposit.StatusInStore {
			return domainDeposit.ErrConflict
		}
		if in.RequestedQty > d.RemainingQty {
			return ErrQuantityExceeds
		}
		w = &domainWithdrawal.Withdrawal{
			WithdrawalID: id.NewID32(),
			DepositID:    d.ID,
			RequestedQty: in.RequestedQty,
			Status:       domainWithdrawal.StatusPending,
		}
		if err := r.Withdrawals.Create(ctx, w); err != nil {
			return err
		}
		if err := d.Transition(domainDeposit.StatusPendingWithdrawal); err != nil {
			return err
		}
		return r.Deposits.Save(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: d.StoreID, ActionType: "withdrawal_request", Table: "withdrawals",
		RecordID: w.WithdrawalID, NewValue: string(w.Status), ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		UserID: deref(d.CustomerID), StoreID: d.StoreID, EventType: notify.EventWithdrawalRequested,
		Title: "Withdrawal requested", Body: fmt.Sprintf("%s x%d requested", d.ProductName, in.RequestedQty),
		Data: map[string]any{"withdrawal_id": w.WithdrawalID, "deposit_id": d.DepositID},
	})
	return toWithdrawalDTO(w, d.DepositID), nil
}

// CompleteWithdrawal hands over actualQty bottles. The remaining quantity
// is re-checked under the row lock, never trusted from an earlier read.
func (u *Usecase) CompleteWithdrawal(ctx context.Context, in CompleteWithdrawalInput) (*WithdrawalDTO, error) {
	if in.ActualQty <= 0 {
		return nil, ErrInvalidQuantity
	}
	var (
		d *domainDeposit.Deposit
		w *domainWithdrawal.Withdrawal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		w, err = r.Withdrawals.GetByWithdrawalIDForUpdate(ctx, in.WithdrawalID)
		if err != nil {
			return domainWithdrawal.ErrNotFound
		}
		if !w.Status.Open() {
			return ErrWithdrawalClosed
		}
		d, err = r.Deposits.GetByIDForUpdate(ctx, w.DepositID)
		if err != nil {
			return domainDeposit.ErrNotFound
		}
		if in.ActualQty > d.RemainingQty {
			return ErrQuantityExceeds
		}

		d.RemainingQty -= in.ActualQty
		next := domainDeposit.StatusInStore
		if d.RemainingQty == 0 {
			next = domainDeposit.StatusWithdrawn
		}
		if err := d.Transition(next); err != nil {
			return err
		}
		if err := r.Deposits.Save(ctx, d); err != nil {
			return err
		}

		w.ActualQty = in.ActualQty
		if err := w.Transition(domainWithdrawal.StatusCompleted); err != nil {
			return err
		}
		w.PhotoURL = in.PhotoURL
		w.Notes = in.Notes
		return r.Withdrawals.Save(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: d.StoreID, ActionType: "withdrawal_complete", Table: "withdrawals",
		RecordID: w.WithdrawalID, NewValue: string(w.Status), ActorID: in.ActorID,
	})
	u.audit(ctx, audit.Entry{
		StoreID: d.StoreID, ActionType: "deposit_qty_change", Table: "deposits",
		RecordID: d.DepositID,
		OldValue: fmt.Sprintf("remaining=%d", d.RemainingQty+in.ActualQty),
		NewValue: fmt.Sprintf("remaining=%d status=%s", d.RemainingQty, d.Status),
		ActorID:  in.ActorID,
	})
	u.notify(ctx, notify.Message{
		UserID: deref(d.CustomerID), StoreID: d.StoreID, EventType: notify.EventWithdrawalCompleted,
		Title: "Withdrawal completed", Body: fmt.Sprintf("%s x%d handed over", d.ProductName, in.ActualQty),
		Data: map[string]any{"withdrawal_id": w.WithdrawalID, "deposit_id": d.DepositID},
	})
	return toWithdrawalDTO(w, d.DepositID), nil
}

// RejectWithdrawal closes the request. The parent deposit is reverted via
// a conditional write so a state another actor already changed is left
// alone.
func (u *Usecase) RejectWithdrawal(ctx context.Context, in RejectWithdrawalInput) (*WithdrawalDTO, error) {
	if in.Reason == "" {
		return nil, ErrReasonRequired
	}
	var (
		w         *domainWithdrawal.Withdrawal
		depositID string
		storeID   string
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		w, err = r.Withdrawals.GetByWithdrawalIDForUpdate(ctx, in.WithdrawalID)
		if err != nil {
			return domainWithdrawal.ErrNotFound
		}
		if !w.Status.Open() {
			return ErrWithdrawalClosed
		}
		if err := w.Transition(domainWithdrawal.StatusRejected); err != nil {
			return err
		}
		w.RejectionReason = in.Reason
		if err := r.Withdrawals.Save(ctx, w); err != nil {
			return err
		}
		// Revert only if still pending_withdrawal; zero rows affected just
		// means someone else moved the deposit first.
		if _, err := r.Deposits.UpdateStatus(ctx, w.DepositID,
			domainDeposit.StatusPendingWithdrawal, domainDeposit.StatusInStore); err != nil {
			return err
		}
		d, err := r.Deposits.GetByIDForUpdate(ctx, w.DepositID)
		if err != nil {
			return domainDeposit.ErrNotFound
		}
		depositID, storeID = d.DepositID, d.StoreID
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: storeID, ActionType: "withdrawal_reject", Table: "withdrawals",
		RecordID: w.WithdrawalID, NewValue: string(w.Status), ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		StoreID: storeID, EventType: notify.EventWithdrawalRejected,
		Title: "Withdrawal rejected", Body: in.Reason,
		Data: map[string]any{"withdrawal_id": w.WithdrawalID, "deposit_id": depositID},
	})
	return toWithdrawalDTO(w, depositID), nil
}

// ExpireSweep flips overdue in_store/pending_withdrawal deposits to
// expired. Callers schedule it; the rule lives here.
func (u *Usecase) ExpireSweep(ctx context.Context, now time.Time) (int64, error) {
	n, err := u.deposits.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.audit(ctx, audit.Entry{
			ActionType: "deposit_expire_sweep", Table: "deposits",
			RecordID: "sweep", NewValue: fmt.Sprintf("expired=%d", n),
		})
	}
	return n, nil
}

func (u *Usecase) Get(ctx context.Context, depositID string) (*DepositDTO, error) {
	d, err := u.deposits.GetByDepositID(ctx, depositID)
	if err != nil {
		return nil, domainDeposit.ErrNotFound
	}
	return toDepositDTO(d), nil
}

func (u *Usecase) ListByStore(ctx context.Context, storeID string, statuses ...domainDeposit.Status) ([]DepositDTO, error) {
	ds, err := u.deposits.ListByStore(ctx, storeID, statuses...)
	if err != nil {
		return nil, err
	}
	out := make([]DepositDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDepositDTO(&ds[i]))
	}
	return out, nil
}

func toDepositDTO(d *domainDeposit.Deposit) *DepositDTO {
	return &DepositDTO{
		DepositID:    d.DepositID,
		StoreID:      d.StoreID,
		CustomerID:   deref(d.CustomerID),
		ProductName:  d.ProductName,
		Category:     d.Category,
		Quantity:     d.Quantity,
		RemainingQty: d.RemainingQty,
		Status:       string(d.Status),
		ExpiryDate:   d.ExpiryDate,
		CreatedAt:    d.CreatedAt,
	}
}

func toWithdrawalDTO(w *domainWithdrawal.Withdrawal, depositID string) *WithdrawalDTO {
	return &WithdrawalDTO{
		WithdrawalID: w.WithdrawalID,
		DepositID:    depositID,
		RequestedQty: w.RequestedQty,
		ActualQty:    w.ActualQty,
		Status:       string(w.Status),
		CreatedAt:    w.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
