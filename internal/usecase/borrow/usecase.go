package borrow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bottlekeep-backend/internal/domain/audit"
	domainBorrow "bottlekeep-backend/internal/domain/borrow"
	"bottlekeep-backend/internal/domain/notify"
	"bottlekeep-backend/internal/domain/uow"
	"bottlekeep-backend/pkg/id"

	"gorm.io/gorm"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoItems        = errors.New("a borrow needs at least one item")
	ErrReasonRequired = errors.New("a non-empty reason is required")
	ErrBadSide        = errors.New("side must be borrower or lender")
)

type Usecase struct {
	borrows  domainBorrow.Repository
	uow      uow.UnitOfWork
	sink     audit.Sink
	notifier notify.Notifier
}

func NewUsecase(borrows domainBorrow.Repository, tx uow.UnitOfWork, sink audit.Sink, notifier notify.Notifier) *Usecase {
	return &Usecase{borrows: borrows, uow: tx, sink: sink, notifier: notifier}
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

// Create opens a loan request from the borrowing store to the lender.
func (u *Usecase) Create(ctx context.Context, in CreateBorrowInput) (*BorrowDTO, error) {
	if in.FromStoreID == "" || in.ToStoreID == "" || in.FromStoreID == in.ToStoreID {
		return nil, ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range in.Items {
		if it.ProductName == "" {
			return nil, fmt.Errorf("%w: missing product name", ErrInvalidInput)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q needs quantity >= 1", ErrInvalidInput, it.ProductName)
		}
	}

	b := &domainBorrow.Borrow{
		BorrowID:         id.NewID32(),
		FromStoreID:      in.FromStoreID,
		ToStoreID:        in.ToStoreID,
		Status:           domainBorrow.StatusPendingApproval,
		BorrowerPhotoURL: in.BorrowerPhotoURL,
		Notes:            in.Notes,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	for _, it := range in.Items {
		b.Items = append(b.Items, domainBorrow.Item{
			ProductName: it.ProductName,
			Category:    it.Category,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		})
	}
	if err := u.borrows.Create(ctx, b); err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: b.FromStoreID, ActionType: "borrow_create", Table: "borrows",
		RecordID: b.BorrowID, NewValue: string(b.Status), ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		StoreID: b.ToStoreID, EventType: notify.EventBorrowRequested,
		Title: "Borrow request",
		Body:  fmt.Sprintf("%s requests %d item(s)", b.FromStoreID, len(b.Items)),
		Data:  map[string]any{"borrow_id": b.BorrowID},
	})
	return toDTO(b), nil
}

// Approve is the lender's acceptance of a pending request.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*BorrowDTO, error) {
	var out *domainBorrow.Borrow
	err := u.uow.WithinBorrowTx(ctx, in.BorrowID, func(r uow.Repos, b *domainBorrow.Borrow) error {
		if b.ToStoreID != in.ActingStoreID {
			return domainBorrow.ErrWrongStore
		}
		if b.Status != domainBorrow.StatusPendingApproval {
			return domainBorrow.ErrConflict
		}
		if err := b.Transition(domainBorrow.StatusApproved); err != nil {
			return err
		}
		if in.LenderPhotoURL != "" {
			b.LenderPhotoURL = in.LenderPhotoURL
		}
		out = b
		return r.Borrows.Save(ctx, b)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.audit(ctx, audit.Entry{
		StoreID: out.ToStoreID, ActionType: "borrow_approve", Table: "borrows",
		RecordID: out.BorrowID,
		OldValue: string(domainBorrow.StatusPendingApproval), NewValue: string(out.Status),
		ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		StoreID: out.FromStoreID, EventType: notify.EventBorrowApproved,
		Title: "Borrow approved", Body: fmt.Sprintf("%s approved your request", out.ToStoreID),
		Data: map[string]any{"borrow_id": out.BorrowID},
	})
	return toDTO(out), nil
}

// Reject is the lender's terminal refusal; it always carries a reason.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*BorrowDTO, error) {
	if in.Reason == "" {
		return nil, ErrReasonRequired
	}
	var out *domainBorrow.Borrow
	err := u.uow.WithinBorrowTx(ctx, in.BorrowID, func(r uow.Repos, b *domainBorrow.Borrow) error {
		if b.ToStoreID != in.ActingStoreID {
			return domainBorrow.ErrWrongStore
		}
		if b.Status != domainBorrow.StatusPendingApproval {
			return domainBorrow.ErrConflict
		}
		if err := b.Transition(domainBorrow.StatusRejected); err != nil {
			return err
		}
		b.RejectionReason = in.Reason
		out = b
		return r.Borrows.Save(ctx, b)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.audit(ctx, audit.Entry{
		StoreID: out.ToStoreID, ActionType: "borrow_reject", Table: "borrows",
		RecordID: out.BorrowID,
		OldValue: string(domainBorrow.StatusPendingApproval), NewValue: string(out.Status),
		ActorID: in.ActorID,
	})
	u.notify(ctx, notify.Message{
		StoreID: out.FromStoreID, EventType: notify.EventBorrowRejected,
		Title: "Borrow rejected", Body: in.Reason,
		Data: map[string]any{"borrow_id": out.BorrowID},
	})
	return toDTO(out), nil
}

// ConfirmPos sets the acting side's POS-adjusted flag. Both the flag write
// and the check of the other side's flag happen under the same row lock,
// so simultaneous confirmations cannot both miss completion.
func (u *Usecase) ConfirmPos(ctx context.Context, in ConfirmPosInput) (*BorrowDTO, error) {
	side := domainBorrow.Side(in.Side)
	if side != domainBorrow.SideBorrower && side != domainBorrow.SideLender {
		return nil, ErrBadSide
	}

	var (
		out       *domainBorrow.Borrow
		completed bool
	)
	err := u.uow.WithinBorrowTx(ctx, in.BorrowID, func(r uow.Repos, b *domainBorrow.Borrow) error {
		actual, err := b.StoreSide(in.ActingStoreID)
		if err != nil {
			return err
		}
		if actual != side {
			return domainBorrow.ErrWrongStore
		}
		if b.Status != domainBorrow.StatusApproved && b.Status != domainBorrow.StatusPosAdjusting {
			return domainBorrow.ErrConflict
		}

		switch side {
		case domainBorrow.SideBorrower:
			b.BorrowerPosConfirmed = true
		case domainBorrow.SideLender:
			b.LenderPosConfirmed = true
		}
		if b.BorrowerPosConfirmed && b.LenderPosConfirmed {
			if err := b.Transition(domainBorrow.StatusCompleted); err != nil {
				return err
			}
			completed = true
		} else if b.Status != domainBorrow.StatusPosAdjusting {
			if err := b.Transition(domainBorrow.StatusPosAdjusting); err != nil {
				return err
			}
		}
		out = b
		return r.Borrows.Save(ctx, b)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.audit(ctx, audit.Entry{
		StoreID: in.ActingStoreID, ActionType: "borrow_confirm_pos", Table: "borrows",
		RecordID: out.BorrowID, NewValue: string(out.Status), ActorID: in.ActorID,
	})
	event := notify.EventBorrowPosConfirmed
	title := "POS adjustment confirmed"
	if completed {
		event = notify.EventBorrowCompleted
		title = "Borrow completed"
	}
	u.notify(ctx, notify.Message{
		StoreID: out.OtherStore(in.ActingStoreID), EventType: event,
		Title: title, Body: fmt.Sprintf("%s confirmed its POS adjustment", in.ActingStoreID),
		Data: map[string]any{"borrow_id": out.BorrowID, "status": string(out.Status)},
	})
	return toDTO(out), nil
}

// UploadPhoto attaches the acting side's photo; each party keeps its own.
func (u *Usecase) UploadPhoto(ctx context.Context, in UploadPhotoInput) (*BorrowDTO, error) {
	if in.PhotoURL == "" {
		return nil, fmt.Errorf("%w: missing photo url", ErrInvalidInput)
	}
	var out *domainBorrow.Borrow
	err := u.uow.WithinBorrowTx(ctx, in.BorrowID, func(r uow.Repos, b *domainBorrow.Borrow) error {
		side, err := b.StoreSide(in.ActingStoreID)
		if err != nil {
			return err
		}
		if b.Status == domainBorrow.StatusRejected || b.Status == domainBorrow.StatusCompleted {
			return domainBorrow.ErrConflict
		}
		switch side {
		case domainBorrow.SideBorrower:
			b.BorrowerPhotoURL = in.PhotoURL
		case domainBorrow.SideLender:
			b.LenderPhotoURL = in.PhotoURL
		}
		out = b
		return r.Borrows.Save(ctx, b)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.audit(ctx, audit.Entry{
		StoreID: in.ActingStoreID, ActionType: "borrow_upload_photo", Table: "borrows",
		RecordID: out.BorrowID, NewValue: in.PhotoURL, ActorID: in.ActorID,
	})
	return toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, borrowID string) (*BorrowDTO, error) {
	b, err := u.borrows.GetByBorrowID(ctx, borrowID)
	if err != nil {
		return nil, domainBorrow.ErrNotFound
	}
	return toDTO(b), nil
}

func (u *Usecase) ListByStore(ctx context.Context, storeID string) ([]BorrowDTO, error) {
	bs, err := u.borrows.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]BorrowDTO, 0, len(bs))
	for i := range bs {
		out = append(out, *toDTO(&bs[i]))
	}
	return out, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainBorrow.ErrNotFound
	}
	return err
}

func toDTO(b *domainBorrow.Borrow) *BorrowDTO {
	dto := &BorrowDTO{
		BorrowID:             b.BorrowID,
		FromStoreID:          b.FromStoreID,
		ToStoreID:            b.ToStoreID,
		Status:               string(b.Status),
		BorrowerPosConfirmed: b.BorrowerPosConfirmed,
		LenderPosConfirmed:   b.LenderPosConfirmed,
		BorrowerPhotoURL:     b.BorrowerPhotoURL,
		LenderPhotoURL:       b.LenderPhotoURL,
		Notes:                b.Notes,
		RejectionReason:      b.RejectionReason,
		Items:                make([]ItemDTO, 0, len(b.Items)),
		CreatedAt:            b.CreatedAt,
	}
	for _, it := range b.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ProductName: it.ProductName,
			Category:    it.Category,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		})
	}
	return dto
}
