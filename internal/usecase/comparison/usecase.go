package comparison

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"bottlekeep-backend/internal/domain/audit"
	domainComparison "bottlekeep-backend/internal/domain/comparison"
	"bottlekeep-backend/internal/domain/notify"
	"bottlekeep-backend/internal/domain/uow"
	"bottlekeep-backend/pkg/id"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrTextRequired  = errors.New("a non-empty explanation is required")
	ErrNotesRequired = errors.New("owner notes are required on rejection")
)

type Usecase struct {
	comparisons domainComparison.Repository
	uow         uow.UnitOfWork
	sink        audit.Sink
	notifier    notify.Notifier
}

func NewUsecase(comparisons domainComparison.Repository, tx uow.UnitOfWork, sink audit.Sink, notifier notify.Notifier) *Usecase {
	return &Usecase{comparisons: comparisons, uow: tx, sink: sink, notifier: notifier}
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

// derive computes difference and percent; both stay nil when either side
// was never measured (or POS reported zero, which makes percent undefined).
func derive(pos, manual *int) (*int, *float64) {
	if pos == nil || manual == nil {
		return nil, nil
	}
	diff := *manual - *pos
	if *pos == 0 {
		return &diff, nil
	}
	pct := math.Round(float64(diff)/float64(*pos)*10000) / 100
	return &diff, &pct
}

// Import loads one day's POS-vs-manual rows for a store, all pending.
func (u *Usecase) Import(ctx context.Context, in ImportInput) ([]ComparisonDTO, error) {
	if in.StoreID == "" || in.CompDate.IsZero() {
		return nil, ErrInvalidInput
	}
	if len(in.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidInput)
	}

	var created []domainComparison.Comparison
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		for _, row := range in.Rows {
			if row.ProductCode == "" {
				return fmt.Errorf("%w: missing product code", ErrInvalidInput)
			}
			diff, pct := derive(row.PosQuantity, row.ManualQuantity)
			c := domainComparison.Comparison{
				ComparisonID:   id.NewID32(),
				StoreID:        in.StoreID,
				CompDate:       in.CompDate,
				ProductCode:    row.ProductCode,
				ProductName:    row.ProductName,
				PosQuantity:    row.PosQuantity,
				ManualQuantity: row.ManualQuantity,
				Difference:     diff,
				DiffPercent:    pct,
				Status:         domainComparison.StatusPending,
			}
			if err := r.Comparisons.Create(ctx, &c); err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: in.StoreID, ActionType: "comparison_import", Table: "comparisons",
		RecordID: in.CompDate.Format("2006-01-02"),
		NewValue: fmt.Sprintf("rows=%d", len(created)), ActorID: in.ActorID,
	})

	out := make([]ComparisonDTO, 0, len(created))
	for i := range created {
		out = append(out, *toDTO(&created[i]))
	}
	return out, nil
}

// SubmitExplanation records staff's account of a discrepancy:
// pending → explained.
func (u *Usecase) SubmitExplanation(ctx context.Context, in ExplainInput) (*ComparisonDTO, error) {
	if in.Text == "" {
		return nil, ErrTextRequired
	}
	var c *domainComparison.Comparison
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		c, err = r.Comparisons.GetByComparisonIDForUpdate(ctx, in.ComparisonID)
		if err != nil {
			return domainComparison.ErrNotFound
		}
		if c.Status != domainComparison.StatusPending {
			return domainComparison.ErrConflict
		}
		if err := c.Transition(domainComparison.StatusExplained); err != nil {
			return err
		}
		c.Explanation = in.Text
		c.ExplainedBy = in.StaffID
		return r.Comparisons.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	u.audit(ctx, audit.Entry{
		StoreID: c.StoreID, ActionType: "comparison_explain", Table: "comparisons",
		RecordID: c.ComparisonID,
		OldValue: string(domainComparison.StatusPending), NewValue: string(c.Status),
		ActorID: in.StaffID,
	})
	u.notify(ctx, notify.Message{
		StoreID: c.StoreID, EventType: notify.EventComparisonExplained,
		Title: "Discrepancy explained", Body: c.ProductCode,
		Data: map[string]any{"comparison_id": c.ComparisonID},
	})
	return toDTO(c), nil
}

// SubmitAll applies SubmitExplanation independently per item. There is no
// cross-item invariant: each failure is reported, the rest proceed.
func (u *Usecase) SubmitAll(ctx context.Context, staffID string, items []ExplainAllItem) []ExplainResult {
	out := make([]ExplainResult, 0, len(items))
	for _, it := range items {
		res := ExplainResult{ComparisonID: it.ComparisonID}
		if _, err := u.SubmitExplanation(ctx, ExplainInput{
			ComparisonID: it.ComparisonID,
			StaffID:      staffID,
			Text:         it.Text,
		}); err != nil {
			res.Error = err.Error()
		}
		out = append(out, res)
	}
	return out
}

// Approve closes an explained discrepancy; terminal.
func (u *Usecase) Approve(ctx context.Context, in ReviewInput) (*ComparisonDTO, error) {
	return u.review(ctx, in, domainComparison.StatusApproved)
}

// Reject sends an explained discrepancy back with mandatory owner notes;
// terminal.
func (u *Usecase) Reject(ctx context.Context, in ReviewInput) (*ComparisonDTO, error) {
	if in.Notes == "" {
		return nil, ErrNotesRequired
	}
	return u.review(ctx, in, domainComparison.StatusRejected)
}

func (u *Usecase) review(ctx context.Context, in ReviewInput, verdict domainComparison.Status) (*ComparisonDTO, error) {
	var c *domainComparison.Comparison
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		c, err = r.Comparisons.GetByComparisonIDForUpdate(ctx, in.ComparisonID)
		if err != nil {
			return domainComparison.ErrNotFound
		}
		if c.Status != domainComparison.StatusExplained {
			return domainComparison.ErrConflict
		}
		if err := c.Transition(verdict); err != nil {
			return err
		}
		c.OwnerNotes = in.Notes
		c.ReviewedBy = in.OwnerID
		return r.Comparisons.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	action, event := "comparison_approve", notify.EventComparisonApproved
	if verdict == domainComparison.StatusRejected {
		action, event = "comparison_reject", notify.EventComparisonRejected
	}
	u.audit(ctx, audit.Entry{
		StoreID: c.StoreID, ActionType: action, Table: "comparisons",
		RecordID: c.ComparisonID,
		OldValue: string(domainComparison.StatusExplained), NewValue: string(c.Status),
		ActorID: in.OwnerID,
	})
	u.notify(ctx, notify.Message{
		StoreID: c.StoreID, EventType: event,
		Title: "Discrepancy reviewed", Body: c.ProductCode,
		Data: map[string]any{"comparison_id": c.ComparisonID, "status": string(c.Status)},
	})
	return toDTO(c), nil
}

func (u *Usecase) List(ctx context.Context, storeID string, compDate time.Time, statuses ...domainComparison.Status) ([]ComparisonDTO, error) {
	cs, err := u.comparisons.List(ctx, storeID, compDate, statuses...)
	if err != nil {
		return nil, err
	}
	out := make([]ComparisonDTO, 0, len(cs))
	for i := range cs {
		out = append(out, *toDTO(&cs[i]))
	}
	return out, nil
}

func toDTO(c *domainComparison.Comparison) *ComparisonDTO {
	return &ComparisonDTO{
		ComparisonID:   c.ComparisonID,
		StoreID:        c.StoreID,
		CompDate:       c.CompDate,
		ProductCode:    c.ProductCode,
		ProductName:    c.ProductName,
		PosQuantity:    c.PosQuantity,
		ManualQuantity: c.ManualQuantity,
		Difference:     c.Difference,
		DiffPercent:    c.DiffPercent,
		Classification: string(domainComparison.Classify(c.DiffPercent)),
		Status:         string(c.Status),
		Explanation:    c.Explanation,
		OwnerNotes:     c.OwnerNotes,
	}
}
