package comparison

import (
	"context"
	"errors"
	"testing"
	"time"

	domainComparison "bottlekeep-backend/internal/domain/comparison"
	"bottlekeep-backend/internal/domain/uow"
	"bottlekeep-backend/internal/testutil/comparisonmock"
	"bottlekeep-backend/internal/testutil/uowmock"
)

func intp(v int) *int { return &v }

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		pos      *int
		manual   *int
		wantDiff *int
		wantPct  *float64
	}{
		{"both measured", intp(100), intp(94), intp(-6), floatp(-6)},
		{"exact match", intp(50), intp(50), intp(0), floatp(0)},
		{"pos missing", nil, intp(10), nil, nil},
		{"manual missing", intp(10), nil, nil, nil},
		{"pos zero keeps diff, percent undefined", intp(0), intp(3), intp(3), nil},
		{"rounded to 2dp", intp(3), intp(4), intp(1), floatp(33.33)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, pct := derive(tt.pos, tt.manual)
			if !eqIntp(diff, tt.wantDiff) {
				t.Fatalf("diff=%v want %v", fmtIntp(diff), fmtIntp(tt.wantDiff))
			}
			if !eqFloatp(pct, tt.wantPct) {
				t.Fatalf("pct=%v want %v", fmtFloatp(pct), fmtFloatp(tt.wantPct))
			}
		})
	}
}

func floatp(v float64) *float64 { return &v }

func eqIntp(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
func eqFloatp(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
func fmtIntp(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func fmtFloatp(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		pct  *float64
		want domainComparison.Classification
	}{
		{"nil is unmeasured", nil, domainComparison.ClassUnmeasured},
		{"zero is match", floatp(0), domainComparison.ClassMatch},
		{"within tolerance", floatp(4.9), domainComparison.ClassWithinTolerance},
		{"negative within tolerance", floatp(-5), domainComparison.ClassWithinTolerance},
		{"over tolerance", floatp(5.01), domainComparison.ClassOverTolerance},
		{"negative over tolerance", floatp(-6), domainComparison.ClassOverTolerance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domainComparison.Classify(tt.pct); got != tt.want {
				t.Fatalf("Classify=%s want %s", got, tt.want)
			}
		})
	}
}

func TestImport_CreatesPendingRows(t *testing.T) {
	var created []*domainComparison.Comparison
	comparisons := &comparisonmock.Repo{
		CreateFn: func(_ context.Context, c *domainComparison.Comparison) error {
			created = append(created, c)
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Comparisons: comparisons})
	uc := NewUsecase(comparisons, tx, nil, nil)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	dtos, err := uc.Import(context.Background(), ImportInput{
		StoreID:  "store-ginza",
		CompDate: day,
		Rows: []ImportRow{
			{ProductCode: "YAM12", PosQuantity: intp(100), ManualQuantity: intp(94)},
			{ProductCode: "HIB17", PosQuantity: intp(20), ManualQuantity: intp(20)},
			{ProductCode: "KAKU", ManualQuantity: intp(8)}, // POS never counted it
		},
	})
	if err != nil {
		t.Fatalf("Import err: %v", err)
	}
	if len(created) != 3 || len(dtos) != 3 {
		t.Fatalf("created=%d dtos=%d", len(created), len(dtos))
	}
	for _, c := range created {
		if c.Status != domainComparison.StatusPending {
			t.Fatalf("row %s status=%s", c.ProductCode, c.Status)
		}
	}
	// -6 off a POS count of 100 is -6%, over the 5% tolerance
	if *dtos[0].Difference != -6 || *dtos[0].DiffPercent != -6 ||
		dtos[0].Classification != string(domainComparison.ClassOverTolerance) {
		t.Fatalf("row0: %+v", dtos[0])
	}
	if dtos[1].Classification != string(domainComparison.ClassMatch) {
		t.Fatalf("row1 classification=%s", dtos[1].Classification)
	}
	if dtos[2].Difference != nil || dtos[2].Classification != string(domainComparison.ClassUnmeasured) {
		t.Fatalf("row2: %+v", dtos[2])
	}
}

func TestImport_Validation(t *testing.T) {
	uc := NewUsecase(&comparisonmock.Repo{}, uowmock.New(), nil, nil)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if _, err := uc.Import(context.Background(), ImportInput{CompDate: day, Rows: []ImportRow{{ProductCode: "X"}}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing store: %v", err)
	}
	if _, err := uc.Import(context.Background(), ImportInput{StoreID: "s", CompDate: day}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("no rows: %v", err)
	}
}

func explainedComparison() *domainComparison.Comparison {
	return &domainComparison.Comparison{
		ID:           3,
		ComparisonID: "pppppppppppppppppppppppppppppppp",
		StoreID:      "store-ginza",
		ProductCode:  "YAM12",
		PosQuantity:  intp(100),
		Difference:   intp(-6),
		DiffPercent:  floatp(-6),
		Status:       domainComparison.StatusExplained,
	}
}

func reviewUsecase(c *domainComparison.Comparison) *Usecase {
	comparisons := &comparisonmock.Repo{
		GetByComparisonIDForUpdateFn: func(context.Context, string) (*domainComparison.Comparison, error) {
			return c, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Comparisons: comparisons})
	return NewUsecase(comparisons, tx, nil, nil)
}

// An over-tolerance row is explained by staff, then rejected by the owner
// with notes. Rejected is terminal: a second review conflicts.
func TestExplainThenReject_Terminal(t *testing.T) {
	c := explainedComparison()
	c.Status = domainComparison.StatusPending
	uc := reviewUsecase(c)

	dto, err := uc.SubmitExplanation(context.Background(), ExplainInput{
		ComparisonID: c.ComparisonID, StaffID: "staff-3", Text: "two bottles broke during service",
	})
	if err != nil {
		t.Fatalf("SubmitExplanation err: %v", err)
	}
	if dto.Status != string(domainComparison.StatusExplained) {
		t.Fatalf("status=%s", dto.Status)
	}

	dto, err = uc.Reject(context.Background(), ReviewInput{
		ComparisonID: c.ComparisonID, OwnerID: "owner-1", Notes: "breakage must be logged same day",
	})
	if err != nil {
		t.Fatalf("Reject err: %v", err)
	}
	if dto.Status != string(domainComparison.StatusRejected) {
		t.Fatalf("status=%s", dto.Status)
	}

	if _, err := uc.Approve(context.Background(), ReviewInput{
		ComparisonID: c.ComparisonID, OwnerID: "owner-1",
	}); !errors.Is(err, domainComparison.ErrConflict) {
		t.Fatalf("want ErrConflict after terminal reject, got %v", err)
	}
}

func TestSubmitExplanation_Guards(t *testing.T) {
	c := explainedComparison() // already explained
	uc := reviewUsecase(c)

	if _, err := uc.SubmitExplanation(context.Background(), ExplainInput{
		ComparisonID: c.ComparisonID, StaffID: "staff-3",
	}); !errors.Is(err, ErrTextRequired) {
		t.Fatalf("want ErrTextRequired, got %v", err)
	}
	if _, err := uc.SubmitExplanation(context.Background(), ExplainInput{
		ComparisonID: c.ComparisonID, StaffID: "staff-3", Text: "again",
	}); !errors.Is(err, domainComparison.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestReject_NeedsNotes(t *testing.T) {
	uc := reviewUsecase(explainedComparison())
	if _, err := uc.Reject(context.Background(), ReviewInput{
		ComparisonID: "x", OwnerID: "owner-1",
	}); !errors.Is(err, ErrNotesRequired) {
		t.Fatalf("want ErrNotesRequired, got %v", err)
	}
}

func TestApprove_FromExplained(t *testing.T) {
	c := explainedComparison()
	uc := reviewUsecase(c)

	dto, err := uc.Approve(context.Background(), ReviewInput{
		ComparisonID: c.ComparisonID, OwnerID: "owner-1",
	})
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if dto.Status != string(domainComparison.StatusApproved) {
		t.Fatalf("status=%s", dto.Status)
	}
}

// One bad item must not block the others.
func TestSubmitAll_IndependentItems(t *testing.T) {
	rows := map[string]*domainComparison.Comparison{
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": {ComparisonID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Status: domainComparison.StatusPending},
		"cccccccccccccccccccccccccccccccc": {ComparisonID: "cccccccccccccccccccccccccccccccc", Status: domainComparison.StatusApproved},
	}
	comparisons := &comparisonmock.Repo{
		GetByComparisonIDForUpdateFn: func(_ context.Context, id string) (*domainComparison.Comparison, error) {
			c, ok := rows[id]
			if !ok {
				return nil, errors.New("no rows")
			}
			return c, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Comparisons: comparisons})
	uc := NewUsecase(comparisons, tx, nil, nil)

	results := uc.SubmitAll(context.Background(), "staff-3", []ExplainAllItem{
		{ComparisonID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Text: "miscount"},
		{ComparisonID: "cccccccccccccccccccccccccccccccc", Text: "late"},
		{ComparisonID: "missing", Text: "x"},
	})
	if len(results) != 3 {
		t.Fatalf("results=%d", len(results))
	}
	if results[0].Error != "" {
		t.Fatalf("item 0 should succeed: %s", results[0].Error)
	}
	if results[1].Error == "" || results[2].Error == "" {
		t.Fatalf("items 1 and 2 should fail: %+v", results)
	}
	if rows["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"].Status != domainComparison.StatusExplained {
		t.Fatalf("first row status=%s", rows["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"].Status)
	}
}
