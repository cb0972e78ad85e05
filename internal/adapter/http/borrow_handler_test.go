package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainBorrow "bottlekeep-backend/internal/domain/borrow"
	"bottlekeep-backend/internal/domain/uow"
	"bottlekeep-backend/internal/testutil/borrowmock"
	"bottlekeep-backend/internal/testutil/uowmock"
	uc "bottlekeep-backend/internal/usecase/borrow"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func borrowHandlerWith(b *domainBorrow.Borrow) *BorrowHandler {
	borrows := &borrowmock.Repo{
		GetByBorrowIDForUpdateFn: func(_ context.Context, borrowID string) (*domainBorrow.Borrow, error) {
			if b == nil || borrowID != b.BorrowID {
				return nil, gorm.ErrRecordNotFound
			}
			return b, nil
		},
		GetByBorrowIDFn: func(_ context.Context, borrowID string) (*domainBorrow.Borrow, error) {
			if b == nil || borrowID != b.BorrowID {
				return nil, gorm.ErrRecordNotFound
			}
			return b, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Borrows: borrows})
	return NewBorrowHandler(uc.NewUsecase(borrows, tx, nil, nil))
}

// -------- tests --------

func TestCreateBorrow_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := borrowHandlerWith(nil)

	reqBody := map[string]any{
		"fromStoreId": "store-a",
		"toStoreId":   "store-b",
		"items": []map[string]any{
			{"productName": "Kakubin", "quantity": 6, "unit": "bottle"},
		},
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/borrows", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateBorrow(c); err != nil {
		t.Fatalf("CreateBorrow error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.BorrowDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domainBorrow.StatusPendingApproval) {
		t.Fatalf("status = %s, want pending_approval", got.Status)
	}
	if len(got.Items) != 1 || got.Items[0].ProductName != "Kakubin" {
		t.Fatalf("items: %+v", got.Items)
	}
}

func TestCreateBorrow_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := borrowHandlerWith(nil)

	// missing toStoreId, empty items
	reqBody := map[string]any{"fromStoreId": "store-a"}
	req := httptest.NewRequest(stdhttp.MethodPost, "/borrows", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateBorrow(c); err != nil {
		t.Fatalf("CreateBorrow error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "ToStoreID", "required") {
		t.Fatalf("missing ToStoreID detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Items", "required") {
		t.Fatalf("missing Items detail: %+v", er.Details)
	}
}

func TestCreateBorrow_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := borrowHandlerWith(nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/borrows", strings.NewReader(`{"fromStoreId":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateBorrow(c); err != nil {
		t.Fatalf("CreateBorrow error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func patchBorrow(t *testing.T, h *BorrowHandler, borrowID string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	req := httptest.NewRequest(stdhttp.MethodPatch, "/borrows/"+borrowID, mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("borrow_id")
	c.SetParamValues(borrowID)
	if err := h.PatchBorrow(c); err != nil {
		t.Fatalf("PatchBorrow error: %v", err)
	}
	return rec
}

func TestPatchBorrow_ApproveFlow(t *testing.T) {
	b := &domainBorrow.Borrow{
		ID:          1,
		BorrowID:    strings.Repeat("b", 32),
		FromStoreID: "store-a",
		ToStoreID:   "store-b",
		Status:      domainBorrow.StatusPendingApproval,
	}
	h := borrowHandlerWith(b)

	rec := patchBorrow(t, h, b.BorrowID, map[string]any{
		"action": "approve", "actingStoreId": "store-b",
	})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", rec.Code, rec.Body.String())
	}
	var dto uc.BorrowDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Status != string(domainBorrow.StatusApproved) {
		t.Fatalf("status = %s, want approved", dto.Status)
	}
}

func TestPatchBorrow_WrongPartyIsConflict(t *testing.T) {
	b := &domainBorrow.Borrow{
		ID:          1,
		BorrowID:    strings.Repeat("b", 32),
		FromStoreID: "store-a",
		ToStoreID:   "store-b",
		Status:      domainBorrow.StatusPendingApproval,
	}
	h := borrowHandlerWith(b)

	// the borrower trying to approve its own request
	rec := patchBorrow(t, h, b.BorrowID, map[string]any{
		"action": "approve", "actingStoreId": "store-a",
	})
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestPatchBorrow_UnknownActionRejected(t *testing.T) {
	h := borrowHandlerWith(nil)

	rec := patchBorrow(t, h, strings.Repeat("b", 32), map[string]any{
		"action": "escalate", "actingStoreId": "store-b",
	})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Action", "one of") {
		t.Fatalf("missing oneof detail: %+v", er.Details)
	}
}

func TestPatchBorrow_NotFound(t *testing.T) {
	h := borrowHandlerWith(nil)

	rec := patchBorrow(t, h, strings.Repeat("f", 32), map[string]any{
		"action": "approve", "actingStoreId": "store-b",
	})
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetBorrow_Success(t *testing.T) {
	b := &domainBorrow.Borrow{
		ID:          1,
		BorrowID:    strings.Repeat("b", 32),
		FromStoreID: "store-a",
		ToStoreID:   "store-b",
		Status:      domainBorrow.StatusApproved,
	}
	h := borrowHandlerWith(b)
	e := echo.New()

	req := httptest.NewRequest(stdhttp.MethodGet, "/borrows/"+b.BorrowID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("borrow_id")
	c.SetParamValues(b.BorrowID)

	if err := h.GetBorrow(c); err != nil {
		t.Fatalf("GetBorrow error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// the borrow surface speaks camelCase
	if !strings.Contains(rec.Body.String(), `"fromStoreId"`) {
		t.Fatalf("body not camelCase: %s", rec.Body.String())
	}
}
