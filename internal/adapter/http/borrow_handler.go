package http

import (
	"net/http"

	"bottlekeep-backend/internal/usecase/borrow"

	"github.com/labstack/echo/v4"
)

type BorrowHandler struct{ uc *borrow.Usecase }

func NewBorrowHandler(uc *borrow.Usecase) *BorrowHandler { return &BorrowHandler{uc: uc} }

type borrowItemReq struct {
	ProductName string `json:"productName" validate:"required"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Unit        string `json:"unit"`
}

type createBorrowReq struct {
	FromStoreID      string          `json:"fromStoreId" validate:"required"`
	ToStoreID        string          `json:"toStoreId" validate:"required"`
	Items            []borrowItemReq `json:"items" validate:"required,min=1,dive"`
	Notes            string          `json:"notes"`
	BorrowerPhotoURL string          `json:"borrowerPhotoUrl"`
}

// patchBorrowReq carries the action plus the union of action-specific
// fields; unknown combinations are rejected per action below.
type patchBorrowReq struct {
	Action        string `json:"action" validate:"required,oneof=approve reject confirm_pos upload_photo"`
	ActingStoreID string `json:"actingStoreId" validate:"required"`
	Reason        string `json:"reason"`
	Side          string `json:"side"`
	PhotoURL      string `json:"photoUrl"`
}

// POST /borrows
func (h *BorrowHandler) CreateBorrow(c echo.Context) error {
	var req createBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := borrow.CreateBorrowInput{
		FromStoreID:      req.FromStoreID,
		ToStoreID:        req.ToStoreID,
		Notes:            req.Notes,
		BorrowerPhotoURL: req.BorrowerPhotoURL,
		ActorID:          actorID(c),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, borrow.ItemInput(it))
	}

	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

// PATCH /borrows/:borrow_id
func (h *BorrowHandler) PatchBorrow(c echo.Context) error {
	borrowID := c.Param("borrow_id")
	if borrowID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing borrow_id path param"})
	}
	var req patchBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	ctx := c.Request().Context()
	actor := actorID(c)

	var (
		dto *borrow.BorrowDTO
		err error
	)
	switch req.Action {
	case "approve":
		dto, err = h.uc.Approve(ctx, borrow.ApproveInput{
			BorrowID: borrowID, ActingStoreID: req.ActingStoreID,
			LenderPhotoURL: req.PhotoURL, ActorID: actor,
		})
	case "reject":
		dto, err = h.uc.Reject(ctx, borrow.RejectInput{
			BorrowID: borrowID, ActingStoreID: req.ActingStoreID,
			Reason: req.Reason, ActorID: actor,
		})
	case "confirm_pos":
		dto, err = h.uc.ConfirmPos(ctx, borrow.ConfirmPosInput{
			BorrowID: borrowID, ActingStoreID: req.ActingStoreID,
			Side: req.Side, ActorID: actor,
		})
	case "upload_photo":
		dto, err = h.uc.UploadPhoto(ctx, borrow.UploadPhotoInput{
			BorrowID: borrowID, ActingStoreID: req.ActingStoreID,
			PhotoURL: req.PhotoURL, ActorID: actor,
		})
	}
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /borrows/:borrow_id
func (h *BorrowHandler) GetBorrow(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("borrow_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /stores/:store_id/borrows
func (h *BorrowHandler) ListBorrows(c echo.Context) error {
	dtos, err := h.uc.ListByStore(c.Request().Context(), c.Param("store_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dtos)
}
