package http

import (
	"net/http"

	domainTransfer "bottlekeep-backend/internal/domain/transfer"
	"bottlekeep-backend/internal/usecase/transfer"

	"github.com/labstack/echo/v4"
)

type TransferHandler struct{ uc *transfer.Usecase }

func NewTransferHandler(uc *transfer.Usecase) *TransferHandler { return &TransferHandler{uc: uc} }

type createBatchReq struct {
	StoreID     string   `json:"store_id" validate:"required"`
	DestStoreID string   `json:"dest_store_id" validate:"required"`
	DepositIDs  []string `json:"deposit_ids" validate:"required,min=1,dive,hex32"`
	PhotoURL    string   `json:"photo_url"`
	Notes       string   `json:"notes"`
}

// POST /transfers
func (h *TransferHandler) CreateBatch(c echo.Context) error {
	var req createBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.CreateBatch(c.Request().Context(), transfer.CreateBatchInput{
		StoreID:     req.StoreID,
		DestStoreID: req.DestStoreID,
		DepositIDs:  req.DepositIDs,
		PhotoURL:    req.PhotoURL,
		Notes:       req.Notes,
		ActorID:     actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type confirmItemReq struct {
	ActingStoreID     string `json:"acting_store_id" validate:"required"`
	ReceivingPhotoURL string `json:"receiving_photo_url"`
}

// POST /transfers/:transfer_id/confirm
func (h *TransferHandler) ConfirmItem(c echo.Context) error {
	var req confirmItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ConfirmItem(c.Request().Context(), transfer.ConfirmItemInput{
		TransferID:        c.Param("transfer_id"),
		ActingStoreID:     req.ActingStoreID,
		ReceivingPhotoURL: req.ReceivingPhotoURL,
		ActorID:           actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectBatchReq struct {
	ActingStoreID string `json:"acting_store_id" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
}

// POST /transfers/batches/:transfer_code/reject
func (h *TransferHandler) RejectBatch(c echo.Context) error {
	var req rejectBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RejectBatch(c.Request().Context(), transfer.RejectBatchInput{
		TransferCode:  c.Param("transfer_code"),
		ActingStoreID: req.ActingStoreID,
		Reason:        req.Reason,
		ActorID:       actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /stores/:store_id/transfers?perspective=sending|receiving
func (h *TransferHandler) ListTransfers(c echo.Context) error {
	p := domainTransfer.Perspective(c.QueryParam("perspective"))
	if p == "" {
		p = domainTransfer.PerspectiveSending
	}
	if p != domainTransfer.PerspectiveSending && p != domainTransfer.PerspectiveReceiving {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "perspective must be sending or receiving"})
	}
	dtos, err := h.uc.ListGrouped(c.Request().Context(), c.Param("store_id"), p)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dtos)
}
