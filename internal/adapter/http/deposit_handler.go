package http

import (
	"net/http"
	"time"

	domainDeposit "bottlekeep-backend/internal/domain/deposit"
	"bottlekeep-backend/internal/usecase/deposit"

	"github.com/labstack/echo/v4"
)

type DepositHandler struct{ uc *deposit.Usecase }

func NewDepositHandler(uc *deposit.Usecase) *DepositHandler { return &DepositHandler{uc: uc} }

type createDepositReq struct {
	StoreID     string `json:"store_id" validate:"required"`
	CustomerID  string `json:"customer_id"`
	ProductName string `json:"product_name" validate:"required"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	// Canonical date `YYYY-MM-DD`
	ExpiryDate string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
}

// POST /deposits
func (h *DepositHandler) CreateDeposit(c echo.Context) error {
	var req createDepositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	expiry, _ := time.Parse("2006-01-02", req.ExpiryDate)

	dto, err := h.uc.Create(c.Request().Context(), deposit.CreateDepositInput{
		StoreID:     req.StoreID,
		CustomerID:  req.CustomerID,
		ProductName: req.ProductName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		ExpiryDate:  expiry,
		ActorID:     actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type confirmDepositReq struct {
	PhotoURL string `json:"photo_url"`
	Notes    string `json:"notes"`
}

// POST /deposits/:deposit_id/confirm
func (h *DepositHandler) ConfirmReceipt(c echo.Context) error {
	var req confirmDepositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.ConfirmReceipt(c.Request().Context(), deposit.ConfirmReceiptInput{
		DepositID: c.Param("deposit_id"),
		PhotoURL:  req.PhotoURL,
		Notes:     req.Notes,
		ActorID:   actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required"`
}

// POST /deposits/:deposit_id/reject
func (h *DepositHandler) RejectReceipt(c echo.Context) error {
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RejectReceipt(c.Request().Context(), deposit.RejectReceiptInput{
		DepositID: c.Param("deposit_id"),
		Reason:    req.Reason,
		ActorID:   actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type requestWithdrawalReq struct {
	RequestedQty int `json:"requested_qty" validate:"required,min=1"`
}

// POST /deposits/:deposit_id/withdrawals
func (h *DepositHandler) RequestWithdrawal(c echo.Context) error {
	var req requestWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RequestWithdrawal(c.Request().Context(), deposit.RequestWithdrawalInput{
		DepositID:    c.Param("deposit_id"),
		RequestedQty: req.RequestedQty,
		ActorID:      actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type completeWithdrawalReq struct {
	ActualQty int    `json:"actual_qty" validate:"required,min=1"`
	PhotoURL  string `json:"photo_url"`
	Notes     string `json:"notes"`
}

// POST /withdrawals/:withdrawal_id/complete
func (h *DepositHandler) CompleteWithdrawal(c echo.Context) error {
	var req completeWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.CompleteWithdrawal(c.Request().Context(), deposit.CompleteWithdrawalInput{
		WithdrawalID: c.Param("withdrawal_id"),
		ActualQty:    req.ActualQty,
		PhotoURL:     req.PhotoURL,
		Notes:        req.Notes,
		ActorID:      actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// POST /withdrawals/:withdrawal_id/reject
func (h *DepositHandler) RejectWithdrawal(c echo.Context) error {
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RejectWithdrawal(c.Request().Context(), deposit.RejectWithdrawalInput{
		WithdrawalID: c.Param("withdrawal_id"),
		Reason:       req.Reason,
		ActorID:      actorID(c),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /deposits/:deposit_id
func (h *DepositHandler) GetDeposit(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("deposit_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /stores/:store_id/deposits?status=in_store
func (h *DepositHandler) ListDeposits(c echo.Context) error {
	var statuses []domainDeposit.Status
	if s := c.QueryParam("status"); s != "" {
		statuses = append(statuses, domainDeposit.Status(s))
	}
	dtos, err := h.uc.ListByStore(c.Request().Context(), c.Param("store_id"), statuses...)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dtos)
}

// POST /deposits/expire-sweep, invoked by an external scheduler.
func (h *DepositHandler) ExpireSweep(c echo.Context) error {
	n, err := h.uc.ExpireSweep(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"expired": n})
}
