package http

import (
	"net/http"

	"bottlekeep-backend/internal/usecase/warehouse"

	"github.com/labstack/echo/v4"
)

type WarehouseHandler struct{ uc *warehouse.Usecase }

func NewWarehouseHandler(uc *warehouse.Usecase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

type disposeReq struct {
	Notes string `json:"notes"`
}

// POST /warehouse/deposits/:hq_deposit_id/dispose
func (h *WarehouseHandler) Dispose(c echo.Context) error {
	var req disposeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Dispose(c.Request().Context(), warehouse.DisposeInput{
		HqDepositID: c.Param("hq_deposit_id"),
		ActorID:     actorID(c),
		Notes:       req.Notes,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /warehouse/deposits/:hq_deposit_id
func (h *WarehouseHandler) GetHqDeposit(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("hq_deposit_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /warehouse/summary
func (h *WarehouseHandler) Summary(c echo.Context) error {
	rows, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
