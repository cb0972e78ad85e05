package http

import (
	"context"
	"net/http"
	"time"

	domainComparison "bottlekeep-backend/internal/domain/comparison"
	"bottlekeep-backend/internal/usecase/comparison"

	"github.com/labstack/echo/v4"
)

type ComparisonHandler struct{ uc *comparison.Usecase }

func NewComparisonHandler(uc *comparison.Usecase) *ComparisonHandler {
	return &ComparisonHandler{uc: uc}
}

type importRowReq struct {
	ProductCode    string `json:"product_code" validate:"required"`
	ProductName    string `json:"product_name"`
	PosQuantity    *int   `json:"pos_quantity"`
	ManualQuantity *int   `json:"manual_quantity"`
}

type importReq struct {
	StoreID  string         `json:"store_id" validate:"required"`
	CompDate string         `json:"comp_date" validate:"required,datetime=2006-01-02"`
	Rows     []importRowReq `json:"rows" validate:"required,min=1,dive"`
}

// POST /comparisons/import
func (h *ComparisonHandler) Import(c echo.Context) error {
	var req importReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	compDate, _ := time.Parse("2006-01-02", req.CompDate)

	in := comparison.ImportInput{
		StoreID:  req.StoreID,
		CompDate: compDate,
		ActorID:  actorID(c),
	}
	for _, r := range req.Rows {
		in.Rows = append(in.Rows, comparison.ImportRow{
			ProductCode:    r.ProductCode,
			ProductName:    r.ProductName,
			PosQuantity:    r.PosQuantity,
			ManualQuantity: r.ManualQuantity,
		})
	}

	dtos, err := h.uc.Import(c.Request().Context(), in)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dtos)
}

type explainReq struct {
	StaffID string `json:"staff_id" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

// POST /comparisons/:comparison_id/explain
func (h *ComparisonHandler) Explain(c echo.Context) error {
	var req explainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.SubmitExplanation(c.Request().Context(), comparison.ExplainInput{
		ComparisonID: c.Param("comparison_id"),
		StaffID:      req.StaffID,
		Text:         req.Text,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type explainAllReq struct {
	StaffID string `json:"staff_id" validate:"required"`
	Items   []struct {
		ComparisonID string `json:"comparison_id" validate:"required,hex32"`
		Text         string `json:"text" validate:"required"`
	} `json:"items" validate:"required,min=1,dive"`
}

// POST /comparisons/explain-all
func (h *ComparisonHandler) ExplainAll(c echo.Context) error {
	var req explainAllReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	items := make([]comparison.ExplainAllItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, comparison.ExplainAllItem{ComparisonID: it.ComparisonID, Text: it.Text})
	}
	results := h.uc.SubmitAll(c.Request().Context(), req.StaffID, items)
	return c.JSON(http.StatusOK, results)
}

type reviewReq struct {
	OwnerID string `json:"owner_id" validate:"required"`
	Notes   string `json:"notes"`
}

// POST /comparisons/:comparison_id/approve
func (h *ComparisonHandler) Approve(c echo.Context) error {
	return h.review(c, h.uc.Approve)
}

// POST /comparisons/:comparison_id/reject
func (h *ComparisonHandler) Reject(c echo.Context) error {
	return h.review(c, h.uc.Reject)
}

func (h *ComparisonHandler) review(c echo.Context, fn func(ctx context.Context, in comparison.ReviewInput) (*comparison.ComparisonDTO, error)) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := fn(c.Request().Context(), comparison.ReviewInput{
		ComparisonID: c.Param("comparison_id"),
		OwnerID:      req.OwnerID,
		Notes:        req.Notes,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /stores/:store_id/comparisons?date=2006-01-02&status=pending
func (h *ComparisonHandler) ListComparisons(c echo.Context) error {
	var compDate time.Time
	if d := c.QueryParam("date"); d != "" {
		var err error
		compDate, err = time.Parse("2006-01-02", d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must match 2006-01-02"})
		}
	}
	var statuses []domainComparison.Status
	if s := c.QueryParam("status"); s != "" {
		statuses = append(statuses, domainComparison.Status(s))
	}
	dtos, err := h.uc.List(c.Request().Context(), c.Param("store_id"), compDate, statuses...)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dtos)
}
