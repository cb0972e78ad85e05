package http

import (
	"errors"
	"net/http"
	"strings"

	domainBorrow "bottlekeep-backend/internal/domain/borrow"
	domainComparison "bottlekeep-backend/internal/domain/comparison"
	domainDeposit "bottlekeep-backend/internal/domain/deposit"
	domainTransfer "bottlekeep-backend/internal/domain/transfer"
	domainWarehouse "bottlekeep-backend/internal/domain/warehouse"
	domainWithdrawal "bottlekeep-backend/internal/domain/withdrawal"

	"github.com/labstack/echo/v4"
)

// statusFor maps engine errors to HTTP codes per the error taxonomy:
// not-found → 404, guard/conflict → 409, everything else (validation) → 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainDeposit.ErrNotFound),
		errors.Is(err, domainWithdrawal.ErrNotFound),
		errors.Is(err, domainTransfer.ErrNotFound),
		errors.Is(err, domainWarehouse.ErrNotFound),
		errors.Is(err, domainBorrow.ErrNotFound),
		errors.Is(err, domainComparison.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainDeposit.ErrConflict),
		errors.Is(err, domainDeposit.ErrInvalidTransition),
		errors.Is(err, domainWithdrawal.ErrConflict),
		errors.Is(err, domainWithdrawal.ErrInvalidTransition),
		errors.Is(err, domainTransfer.ErrConflict),
		errors.Is(err, domainTransfer.ErrWrongStore),
		errors.Is(err, domainTransfer.ErrInvalidTransition),
		errors.Is(err, domainWarehouse.ErrConflict),
		errors.Is(err, domainWarehouse.ErrInvalidTransition),
		errors.Is(err, domainBorrow.ErrConflict),
		errors.Is(err, domainBorrow.ErrWrongStore),
		errors.Is(err, domainBorrow.ErrInvalidTransition),
		errors.Is(err, domainComparison.ErrConflict),
		errors.Is(err, domainComparison.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// actorID pulls the authenticated staff id injected upstream by the auth
// layer (out of scope here); empty when a caller is anonymous.
func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("X-Actor-Id"))
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
