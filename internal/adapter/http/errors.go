package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/observability/logger"
	"relief-fund-backend/internal/usecase/relief"
)

// retryAfterSeconds is sent with 503 so clients back off before retrying.
const retryAfterSeconds = "1"

// Map usecase errors → HTTP codes
func writeError(c echo.Context, err error) error {
	switch relief.KindOf(err) {
	case relief.KindValidation:
		if errors.Is(err, complaint.ErrInvalidTransition) || errors.Is(err, approval.ErrDuplicate) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case relief.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case relief.KindBusinessRule:
		var short *fund.InsufficientBalanceError
		if errors.As(err, &short) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: insufficientMessage(short)})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case relief.KindConcurrency:
		c.Response().Header().Set("Retry-After", retryAfterSeconds)
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "please retry"})
	}
	logger.FromContext(c.Request().Context()).Error("unhandled request error",
		zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func insufficientMessage(e *fund.InsufficientBalanceError) string {
	return fmt.Sprintf("insufficient relief fund balance: available ₹%s, requested ₹%s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// pathID reads a 32-hex path parameter.
func pathID(c echo.Context, name string) (string, bool) {
	v := c.Param(name)
	return v, reHex32.MatchString(v)
}

func badPathParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
}
