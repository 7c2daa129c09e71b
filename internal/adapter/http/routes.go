package http

import (
	"github.com/labstack/echo/v4"

	"relief-fund-backend/internal/usecase/relief"
)

// RegisterRoutes mounts the relief API. mutating wraps the POST routes
// (idempotency, request context).
func RegisterRoutes(e *echo.Echo, uc *relief.Usecase, mutating ...echo.MiddlewareFunc) {
	e.Validator = NewValidator()

	h := NewHandler()
	ch := NewComplaintHandler(uc)
	ph := NewPaymentHandler(uc)

	e.GET("/health", h.Health)

	e.GET("/complaints/:complaint_id", ch.GetComplaint)
	e.GET("/members/:member_id/fund", ph.GetFund)
	e.GET("/members/:member_id/payments", ph.ListPayments)

	e.POST("/members/:member_id/complaints", ch.FileComplaint, mutating...)
	e.POST("/complaints/:complaint_id/approve", ch.ApproveComplaint, mutating...)
	e.POST("/complaints/bulk", ch.BulkRegister, mutating...)
	e.POST("/payments", ph.ProcessPayment, mutating...)
}
