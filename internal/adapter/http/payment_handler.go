package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"relief-fund-backend/internal/usecase/relief"
)

type PaymentHandler struct{ uc *relief.Usecase }

func NewPaymentHandler(uc *relief.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type processPaymentReq struct {
	MemberID      string          `json:"member_id"      validate:"required,hex32"`
	ComplaintID   string          `json:"complaint_id"   validate:"required,hex32"`
	Amount        decimal.Decimal `json:"amount"         validate:"money"`
	PaymentMethod string          `json:"payment_method" validate:"paymethod"`
}

// POST /payments
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	dto, err := h.uc.ProcessPayment(c.Request().Context(), relief.ProcessPaymentInput{
		MemberID:    req.MemberID,
		ComplaintID: req.ComplaintID,
		Amount:      req.Amount,
		Method:      req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GET /members/:member_id/payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return badPathParam(c, "member_id")
	}
	list, err := h.uc.ListPayments(c.Request().Context(), memberID)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []relief.PaymentDTO{}
	}
	return c.JSON(http.StatusOK, map[string]any{"member_id": memberID, "payments": list})
}

// GET /members/:member_id/fund
func (h *PaymentHandler) GetFund(c echo.Context) error {
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return badPathParam(c, "member_id")
	}
	dto, err := h.uc.GetFund(c.Request().Context(), memberID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
