package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"relief-fund-backend/internal/usecase/relief"
)

type ComplaintHandler struct{ uc *relief.Usecase }

func NewComplaintHandler(uc *relief.Usecase) *ComplaintHandler { return &ComplaintHandler{uc: uc} }

type fileComplaintReq struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Location    string `json:"location"    validate:"required,max=200"`
	Severity    string `json:"severity"    validate:"required,severity"`
}

type approveComplaintReq struct {
	ApproverID string          `json:"approver_id" validate:"required,hex32"`
	Amount     decimal.Decimal `json:"amount"      validate:"money"`
}

type bulkEntryReq struct {
	MemberID    string `json:"member_id"   validate:"required,hex32"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Location    string `json:"location"    validate:"required,max=200"`
	Severity    string `json:"severity"    validate:"required,severity"`
}

// An empty list is accepted and creates nothing. Larger imports are split by the caller.
type bulkRegisterReq struct {
	Entries []bulkEntryReq `json:"entries" validate:"max=1000,dive"`
}

// POST /members/:member_id/complaints
func (h *ComplaintHandler) FileComplaint(c echo.Context) error {
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return badPathParam(c, "member_id")
	}
	var req fileComplaintReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	dto, err := h.uc.FileComplaint(c.Request().Context(), relief.FileComplaintInput{
		MemberID:    memberID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Severity:    req.Severity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// POST /complaints/:complaint_id/approve
func (h *ComplaintHandler) ApproveComplaint(c echo.Context) error {
	complaintID, ok := pathID(c, "complaint_id")
	if !ok {
		return badPathParam(c, "complaint_id")
	}
	var req approveComplaintReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	dto, err := h.uc.ApproveComplaint(c.Request().Context(), relief.ApproveInput{
		ComplaintID: complaintID,
		ApproverID:  req.ApproverID,
		Amount:      req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// POST /complaints/bulk
func (h *ComplaintHandler) BulkRegister(c echo.Context) error {
	var req bulkRegisterReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	entries := make([]relief.BulkEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, relief.BulkEntry{
			MemberID:    e.MemberID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			Severity:    e.Severity,
		})
	}
	res, err := h.uc.BulkRegister(c.Request().Context(), entries)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GET /complaints/:complaint_id
func (h *ComplaintHandler) GetComplaint(c echo.Context) error {
	complaintID, ok := pathID(c, "complaint_id")
	if !ok {
		return badPathParam(c, "complaint_id")
	}
	dto, err := h.uc.GetComplaint(c.Request().Context(), complaintID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
