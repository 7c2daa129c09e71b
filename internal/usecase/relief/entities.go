package relief

import (
	"time"

	"github.com/shopspring/decimal"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/payment"
)

type FileComplaintInput struct {
	MemberID    string
	Title       string
	Description string
	Location    string
	Severity    string // LOW | MEDIUM | HIGH | CRITICAL, any case
}

type ApproveInput struct {
	ComplaintID string
	ApproverID  string // member id of the approver
	Amount      decimal.Decimal
}

type ProcessPaymentInput struct {
	MemberID    string
	ComplaintID string
	Amount      decimal.Decimal
	Method      string // empty means BANK_TRANSFER
}

type BulkEntry struct {
	MemberID    string
	Title       string
	Description string
	Location    string
	Severity    string
}

type BulkResult struct {
	ComplaintsCreated int64 `json:"complaints_created"`
	FundsInitialized  int64 `json:"funds_initialized"`
}

type ComplaintDTO struct {
	ComplaintID     string    `json:"complaint_id"`
	MemberID        string    `json:"member_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Severity        string    `json:"severity"`
	Status          string    `json:"status"`
	FiledAt         time.Time `json:"filed_at"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
}

type ApprovalDTO struct {
	ApprovalID      string          `json:"approval_id"`
	ComplaintID     string          `json:"complaint_id"`
	MemberID        string          `json:"member_id"`
	ApprovedByID    string          `json:"approved_by_id"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
	ApprovalDate    time.Time       `json:"approval_date"`
}

type PaymentDTO struct {
	PaymentID     string          `json:"payment_id"`
	TransactionID string          `json:"transaction_id"`
	MemberID      string          `json:"member_id"`
	ComplaintID   string          `json:"complaint_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

type FundDTO struct {
	MemberID         string          `json:"member_id"`
	TotalAllocated   decimal.Decimal `json:"total_allocated"`
	AmountDispersed  decimal.Decimal `json:"amount_dispersed"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LastUpdated      time.Time       `json:"last_updated"`
}

func toComplaintDTO(c *complaint.Complaint) *ComplaintDTO {
	return &ComplaintDTO{
		ComplaintID:     c.ComplaintID,
		MemberID:        c.MemberID,
		Title:           c.Title,
		Description:     c.Description,
		Location:        c.Location,
		Severity:        string(c.Severity),
		Status:          string(c.Status),
		FiledAt:         c.FiledAt,
		StatusUpdatedAt: c.StatusUpdatedAt,
	}
}

func toApprovalDTO(r *approval.Record, c *complaint.Complaint) *ApprovalDTO {
	return &ApprovalDTO{
		ApprovalID:      r.ApprovalID,
		ComplaintID:     c.ComplaintID,
		MemberID:        c.MemberID,
		ApprovedByID:    r.ApprovedByID,
		AmountAllocated: r.AmountAllocated,
		ApprovalDate:    r.ApprovalDate,
	}
}

// complaintID is the public id; the record only carries the numeric FK.
func toPaymentDTO(p *payment.Payment, complaintID string) PaymentDTO {
	return PaymentDTO{
		PaymentID:     p.PaymentID,
		TransactionID: p.TransactionID,
		MemberID:      p.MemberID,
		ComplaintID:   complaintID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		PaymentMethod: string(p.PaymentMethod),
		ProcessedAt:   p.ProcessedAt,
	}
}

func toFundDTO(f *fund.ReliefFund) *FundDTO {
	return &FundDTO{
		MemberID:         f.MemberID,
		TotalAllocated:   f.TotalAllocated,
		AmountDispersed:  f.AmountDispersed,
		AvailableBalance: f.Available(),
		LastUpdated:      f.LastUpdated,
	}
}
