package loan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lms-backend/internal/domain/apperr"
)

type Status string

const (
	StatusPendingDisbursement Status = "PendingDisbursement"
	StatusDisbursed           Status = "Disbursed"
	StatusInRepayment         Status = "InRepayment"
	StatusClosed              Status = "Closed"
)

// ParseStatus validates a stored string against the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPendingDisbursement, StatusDisbursed, StatusInRepayment, StatusClosed:
		return Status(raw), nil
	}
	return "", fmt.Errorf("%w: unknown loan status %q", apperr.ErrValidation, raw)
}

// Loan invariant: 0 <= OutstandingPrincipal <= PrincipalAmount, monotonically
// non-increasing. The unique index on app_id makes provisioning idempotent:
// a racing second insert for the same application fails on the constraint.
type Loan struct {
	ID                   uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID               string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	AppID                string          `gorm:"size:32;uniqueIndex:ux_loans_app_id" json:"application_id"`
	PrincipalAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal_amount"`
	OutstandingPrincipal decimal.Decimal `gorm:"type:decimal(18,2)" json:"outstanding_principal"`
	InterestRate         decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"` // flat annual percent
	TermMonths           int             `gorm:"column:term_months" json:"term_months"`
	Status               Status          `gorm:"size:24;index:idx_loans_status" json:"status"`
	DisbursedAt          *time.Time      `json:"disbursed_at,omitempty"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "Pending"
	InstallmentPaid    InstallmentStatus = "Paid"
)

// Installment due figures are immutable once created; only PaidAmount,
// Status and PaidAt mutate. Sum of DuePrincipal over a loan's installments
// equals the loan's PrincipalAmount exactly.
type Installment struct {
	ID            uint64            `gorm:"primaryKey;column:id" json:"-"`
	LoanID        string            `gorm:"size:32;index:idx_schedule_loan;uniqueIndex:ux_schedule_loan_no" json:"loan_id"`
	InstallmentNo int               `gorm:"uniqueIndex:ux_schedule_loan_no" json:"installment_no"`
	DueDate       time.Time         `json:"due_date"`
	DuePrincipal  decimal.Decimal   `gorm:"type:decimal(18,2)" json:"due_principal"`
	DueInterest   decimal.Decimal   `gorm:"type:decimal(18,2)" json:"due_interest"`
	DueTotal      decimal.Decimal   `gorm:"type:decimal(18,2)" json:"due_total"`
	PaidAmount    decimal.Decimal   `gorm:"type:decimal(18,2)" json:"paid_amount"`
	Status        InstallmentStatus `gorm:"size:16" json:"status"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
}

func (Installment) TableName() string { return "repayment_schedule" }

type Repayment struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID        string          `gorm:"size:32;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID             string          `gorm:"size:32;index:idx_repayments_loan" json:"loan_id"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	PrincipalComponent decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal_component"`
	InterestComponent  decimal.Decimal `gorm:"type:decimal(18,2)" json:"interest_component"`
	PaidAt             time.Time       `json:"paid_at"`
	Reference          string          `gorm:"size:128" json:"reference,omitempty"`
	RecordedBy         string          `gorm:"size:32" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }

type Disbursement struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	DisbursementID string          `gorm:"size:32;uniqueIndex:ux_disbursements_disbursement_id" json:"disbursement_id"`
	LoanID         string          `gorm:"size:32;index:idx_disbursements_loan" json:"loan_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	DisbursedAt    time.Time       `json:"disbursed_at"`
	DisbursedBy    string          `gorm:"size:32" json:"-"`
	Reference      string          `gorm:"size:128" json:"reference,omitempty"`
}

func (Disbursement) TableName() string { return "disbursements" }

// SecurityProjection carries the ownership fields of the loan's parent
// application, for authorization decisions on loan reads.
type SecurityProjection struct {
	LoanID            string
	AssignedToUserID  string
	ClientOwnerUserID string
}

type PortfolioSummary struct {
	TotalLoans           int64           `json:"total_loans"`
	ActiveLoans          int64           `json:"active_loans"`
	TotalPrincipal       decimal.Decimal `json:"total_principal"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	RepaidPrincipal      decimal.Decimal `json:"repaid_principal"`
}

type ArrearsItem struct {
	LoanID        string          `json:"loan_id"`
	AppID         string          `json:"application_id"`
	InstallmentNo int             `json:"installment_no"`
	DueDate       time.Time       `json:"due_date"`
	DueTotal      decimal.Decimal `json:"due_total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding_amount"`
	DaysOverdue   int             `json:"days_overdue"`
}
