package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate acquires an exclusive row lock; only valid inside
	// a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByAppID(ctx context.Context, appID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	SecurityProjection(ctx context.Context, loanID string) (*SecurityProjection, error)

	CreateDisbursement(ctx context.Context, d *Disbursement) error
	ListDisbursements(ctx context.Context, loanID string) ([]Disbursement, error)

	CreateRepayment(ctx context.Context, r *Repayment) error
	ListRepayments(ctx context.Context, loanID string) ([]Repayment, error)

	CreateInstallments(ctx context.Context, rows []Installment) error
	CountInstallments(ctx context.Context, loanID string) (int64, error)
	ListInstallments(ctx context.Context, loanID string) ([]Installment, error)
	// NextOpenInstallment returns the lowest-numbered installment with
	// paid_amount < due_total, or gorm.ErrRecordNotFound when none remain.
	NextOpenInstallment(ctx context.Context, loanID string) (*Installment, error)
	SaveInstallment(ctx context.Context, inst *Installment) error

	PortfolioSummary(ctx context.Context) (*PortfolioSummary, error)
	Arrears(ctx context.Context, asOf time.Time) ([]ArrearsItem, error)
}
