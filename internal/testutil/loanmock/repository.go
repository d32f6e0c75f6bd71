package loanmock

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "lms-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByAppIDFn           func(ctx context.Context, appID string) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	SecurityProjectionFn   func(ctx context.Context, loanID string) (*domain.SecurityProjection, error)
	CreateDisbursementFn   func(ctx context.Context, d *domain.Disbursement) error
	ListDisbursementsFn    func(ctx context.Context, loanID string) ([]domain.Disbursement, error)
	CreateRepaymentFn      func(ctx context.Context, r *domain.Repayment) error
	ListRepaymentsFn       func(ctx context.Context, loanID string) ([]domain.Repayment, error)
	CreateInstallmentsFn   func(ctx context.Context, rows []domain.Installment) error
	CountInstallmentsFn    func(ctx context.Context, loanID string) (int64, error)
	ListInstallmentsFn     func(ctx context.Context, loanID string) ([]domain.Installment, error)
	NextOpenInstallmentFn  func(ctx context.Context, loanID string) (*domain.Installment, error)
	SaveInstallmentFn      func(ctx context.Context, inst *domain.Installment) error
	PortfolioSummaryFn     func(ctx context.Context) (*domain.PortfolioSummary, error)
	ArrearsFn              func(ctx context.Context, asOf time.Time) ([]domain.ArrearsItem, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByAppID(ctx context.Context, appID string) (*domain.Loan, error) {
	if m.GetByAppIDFn != nil {
		return m.GetByAppIDFn(ctx, appID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) SecurityProjection(ctx context.Context, loanID string) (*domain.SecurityProjection, error) {
	if m.SecurityProjectionFn != nil {
		return m.SecurityProjectionFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) CreateDisbursement(ctx context.Context, d *domain.Disbursement) error {
	if m.CreateDisbursementFn != nil {
		return m.CreateDisbursementFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListDisbursements(ctx context.Context, loanID string) ([]domain.Disbursement, error) {
	if m.ListDisbursementsFn != nil {
		return m.ListDisbursementsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CreateRepayment(ctx context.Context, r *domain.Repayment) error {
	if m.CreateRepaymentFn != nil {
		return m.CreateRepaymentFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListRepayments(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	if m.ListRepaymentsFn != nil {
		return m.ListRepaymentsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CreateInstallments(ctx context.Context, rows []domain.Installment) error {
	if m.CreateInstallmentsFn != nil {
		return m.CreateInstallmentsFn(ctx, rows)
	}
	return nil
}

func (m *Repo) CountInstallments(ctx context.Context, loanID string) (int64, error) {
	if m.CountInstallmentsFn != nil {
		return m.CountInstallmentsFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) ListInstallments(ctx context.Context, loanID string) ([]domain.Installment, error) {
	if m.ListInstallmentsFn != nil {
		return m.ListInstallmentsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) NextOpenInstallment(ctx context.Context, loanID string) (*domain.Installment, error) {
	if m.NextOpenInstallmentFn != nil {
		return m.NextOpenInstallmentFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) SaveInstallment(ctx context.Context, inst *domain.Installment) error {
	if m.SaveInstallmentFn != nil {
		return m.SaveInstallmentFn(ctx, inst)
	}
	return nil
}

func (m *Repo) PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	if m.PortfolioSummaryFn != nil {
		return m.PortfolioSummaryFn(ctx)
	}
	return &domain.PortfolioSummary{}, nil
}

func (m *Repo) Arrears(ctx context.Context, asOf time.Time) ([]domain.ArrearsItem, error) {
	if m.ArrearsFn != nil {
		return m.ArrearsFn(ctx, asOf)
	}
	return nil, nil
}
