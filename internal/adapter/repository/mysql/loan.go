package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "lms-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByAppID(ctx context.Context, appID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("app_id = ?", appID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) SecurityProjection(ctx context.Context, loanID string) (*loanDomain.SecurityProjection, error) {
	var row struct {
		LoanID            string
		AssignedToUserID  string
		ClientOwnerUserID string
	}
	res := r.db.WithContext(ctx).Raw(`
		select l.loan_id as loan_id,
		       la.assigned_to_user_id as assigned_to_user_id,
		       c.user_id as client_owner_user_id
		from loans l
		join loan_applications la on la.app_id = l.app_id
		join clients c on c.client_id = la.client_id
		where l.loan_id = ?`, loanID).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &loanDomain.SecurityProjection{
		LoanID:            row.LoanID,
		AssignedToUserID:  row.AssignedToUserID,
		ClientOwnerUserID: row.ClientOwnerUserID,
	}, nil
}

func (r *LoanRepository) CreateDisbursement(ctx context.Context, d *loanDomain.Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *LoanRepository) ListDisbursements(ctx context.Context, loanID string) ([]loanDomain.Disbursement, error) {
	var out []loanDomain.Disbursement
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("disbursed_at asc, id asc").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CreateRepayment(ctx context.Context, rp *loanDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *LoanRepository) ListRepayments(ctx context.Context, loanID string) ([]loanDomain.Repayment, error) {
	var out []loanDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("paid_at desc, id desc").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CreateInstallments(ctx context.Context, rows []loanDomain.Installment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *LoanRepository) CountInstallments(ctx context.Context, loanID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Installment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) ListInstallments(ctx context.Context, loanID string) ([]loanDomain.Installment, error) {
	var out []loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_no asc").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) NextOpenInstallment(ctx context.Context, loanID string) (*loanDomain.Installment, error) {
	var out loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND paid_amount < due_total", loanID).
		Order("installment_no asc").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) SaveInstallment(ctx context.Context, inst *loanDomain.Installment) error {
	return r.db.WithContext(ctx).Save(inst).Error
}

func (r *LoanRepository) PortfolioSummary(ctx context.Context) (*loanDomain.PortfolioSummary, error) {
	var row loanDomain.PortfolioSummary
	res := r.db.WithContext(ctx).Raw(`
		select count(*) as total_loans,
		       coalesce(sum(case when status in (?, ?) then 1 else 0 end), 0) as active_loans,
		       coalesce(sum(principal_amount), 0) as total_principal,
		       coalesce(sum(outstanding_principal), 0) as outstanding_principal
		from loans`, loanDomain.StatusDisbursed, loanDomain.StatusInRepayment).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	row.RepaidPrincipal = row.TotalPrincipal.Sub(row.OutstandingPrincipal)
	return &row, nil
}

func (r *LoanRepository) Arrears(ctx context.Context, asOf time.Time) ([]loanDomain.ArrearsItem, error) {
	var rows []loanDomain.ArrearsItem
	res := r.db.WithContext(ctx).Raw(`
		select rs.loan_id as loan_id,
		       l.app_id as app_id,
		       rs.installment_no as installment_no,
		       rs.due_date as due_date,
		       rs.due_total as due_total,
		       rs.paid_amount as paid_amount,
		       rs.due_total - rs.paid_amount as outstanding
		from repayment_schedule rs
		join loans l on l.loan_id = rs.loan_id
		where rs.due_date < ?
		  and rs.due_total > rs.paid_amount
		  and l.status <> ?
		order by rs.due_date asc, rs.installment_no asc`, asOf, loanDomain.StatusClosed).Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	for i := range rows {
		rows[i].DaysOverdue = int(asOf.Sub(rows[i].DueDate).Hours() / 24)
	}
	return rows, nil
}
