package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	appDomain "lms-backend/internal/domain/application"
	"lms-backend/internal/domain/audit"
	loanDomain "lms-backend/internal/domain/loan"
	"lms-backend/internal/domain/uow"
	"lms-backend/internal/guard"
	"lms-backend/pkg/id"
)

type Usecase struct {
	loans loanDomain.Repository
	uow   uow.UnitOfWork
	roles guard.RoleResolver
	audit audit.Sink
}

func NewUsecase(loans loanDomain.Repository, tx uow.UnitOfWork, roles guard.RoleResolver, auditSink audit.Sink) *Usecase {
	return &Usecase{loans: loans, uow: tx, roles: roles, audit: auditSink}
}

// Disburse advances a loan from pending to disbursed. The lock, disbursement
// row, loan update, application sync and one-time schedule generation commit
// or roll back as a unit; the exclusive loan lock serializes concurrent
// attempts so the schedule cannot be generated twice.
func (u *Usecase) Disburse(ctx context.Context, actorID, loanID string, in DisburseInput) (*Details, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !guard.IsStaff(roles) {
		return nil, fmt.Errorf("%w: only LoanOfficer/Admin can disburse", apperr.ErrForbidden)
	}

	var disbursed decimal.Decimal
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusPendingDisbursement && l.Status != loanDomain.StatusDisbursed {
			return fmt.Errorf("%w: loan status %s cannot be disbursed", apperr.ErrInvalidTransition, l.Status)
		}

		amount := decimal.Min(in.Amount, l.OutstandingPrincipal)
		if amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: disbursement amount must be greater than zero", apperr.ErrValidation)
		}
		disbursed = amount

		now := time.Now().UTC()
		if err := r.Loans.CreateDisbursement(ctx, &loanDomain.Disbursement{
			DisbursementID: id.NewID32(),
			LoanID:         l.LoanID,
			Amount:         amount,
			DisbursedAt:    now,
			DisbursedBy:    actorID,
			Reference:      in.Reference,
		}); err != nil {
			return err
		}

		l.Status = loanDomain.StatusDisbursed
		if l.DisbursedAt == nil {
			l.DisbursedAt = &now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := syncApplicationStatus(ctx, r.Applications, l.AppID, appDomain.StatusDisbursed, actorID, "Loan disbursed."); err != nil {
			return err
		}
		return ensureSchedule(ctx, r.Loans, l, now)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	u.audit.Append(ctx, "loans", loanID, "DisburseLoan", actorID, map[string]any{
		"amount":    disbursed.String(),
		"reference": in.Reference,
	})
	return u.details(ctx, loanID)
}

// ensureSchedule generates the amortization schedule exactly once, at first
// disbursement.
func ensureSchedule(ctx context.Context, loans loanDomain.Repository, l *loanDomain.Loan, disbursedAt time.Time) error {
	existing, err := loans.CountInstallments(ctx, l.LoanID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	return loans.CreateInstallments(ctx, buildSchedule(l, disbursedAt))
}

// RecordRepayment applies a payment against the loan balance and the
// installment schedule under the loan lock.
func (u *Usecase) RecordRepayment(ctx context.Context, actorID, loanID string, in RepaymentInput) (*Details, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !guard.IsStaff(roles) {
		return nil, fmt.Errorf("%w: only LoanOfficer/Admin can record repayments", apperr.ErrForbidden)
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: repayment amount must be positive", apperr.ErrValidation)
	}

	var principalComponent, interestComponent decimal.Decimal
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status == loanDomain.StatusClosed {
			return fmt.Errorf("%w: closed loan cannot accept repayments", apperr.ErrInvalidTransition)
		}

		paidAt := time.Now().UTC()
		if in.PaidAt != nil {
			paidAt = in.PaidAt.UTC()
		}

		// Split: principal first; anything beyond the remaining principal
		// is booked entirely as interest.
		principalComponent = decimal.Min(in.Amount, l.OutstandingPrincipal)
		interestComponent = in.Amount.Sub(principalComponent)
		newOutstanding := l.OutstandingPrincipal.Sub(principalComponent)
		if newOutstanding.IsNegative() {
			newOutstanding = decimal.Zero
		}

		if err := r.Loans.CreateRepayment(ctx, &loanDomain.Repayment{
			RepaymentID:        id.NewID32(),
			LoanID:             l.LoanID,
			Amount:             in.Amount,
			PrincipalComponent: principalComponent,
			InterestComponent:  interestComponent,
			PaidAt:             paidAt,
			Reference:          in.Reference,
			RecordedBy:         actorID,
		}); err != nil {
			return err
		}

		l.OutstandingPrincipal = newOutstanding
		if newOutstanding.IsZero() {
			l.Status = loanDomain.StatusClosed
		} else {
			l.Status = loanDomain.StatusInRepayment
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := allocateToSchedule(ctx, r.Loans, l.LoanID, in.Amount, paidAt); err != nil {
			return err
		}

		appStatus := appDomain.StatusInRepayment
		if l.Status == loanDomain.StatusClosed {
			appStatus = appDomain.StatusClosed
		}
		return syncApplicationStatus(ctx, r.Applications, l.AppID, appStatus, actorID, "Repayment recorded.")
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	u.audit.Append(ctx, "repayments", loanID, "RecordRepayment", actorID, map[string]any{
		"amount":             in.Amount.String(),
		"principalComponent": principalComponent.String(),
		"interestComponent":  interestComponent.String(),
	})
	return u.details(ctx, loanID)
}

// allocateToSchedule is the waterfall: the full raw payment is applied to
// open installments in ascending order until exhausted. Anything left after
// the last installment is satisfied is not reflected in the schedule.
func allocateToSchedule(ctx context.Context, loans loanDomain.Repository, loanID string, amount decimal.Decimal, paidAt time.Time) error {
	remaining := amount
	for remaining.IsPositive() {
		inst, err := loans.NextOpenInstallment(ctx, loanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		open := inst.DueTotal.Sub(inst.PaidAmount)
		applied := decimal.Min(remaining, open)
		remaining = remaining.Sub(applied)

		inst.PaidAmount = inst.PaidAmount.Add(applied)
		if inst.PaidAmount.GreaterThanOrEqual(inst.DueTotal) {
			inst.Status = loanDomain.InstallmentPaid
			at := paidAt
			inst.PaidAt = &at
		}
		if err := loans.SaveInstallment(ctx, inst); err != nil {
			return err
		}
	}
	return nil
}

// syncApplicationStatus writes the loan-derived status back onto the parent
// application. This is the system write-back path: it does not re-validate
// the edge table, matching the loan side being the source of truth here.
func syncApplicationStatus(ctx context.Context, apps appDomain.Repository, appID string, desired appDomain.Status, actorID, note string) error {
	app, err := apps.GetByAppID(ctx, appID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if app.Status == desired {
		return nil
	}

	from := app.Status
	app.Status = desired
	if err := apps.Save(ctx, app); err != nil {
		return err
	}
	return apps.AppendHistory(ctx, &appDomain.StatusHistory{
		AppID:      appID,
		FromStatus: string(from),
		ToStatus:   string(desired),
		ChangedBy:  actorID,
		Note:       note,
	})
}

func (u *Usecase) Get(ctx context.Context, actorID, loanID string) (*Details, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	proj, err := u.loans.SecurityProjection(ctx, loanID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !guard.CanAccess(roles, actorID, guard.Projection{
		AssignedToUserID:  proj.AssignedToUserID,
		ClientOwnerUserID: proj.ClientOwnerUserID,
	}) {
		return nil, fmt.Errorf("%w: cannot access this loan", apperr.ErrForbidden)
	}
	return u.details(ctx, loanID)
}

func (u *Usecase) PortfolioSummary(ctx context.Context, actorID string) (*loanDomain.PortfolioSummary, error) {
	if err := u.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return u.loans.PortfolioSummary(ctx)
}

func (u *Usecase) Arrears(ctx context.Context, actorID string) ([]loanDomain.ArrearsItem, error) {
	if err := u.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return u.loans.Arrears(ctx, time.Now().UTC())
}

func (u *Usecase) requireStaff(ctx context.Context, actorID string) error {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return err
	}
	if !guard.IsStaff(roles) {
		return fmt.Errorf("%w: staff only", apperr.ErrForbidden)
	}
	return nil
}

func (u *Usecase) details(ctx context.Context, loanID string) (*Details, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	schedule, err := u.loans.ListInstallments(ctx, loanID)
	if err != nil {
		return nil, err
	}
	repayments, err := u.loans.ListRepayments(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return &Details{Loan: l, Schedule: schedule, Repayments: repayments}, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: loan", apperr.ErrNotFound)
	}
	return err
}
