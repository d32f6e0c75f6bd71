package uow

import (
	"context"

	"lms-backend/internal/domain/application"
	"lms-backend/internal/domain/client"
	"lms-backend/internal/domain/loan"
	"lms-backend/internal/domain/task"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Applications application.Repository
	Clients      client.Repository
	Loans        loan.Repository
	Tasks        task.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one transaction; all writes commit or roll
	// back together.
	WithinTx(ctx context.Context, fn func(r Repos) error) error

	// WithinLoanTx locks the loan row exclusively up-front, then runs fn.
	// Disbursement and repayment on the same loan serialize on this lock so
	// balance updates and schedule generation cannot race.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
