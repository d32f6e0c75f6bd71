package loan

import (
	"time"

	"github.com/shopspring/decimal"

	loanDomain "lms-backend/internal/domain/loan"
)

// buildSchedule generates the amortization rows for a loan. Principal is
// split evenly at 2 decimal places; the final installment absorbs the
// rounding remainder so the due principals sum to the principal exactly.
// Interest is flat per installment: round(duePrincipal * rate/100, 2).
func buildSchedule(l *loanDomain.Loan, disbursedAt time.Time) []loanDomain.Installment {
	term := l.TermMonths
	base := l.PrincipalAmount.DivRound(decimal.NewFromInt(int64(term)), 2)
	rate := l.InterestRate.Div(decimal.NewFromInt(100))

	rows := make([]loanDomain.Installment, 0, term)
	remaining := l.PrincipalAmount
	for i := 1; i <= term; i++ {
		principal := base
		if i == term {
			principal = remaining
		}
		remaining = remaining.Sub(principal)

		interest := principal.Mul(rate).Round(2)
		rows = append(rows, loanDomain.Installment{
			LoanID:        l.LoanID,
			InstallmentNo: i,
			DueDate:       disbursedAt.AddDate(0, i, 0),
			DuePrincipal:  principal,
			DueInterest:   interest,
			DueTotal:      principal.Add(interest),
			PaidAmount:    decimal.Zero,
			Status:        loanDomain.InstallmentPending,
		})
	}
	return rows
}
