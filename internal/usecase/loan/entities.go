package loan

import (
	"time"

	"github.com/shopspring/decimal"

	loanDomain "lms-backend/internal/domain/loan"
)

type DisburseInput struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

type RepaymentInput struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paid_at"`
	Reference string          `json:"reference"`
}

// Details is the loan read model: the loan with its schedule and repayments.
type Details struct {
	Loan       *loanDomain.Loan         `json:"loan"`
	Schedule   []loanDomain.Installment `json:"schedule"`
	Repayments []loanDomain.Repayment   `json:"repayments"`
}
