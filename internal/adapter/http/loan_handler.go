package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lms-backend/internal/adapter/middleware"
	"lms-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type disburseReq struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req disburseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	details, err := h.uc.Disburse(c.Request().Context(), middleware.ActorID(c), loanID, loan.DisburseInput{
		Amount:    req.Amount,
		Reference: req.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

type repaymentReq struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paid_at"`
	Reference string          `json:"reference"`
}

func (h *LoanHandler) RecordRepayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req repaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	details, err := h.uc.RecordRepayment(c.Request().Context(), middleware.ActorID(c), loanID, loan.RepaymentInput{
		Amount:    req.Amount,
		PaidAt:    req.PaidAt,
		Reference: req.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, details)
}

func (h *LoanHandler) Get(c echo.Context) error {
	details, err := h.uc.Get(c.Request().Context(), middleware.ActorID(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *LoanHandler) PortfolioSummary(c echo.Context) error {
	summary, err := h.uc.PortfolioSummary(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *LoanHandler) Arrears(c echo.Context) error {
	items, err := h.uc.Arrears(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
