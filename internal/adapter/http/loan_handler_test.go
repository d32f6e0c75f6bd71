package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lms-backend/internal/adapter/middleware"
	appDomain "lms-backend/internal/domain/application"
	loanDomain "lms-backend/internal/domain/loan"
	"lms-backend/internal/domain/uow"
	"lms-backend/internal/guard"
	"lms-backend/internal/testutil/appmock"
	"lms-backend/internal/testutil/auditmock"
	"lms-backend/internal/testutil/loanmock"
	"lms-backend/internal/testutil/rolesmock"
	"lms-backend/internal/testutil/uowmock"
	uc "lms-backend/internal/usecase/loan"
)

// -------- helpers --------

const (
	officerActor = "officer-1"
	clientActor  = "client-user-1"
	loanID32     = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	appID32      = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newLoanContext builds an authenticated echo context for /loans/:loan_id.
func newLoanContext(e *echo.Echo, method, actor string, body *bytes.Reader) (echo.Context, *httptest.ResponseRecorder) {
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, "/", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID32)
	middleware.SetActorID(c, actor)
	return c, rec
}

func handlerRoles() guard.RoleResolver {
	return rolesmock.New(map[string][]string{
		officerActor: {guard.RoleLoanOfficer},
		clientActor:  {guard.RoleClient},
	})
}

// newLoanHandler wires the usecase to an in-memory loan.
func newLoanHandler(l *loanDomain.Loan) *LoanHandler {
	var insts []loanDomain.Installment
	getLoan := func(_ context.Context, loanID string) (*loanDomain.Loan, error) {
		if l == nil || l.LoanID != loanID {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *l
		return &cp, nil
	}
	loans := &loanmock.Repo{
		GetByLoanIDFn:          getLoan,
		GetByLoanIDForUpdateFn: getLoan,
		SaveFn: func(_ context.Context, updated *loanDomain.Loan) error {
			*l = *updated
			return nil
		},
		CreateInstallmentsFn: func(_ context.Context, rows []loanDomain.Installment) error {
			insts = rows
			return nil
		},
		CountInstallmentsFn: func(_ context.Context, _ string) (int64, error) {
			return int64(len(insts)), nil
		},
		ListInstallmentsFn: func(_ context.Context, _ string) ([]loanDomain.Installment, error) {
			return insts, nil
		},
		NextOpenInstallmentFn: func(_ context.Context, _ string) (*loanDomain.Installment, error) {
			for i := range insts {
				if insts[i].Status != loanDomain.InstallmentPaid {
					cp := insts[i]
					return &cp, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		SaveInstallmentFn: func(_ context.Context, inst *loanDomain.Installment) error {
			for i := range insts {
				if insts[i].InstallmentNo == inst.InstallmentNo {
					insts[i] = *inst
				}
			}
			return nil
		},
		SecurityProjectionFn: func(_ context.Context, loanID string) (*loanDomain.SecurityProjection, error) {
			if l == nil || l.LoanID != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			return &loanDomain.SecurityProjection{LoanID: loanID, ClientOwnerUserID: clientActor}, nil
		},
	}
	apps := &appmock.Repo{
		GetByAppIDFn: func(_ context.Context, _ string) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := uowmock.Immediate(uow.Repos{Applications: apps, Loans: loans})
	return NewLoanHandler(uc.NewUsecase(loans, tx, handlerRoles(), auditmock.New()))
}

func pendingLoan() *loanDomain.Loan {
	principal, _ := decimal.NewFromString("1200.00")
	rate, _ := decimal.NewFromString("10.00")
	return &loanDomain.Loan{
		LoanID:               loanID32,
		AppID:                appID32,
		PrincipalAmount:      principal,
		OutstandingPrincipal: principal,
		InterestRate:         rate,
		TermMonths:           12,
		Status:               loanDomain.StatusPendingDisbursement,
	}
}

// -------- tests --------

func TestDisburse_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(pendingLoan())

	c, rec := newLoanContext(e, stdhttp.MethodPost, officerActor, mustJSON(map[string]any{
		"amount": "1200.00", "reference": "wire-1",
	}))
	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body)
	}

	var got uc.Details
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Loan.Status != loanDomain.StatusDisbursed {
		t.Fatalf("status = %s", got.Loan.Status)
	}
	if len(got.Schedule) != 12 {
		t.Fatalf("schedule rows = %d", len(got.Schedule))
	}
}

func TestDisburse_ForbiddenForClient(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(pendingLoan())

	c, rec := newLoanContext(e, stdhttp.MethodPost, clientActor, mustJSON(map[string]any{"amount": "100.00"}))
	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestDisburse_ConflictWhenClosed(t *testing.T) {
	e := newEchoWithValidator()
	l := pendingLoan()
	l.Status = loanDomain.StatusClosed
	h := newLoanHandler(l)

	c, rec := newLoanContext(e, stdhttp.MethodPost, officerActor, mustJSON(map[string]any{"amount": "100.00"}))
	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRecordRepayment_Success(t *testing.T) {
	e := newEchoWithValidator()
	l := pendingLoan()
	l.Status = loanDomain.StatusDisbursed
	h := newLoanHandler(l)

	c, rec := newLoanContext(e, stdhttp.MethodPost, officerActor, mustJSON(map[string]any{
		"amount": "110.00", "reference": "trx-9",
	}))
	if err := h.RecordRepayment(c); err != nil {
		t.Fatalf("RecordRepayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body)
	}

	var got uc.Details
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	want, _ := decimal.NewFromString("1090.00")
	if !got.Loan.OutstandingPrincipal.Equal(want) {
		t.Fatalf("outstanding = %s", got.Loan.OutstandingPrincipal)
	}
}

func TestRecordRepayment_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(pendingLoan())

	c, rec := newLoanContext(e, stdhttp.MethodPost, officerActor, mustJSON(map[string]any{"amount": "0"}))
	if err := h.RecordRepayment(c); err != nil {
		t.Fatalf("RecordRepayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestGetLoan_AccessAndNotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(pendingLoan())

	c, rec := newLoanContext(e, stdhttp.MethodGet, clientActor, nil)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("owner status = %d, want 200", rec.Code)
	}

	c, rec = newLoanContext(e, stdhttp.MethodGet, "stranger-1", nil)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("stranger status = %d, want 403", rec.Code)
	}

	h = newLoanHandler(nil)
	c, rec = newLoanContext(e, stdhttp.MethodGet, officerActor, nil)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("missing status = %d, want 404", rec.Code)
	}
}

func TestReports_StaffGate(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(pendingLoan())

	c, rec := newLoanContext(e, stdhttp.MethodGet, officerActor, nil)
	if err := h.PortfolioSummary(c); err != nil {
		t.Fatalf("PortfolioSummary error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("staff status = %d, want 200", rec.Code)
	}

	c, rec = newLoanContext(e, stdhttp.MethodGet, clientActor, nil)
	if err := h.Arrears(c); err != nil {
		t.Fatalf("Arrears error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("client status = %d, want 403", rec.Code)
	}
}
