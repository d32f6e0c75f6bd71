package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms-backend/internal/adapter/middleware"
	"lms-backend/internal/usecase/compliance"
)

type ComplianceHandler struct{ uc *compliance.Usecase }

func NewComplianceHandler(uc *compliance.Usecase) *ComplianceHandler {
	return &ComplianceHandler{uc: uc}
}

func (h *ComplianceHandler) ListRequirements(c echo.Context) error {
	rows, err := h.uc.ListRequirements(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type createRequirementReq struct {
	RequiredAtStatus string `json:"required_at_status" validate:"required,appstatus"`
	DocType          string `json:"doc_type"           validate:"required"`
	IsRequired       bool   `json:"is_required"`
}

func (h *ComplianceHandler) CreateRequirement(c echo.Context) error {
	var req createRequirementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dr, err := h.uc.CreateRequirement(c.Request().Context(), middleware.ActorID(c), compliance.CreateRequirementInput{
		RequiredAtStatus: req.RequiredAtStatus,
		DocType:          req.DocType,
		IsRequired:       req.IsRequired,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dr)
}

type verifyDocumentReq struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

func (h *ComplianceHandler) VerifyDocument(c echo.Context) error {
	var req verifyDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	doc, err := h.uc.VerifyDocument(c.Request().Context(), middleware.ActorID(c), c.Param("app_id"), c.Param("document_id"), compliance.VerifyDocumentInput{
		Status: req.Status,
		Note:   req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *ComplianceHandler) Evaluate(c echo.Context) error {
	report, err := h.uc.Evaluate(c.Request().Context(), middleware.ActorID(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
