package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lms-backend/internal/adapter/middleware"
	appDomain "lms-backend/internal/domain/application"
	"lms-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type createDraftReq struct {
	ClientID         string          `json:"client_id"          validate:"omitempty,hex32"`
	AssignedToUserID string          `json:"assigned_to_user_id"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TermMonths       int             `json:"term_months"        validate:"required,gte=1,lte=360"`
	Purpose          string          `json:"purpose"            validate:"required"`
	BusinessName     string          `json:"business_name"`
	RegistrationNo   string          `json:"registration_no"`
	Address          string          `json:"address"`
}

func (h *ApplicationHandler) CreateDraft(c echo.Context) error {
	var req createDraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	app, err := h.uc.CreateDraft(c.Request().Context(), middleware.ActorID(c), application.CreateDraftInput{
		ClientID:         req.ClientID,
		AssignedToUserID: req.AssignedToUserID,
		RequestedAmount:  req.RequestedAmount,
		TermMonths:       req.TermMonths,
		Purpose:          req.Purpose,
		BusinessName:     req.BusinessName,
		RegistrationNo:   req.RegistrationNo,
		Address:          req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

type updateDraftReq struct {
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TermMonths       int             `json:"term_months"`
	Purpose          string          `json:"purpose"`
	AssignedToUserID string          `json:"assigned_to_user_id"`
}

func (h *ApplicationHandler) UpdateDraft(c echo.Context) error {
	appID := c.Param("app_id")
	var req updateDraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	app, err := h.uc.UpdateDraft(c.Request().Context(), middleware.ActorID(c), appID, application.UpdateDraftInput{
		RequestedAmount:  req.RequestedAmount,
		TermMonths:       req.TermMonths,
		Purpose:          req.Purpose,
		AssignedToUserID: req.AssignedToUserID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

type statusChangeReq struct {
	Status string `json:"status" validate:"required,appstatus"`
	Note   string `json:"note"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	appID := c.Param("app_id")
	var req struct {
		Note string `json:"note"`
	}
	_ = c.Bind(&req) // body is optional

	app, err := h.uc.Submit(c.Request().Context(), middleware.ActorID(c), appID, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) ChangeStatus(c echo.Context) error {
	appID := c.Param("app_id")
	var req statusChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	to, err := appDomain.ParseStatus(req.Status)
	if err != nil {
		return writeError(c, err)
	}
	app, err := h.uc.ChangeStatus(c.Request().Context(), middleware.ActorID(c), appID, to, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	app, err := h.uc.Get(c.Request().Context(), middleware.ActorID(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	apps, err := h.uc.List(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) History(c echo.Context) error {
	history, err := h.uc.History(c.Request().Context(), middleware.ActorID(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *ApplicationHandler) ListNotes(c echo.Context) error {
	notes, err := h.uc.ListNotes(c.Request().Context(), middleware.ActorID(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

type presignUploadReq struct {
	DocType  string `json:"doc_type"  validate:"required"`
	FileName string `json:"file_name" validate:"required"`
}

func (h *ApplicationHandler) PresignUpload(c echo.Context) error {
	appID := c.Param("app_id")
	var req presignUploadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	result, err := h.uc.PresignUpload(c.Request().Context(), middleware.ActorID(c), appID, application.PresignUploadInput{
		DocType:  req.DocType,
		FileName: req.FileName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

type confirmUploadReq struct {
	DocType     string `json:"doc_type"     validate:"required"`
	StoragePath string `json:"storage_path" validate:"required"`
	Status      string `json:"status"`
}

func (h *ApplicationHandler) ConfirmUpload(c echo.Context) error {
	appID := c.Param("app_id")
	var req confirmUploadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	doc, err := h.uc.ConfirmUpload(c.Request().Context(), middleware.ActorID(c), appID, application.ConfirmUploadInput{
		DocType:     req.DocType,
		StoragePath: req.StoragePath,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *ApplicationHandler) ListDocuments(c echo.Context) error {
	docs, err := h.uc.ListDocuments(c.Request().Context(), middleware.ActorID(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}
