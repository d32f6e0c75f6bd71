package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms-backend/internal/adapter/middleware"
	"lms-backend/internal/usecase/onboarding"
)

type ClientHandler struct{ uc *onboarding.Usecase }

func NewClientHandler(uc *onboarding.Usecase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

type createAssistedReq struct {
	BusinessName      string `json:"business_name"       validate:"required"`
	RegistrationNo    string `json:"registration_no"`
	Address           string `json:"address"`
	ApplicantFullName string `json:"applicant_full_name"`
	ApplicantEmail    string `json:"applicant_email"     validate:"omitempty,email"`
	SendInvite        bool   `json:"send_invite"`
	RedirectTo        string `json:"redirect_to"`
}

func (h *ClientHandler) CreateAssisted(c echo.Context) error {
	var req createAssistedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	created, err := h.uc.CreateAssisted(c.Request().Context(), middleware.ActorID(c), onboarding.CreateAssistedInput{
		BusinessName:      req.BusinessName,
		RegistrationNo:    req.RegistrationNo,
		Address:           req.Address,
		ApplicantFullName: req.ApplicantFullName,
		ApplicantEmail:    req.ApplicantEmail,
		SendInvite:        req.SendInvite,
		RedirectTo:        req.RedirectTo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

type sendInviteReq struct {
	ApplicantEmail    string `json:"applicant_email"     validate:"required,email"`
	ApplicantFullName string `json:"applicant_full_name"`
	RedirectTo        string `json:"redirect_to"`
}

func (h *ClientHandler) SendInvite(c echo.Context) error {
	var req sendInviteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.SendInvite(c.Request().Context(), middleware.ActorID(c), c.Param("client_id"), onboarding.SendInviteInput{
		ApplicantEmail:    req.ApplicantEmail,
		ApplicantFullName: req.ApplicantFullName,
		RedirectTo:        req.RedirectTo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ClientHandler) List(c echo.Context) error {
	rows, err := h.uc.List(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
