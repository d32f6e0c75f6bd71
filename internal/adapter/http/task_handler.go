package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lms-backend/internal/adapter/middleware"
	taskDomain "lms-backend/internal/domain/task"
	"lms-backend/internal/usecase/task"
)

type TaskHandler struct{ uc *task.Usecase }

func NewTaskHandler(uc *task.Usecase) *TaskHandler { return &TaskHandler{uc: uc} }

func (h *TaskHandler) List(c echo.Context) error {
	appID := c.QueryParam("application_id")
	assignedToMe := c.QueryParam("assigned_to_me") == "true"

	tasks, err := h.uc.List(c.Request().Context(), middleware.ActorID(c), appID, assignedToMe)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

type createTaskReq struct {
	AppID      string     `json:"application_id" validate:"required,hex32"`
	Title      string     `json:"title"          validate:"required"`
	AssignedTo string     `json:"assigned_to"`
	DueDate    *time.Time `json:"due_date"`
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	t, err := h.uc.Create(c.Request().Context(), middleware.ActorID(c), task.CreateInput{
		AppID:      req.AppID,
		Title:      req.Title,
		AssignedTo: req.AssignedTo,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

type updateTaskReq struct {
	Status     string     `json:"status"`
	AssignedTo string     `json:"assigned_to"`
	DueDate    *time.Time `json:"due_date"`
}

func (h *TaskHandler) Update(c echo.Context) error {
	taskID := c.Param("task_id")
	var req updateTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	t, err := h.uc.Update(c.Request().Context(), middleware.ActorID(c), taskID, task.UpdateInput{
		Status:     taskDomain.Status(req.Status),
		AssignedTo: req.AssignedTo,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
