package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/getalltask.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/getalltask [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Create handles POST /api/createtask. dueDate must lie in the future.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/createtask [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), toCreateTaskInput(req, creatorID(c, req.CreatedBy)))
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("task", "create").Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Get handles GET /api/gettaskbyid/:id with the creator populated.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/gettaskbyid/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

// Update handles POST /api/updatetaskbyid/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      taskUpdateRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/updatetaskbyid/{id} [post]
func (h *TaskHandler) Update(c echo.Context) error {
	body, err := bindPatch(c)
	if err != nil {
		return err
	}

	ve := domain.NewValidationError()
	patch := ports.TaskPatch{
		Fields:      body.keys(),
		Title:       patchField[string](body, "title", ve),
		Description: patchField[string](body, "description", ve),
		DueDate:     patchField[jsonDate](body, "dueDate", ve).ptr(),
		Priority:    patchField[string](body, "priority", ve),
		Assignee:    patchField[string](body, "assignee", ve),
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("task", "update").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/deletetaskbyid/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/deletetaskbyid/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("task", "delete").Inc()
	return c.JSON(http.StatusOK, deleted("Task deleted successfully", id))
}
