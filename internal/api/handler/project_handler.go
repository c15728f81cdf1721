package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /api/getproject.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   projectResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/getproject [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(projects))
}

// Create handles POST /api/createproject. When the caller is authenticated,
// createdBy is taken from the session and the body value is ignored.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/createproject [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.Create(c.Request().Context(), toCreateProjectInput(req, creatorID(c, req.CreatedBy)))
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("project", "create").Inc()
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Get handles GET /api/getprojectbyid/:id.
//
// @Summary      Get a project by id
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/getprojectbyid/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Update handles PATCH /api/updateprojectbyid/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      projectUpdateRequest  true  "Fields to change"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/updateprojectbyid/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	body, err := bindPatch(c)
	if err != nil {
		return err
	}

	ve := domain.NewValidationError()
	patch := ports.ProjectPatch{
		Fields:      body.keys(),
		Title:       patchField[string](body, "title", ve),
		Description: patchField[string](body, "description", ve),
		Status:      patchField[string](body, "status", ve),
		Priority:    patchField[string](body, "priority", ve),
		StartDate:   patchField[jsonDate](body, "startDate", ve).ptr(),
		EndDate:     patchField[jsonDate](body, "endDate", ve).ptr(),
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("project", "update").Inc()
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete handles DELETE /api/deleteprojectbyid/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/deleteprojectbyid/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("project", "delete").Inc()
	return c.JSON(http.StatusOK, deleted("Project deleted successfully", id))
}

// AddMember handles POST /api/:id/team.
//
// @Summary      Add a member to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      projectMemberRequest  true  "Member"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/{id}/team [post]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	var req projectMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.AddMember(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("project", "add_member").Inc()
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// RemoveMember handles DELETE /api/:id/team. Removing a non-member succeeds.
//
// @Summary      Remove a member from a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      projectMemberRequest  true  "Member"
// @Success      200   {object}  projectResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/{id}/team [delete]
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	var req projectMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.RemoveMember(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("project", "remove_member").Inc()
	return c.JSON(http.StatusOK, toProjectResponse(project))
}
