package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type TeamHandler struct {
	service ports.TeamService
}

func NewTeamHandler(service ports.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// List handles GET /api/getallteam with members populated.
//
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   teamResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/getallteam [get]
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTeamResponses(teams))
}

// Create handles POST /api/createteam. Teams start empty.
//
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTeamRequest  true  "Team"
// @Success      201   {object}  teamResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/createteam [post]
func (h *TeamHandler) Create(c echo.Context) error {
	var req createTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	team, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("team", "create").Inc()
	return c.JSON(http.StatusCreated, toTeamResponse(team))
}

// Get handles GET /api/:id.
//
// @Summary      Get a team by id
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Team id"
// @Success      200  {object}  teamResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/{id} [get]
func (h *TeamHandler) Get(c echo.Context) error {
	team, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// Update handles PATCH /api/updateteambyid/:id. Only the name can change.
//
// @Summary      Rename a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Team id"
// @Param        body  body      teamUpdateRequest  true  "Fields to change"
// @Success      200   {object}  teamResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/updateteambyid/{id} [patch]
func (h *TeamHandler) Update(c echo.Context) error {
	body, err := bindPatch(c)
	if err != nil {
		return err
	}

	ve := domain.NewValidationError()
	patch := ports.TeamPatch{
		Fields: body.keys(),
		Name:   patchField[string](body, "name", ve),
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	team, err := h.service.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("team", "update").Inc()
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// Delete handles DELETE /api/:id.
//
// @Summary      Delete a team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Team id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/{id} [delete]
func (h *TeamHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("team", "delete").Inc()
	return c.JSON(http.StatusOK, deleted("Team deleted successfully", id))
}

// AddMember handles POST /api/addmember.
//
// @Summary      Add a member to a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addTeamMemberRequest  true  "Team and user"
// @Success      200   {object}  teamResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/addmember [post]
func (h *TeamHandler) AddMember(c echo.Context) error {
	var req addTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	team, err := h.service.AddMember(c.Request().Context(), req.TeamID, req.UserID)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("team", "add_member").Inc()
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// RemoveMember handles POST /api/removemember. Removing a non-member succeeds.
//
// @Summary      Remove a member from a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeTeamMemberRequest  true  "Team and member"
// @Success      200   {object}  teamResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/removemember [post]
func (h *TeamHandler) RemoveMember(c echo.Context) error {
	var req removeTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	team, err := h.service.RemoveMember(c.Request().Context(), req.TeamID, req.MemberID)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("team", "remove_member").Inc()
	return c.JSON(http.StatusOK, toTeamResponse(team))
}
