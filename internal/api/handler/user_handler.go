package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/getalluser [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get returns one user.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/getuserbyid/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial update. Keys outside the updatable set fail the
// whole request.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      userUpdateRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/updateuserbyid/{id} [post]
func (h *UserHandler) Update(c echo.Context) error {
	body, err := bindPatch(c)
	if err != nil {
		return err
	}

	ve := domain.NewValidationError()
	patch := ports.UserPatch{
		Fields:      body.keys(),
		Name:        patchField[string](body, "name", ve),
		FatherName:  patchField[string](body, "fatherName", ve),
		PhoneNumber: patchField[string](body, "phoneNumber", ve),
		Address:     patchField[string](body, "address", ve),
		Email:       patchField[string](body, "email", ve),
		Bio:         patchField[string](body, "bio", ve),
		Password:    patchField[string](body, "password", ve),
		Role:        patchField[string](body, "role", ve),
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), patch, actorFrom(c))
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user. Admin only.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/deleteuserbyid/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("user", "delete").Inc()
	return c.JSON(http.StatusOK, deleted("User deleted successfully", id))
}
