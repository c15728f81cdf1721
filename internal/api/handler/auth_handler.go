package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp registers a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration form"
// @Success      201   {object}  signUpResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/sign_up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Name:        req.Name,
		FatherName:  req.FatherName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Email:       req.Email,
		Bio:         req.Bio,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	metrics.SignUpsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, signUpResponse{
		Message: "User is registered successfully.",
		User:    toUserResponse(user),
	})
}

// SignIn exchanges email and password for a session token valid for 24 hours.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/sign_in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signInResult(err)).Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, signInResponse{
		Token:  token,
		Tokken: token,
		User:   toUserResponse(user),
	})
}

func signInResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
