package handler

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// errorResponse documents the envelope rendered by the API's error handler.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

type deletedData struct {
	ID string `json:"id"`
}

type deleteResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    deletedData `json:"data"`
}

func deleted(message, id string) deleteResponse {
	return deleteResponse{Status: "success", Message: message, Data: deletedData{ID: id}}
}

// --- Auth ---

type signUpRequest struct {
	Name        string `json:"name"        validate:"required"`
	FatherName  string `json:"fatherName"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address"     validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Bio         string `json:"bio"`
	Password    string `json:"password"    validate:"required,min=6,max=72"`
	Role        string `json:"role"        validate:"omitempty,oneof=user admin seller"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signUpResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// signInResponse repeats the token under "tokken", the key the web client reads.
type signInResponse struct {
	Token  string       `json:"token"`
	Tokken string       `json:"tokken"`
	User   userResponse `json:"user"`
}

// --- Users ---

type userResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	FatherName  string    `json:"fatherName,omitempty"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// userUpdateRequest documents the accepted keys; the body is decoded as a patch.
type userUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	FatherName  *string `json:"fatherName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Password    *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
}

// --- Projects ---

type createProjectRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	StartDate   *jsonDate `json:"startDate"   validate:"required" swaggertype:"string" format:"date"`
	EndDate     *jsonDate `json:"endDate"     swaggertype:"string" format:"date"`
	TeamMembers []string  `json:"teamMembers"`
	CreatedBy   string    `json:"createdBy"`
}

type projectUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	StartDate   *string `json:"startDate,omitempty" format:"date"`
	EndDate     *string `json:"endDate,omitempty"   format:"date"`
}

type projectMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type projectResponse struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	TeamMembers []string   `json:"teamMembers"`
	CreatedBy   string     `json:"createdBy"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string    `json:"title"       validate:"required,max=100"`
	Description string    `json:"description" validate:"max=1000"`
	DueDate     *jsonDate `json:"dueDate"     validate:"required" swaggertype:"string" format:"date-time"`
	Priority    string    `json:"priority"`
	Assignee    string    `json:"assignee"    validate:"required"`
	CreatedBy   string    `json:"createdBy"`
}

type taskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty" format:"date-time"`
	Priority    *string `json:"priority,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
}

type taskResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Assignee    string    `json:"assignee"`
	CreatedBy   string    `json:"createdBy"`
}

type userRefResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// taskDetailResponse carries the creator populated, or null when the user is gone.
type taskDetailResponse struct {
	ID          string           `json:"_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	DueDate     time.Time        `json:"dueDate"`
	Priority    string           `json:"priority"`
	Assignee    string           `json:"assignee"`
	CreatedBy   *userRefResponse `json:"createdBy"`
}

// --- Teams ---

type createTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

type teamUpdateRequest struct {
	Name *string `json:"name,omitempty"`
}

type addTeamMemberRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

type removeTeamMemberRequest struct {
	TeamID   string `json:"teamId"   validate:"required"`
	MemberID string `json:"memberId" validate:"required"`
}

type teamMemberResponse struct {
	User userRefResponse `json:"user"`
	Role string          `json:"role"`
}

type teamResponse struct {
	ID        string               `json:"_id"`
	Name      string               `json:"name"`
	Members   []teamMemberResponse `json:"members"`
	CreatedAt time.Time            `json:"createdAt"`
}
