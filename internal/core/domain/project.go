package domain

import (
	"strings"
	"time"
)

// ProjectStatus is a free-form enumeration: any value may replace any other.
type ProjectStatus string

const (
	StatusPlanning   ProjectStatus = "Planning"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusOnHold     ProjectStatus = "On Hold"
	StatusCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// Priority is shared by projects and tasks.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ProjectUpdatable lists the fields accepted by a project update.
var ProjectUpdatable = AllowList{"title", "description", "status", "startDate", "endDate", "priority"}

type Project struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	TeamMembers []string      `json:"teamMembers"`
	CreatedBy   string        `json:"createdBy"`
}

func (p *Project) HasMember(userID string) bool {
	for _, m := range p.TeamMembers {
		if m == userID {
			return true
		}
	}
	return false
}

// ApplyDefaults fills the status and priority the way a new record expects.
func (p *Project) ApplyDefaults() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
}

func ValidateProject(p *Project) error {
	ve := NewValidationError()
	if p.Title == "" {
		ve.Add("title", "is required")
	}
	if !p.Status.Valid() {
		ve.Add("status", "must be one of: Planning, In Progress, Completed, On Hold, Cancelled")
	}
	if !p.Priority.Valid() {
		ve.Add("priority", "must be one of: Low, Medium, High, Critical")
	}
	if p.StartDate.IsZero() {
		ve.Add("startDate", "is required")
	}
	if p.CreatedBy == "" {
		ve.Add("createdBy", "is required")
	}
	return ve.OrNil()
}
