package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	TaskTitleMaxLength       = 100
	TaskDescriptionMaxLength = 1000
)

// TaskUpdatable lists the fields accepted by a task update.
var TaskUpdatable = AllowList{"title", "description", "dueDate", "priority", "assignee"}

// Task is not linked to a project; assignee and creator are plain user ids.
type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
	CreatedBy   string    `json:"createdBy"`
}

func (t *Task) ApplyDefaults() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// ValidateTask checks the shape of a task. The due date's position relative
// to the clock is checked separately by ValidateDueDate.
func ValidateTask(t *Task) error {
	ve := NewValidationError()
	switch {
	case t.Title == "":
		ve.Add("title", "is required")
	case utf8.RuneCountInString(t.Title) > TaskTitleMaxLength:
		ve.Add("title", "cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(t.Description) > TaskDescriptionMaxLength {
		ve.Add("description", "cannot exceed 1000 characters")
	}
	if t.DueDate.IsZero() {
		ve.Add("dueDate", "is required")
	}
	if !t.Priority.Valid() {
		ve.Add("priority", "must be one of: Low, Medium, High, Critical")
	}
	if strings.TrimSpace(t.Assignee) == "" {
		ve.Add("assignee", "is required")
	}
	if t.CreatedBy == "" {
		ve.Add("createdBy", "is required")
	}
	return ve.OrNil()
}

// ValidateDueDate requires due to be strictly after now. It applies whenever
// a due date is written.
func ValidateDueDate(due, now time.Time) error {
	if !due.IsZero() && !due.After(now) {
		return Invalid("dueDate", "must be in the future")
	}
	return nil
}
