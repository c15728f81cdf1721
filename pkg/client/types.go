package client

import "time"

type User struct {
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

type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

type SignUpRequest struct {
	Name        string `json:"name"`
	FatherName  string `json:"fatherName,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Bio         string `json:"bio,omitempty"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
}

type Project struct {
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

// NewProject is the create body. CreatedBy is ignored by servers that
// enforce sessions.
type NewProject struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	TeamMembers []string   `json:"teamMembers,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty"`
}

type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Assignee    string    `json:"assignee"`
	CreatedBy   string    `json:"createdBy"`
}

// TaskDetail is a task as returned by GetTask, with the creator resolved.
type TaskDetail struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Assignee    string    `json:"assignee"`
	CreatedBy   *UserRef  `json:"createdBy"`
}

type NewTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority,omitempty"`
	Assignee    string    `json:"assignee"`
	CreatedBy   string    `json:"createdBy,omitempty"`
}

type TeamMember struct {
	User UserRef `json:"user"`
	Role string  `json:"role"`
}

type Team struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Members   []TeamMember `json:"members"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Patch is a partial update body. Keys the server does not allow fail the
// whole update.
type Patch map[string]any

type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
}
