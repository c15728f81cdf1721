package handler

import (
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		FatherName:  u.FatherName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Email:       u.Email,
		Bio:         u.Bio,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toProjectResponse(p *domain.Project) projectResponse {
	members := p.TeamMembers
	if members == nil {
		members = []string{}
	}
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		Priority:    string(p.Priority),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		TeamMembers: members,
		CreatedBy:   p.CreatedBy,
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}

func toCreateProjectInput(req createProjectRequest, createdBy string) ports.CreateProjectInput {
	in := ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		EndDate:     req.EndDate.ptr(),
		TeamMembers: req.TeamMembers,
		CreatedBy:   createdBy,
	}
	if req.StartDate != nil {
		in.StartDate = req.StartDate.Time
	}
	return in
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Assignee:    t.Assignee,
		CreatedBy:   t.CreatedBy,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toTaskDetailResponse(d *ports.TaskDetail) taskDetailResponse {
	resp := taskDetailResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    string(d.Priority),
		Assignee:    d.Assignee,
	}
	if d.Creator != nil {
		resp.CreatedBy = &userRefResponse{ID: d.Creator.ID, Name: d.Creator.Name, Email: d.Creator.Email}
	}
	return resp
}

func toCreateTaskInput(req createTaskRequest, createdBy string) ports.CreateTaskInput {
	in := ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		CreatedBy:   createdBy,
	}
	if req.DueDate != nil {
		in.DueDate = req.DueDate.Time
	}
	return in
}

func toTeamResponse(t *ports.TeamDetail) teamResponse {
	resp := teamResponse{
		ID:        t.ID,
		Name:      t.Name,
		Members:   make([]teamMemberResponse, len(t.Members)),
		CreatedAt: t.CreatedAt,
	}
	for i, m := range t.Members {
		resp.Members[i] = teamMemberResponse{
			User: userRefResponse{ID: m.UserID, Name: m.Name, Email: m.Email, Role: m.Role, Bio: m.Bio},
			Role: m.Role,
		}
	}
	return resp
}

func toTeamResponses(teams []*ports.TeamDetail) []teamResponse {
	out := make([]teamResponse, len(teams))
	for i, t := range teams {
		out[i] = toTeamResponse(t)
	}
	return out
}
