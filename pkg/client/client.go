// Package client is a typed HTTP client for the taskboard API. It carries an
// explicit Session and attaches its token to every request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// FieldError names one rejected field of a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return fmt.Sprintf("api: %d %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSession starts the client signed in.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the held session, or nil when signed out.
func (c *Client) Session() *Session {
	return c.session
}

// --- Auth ---

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	var resp struct {
		Message string `json:"message"`
		User    User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sign_up", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// SignIn stores the returned token as the client's session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, *User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token  string `json:"token"`
		Tokken string `json:"tokken"`
		User   User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sign_in", body, &resp); err != nil {
		return nil, nil, err
	}

	token := resp.Token
	if token == "" {
		token = resp.Tokken
	}
	s, err := NewSession(token)
	if err != nil {
		return nil, nil, err
	}
	c.session = s
	return s, &resp.User, nil
}

// SignOut drops the session locally. There is no server-side logout.
func (c *Client) SignOut() {
	c.session.Clear()
	c.session = nil
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/getalluser", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/getuserbyid/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch Patch) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/updateuserbyid/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, "/api/deleteuserbyid/"+url.PathEscape(id), nil)
}

// --- Projects ---

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/api/getproject", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, p NewProject) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/api/createproject", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/api/getprojectbyid/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch Patch) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPatch, "/api/updateprojectbyid/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, "/api/deleteprojectbyid/"+url.PathEscape(id), nil)
}

func (c *Client) AddProjectMember(ctx context.Context, projectID, userID string) (*Project, error) {
	var out Project
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(projectID)+"/team", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveProjectMember(ctx context.Context, projectID, userID string) (*Project, error) {
	var out Project
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, http.MethodDelete, "/api/"+url.PathEscape(projectID)+"/team", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Tasks ---

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	if err := c.do(ctx, http.MethodGet, "/api/getalltask", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, t NewTask) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, "/api/createtask", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*TaskDetail, error) {
	var out TaskDetail
	if err := c.do(ctx, http.MethodGet, "/api/gettaskbyid/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch Patch) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, "/api/updatetaskbyid/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, "/api/deletetaskbyid/"+url.PathEscape(id), nil)
}

// --- Teams ---

func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var out []Team
	if err := c.do(ctx, http.MethodGet, "/api/getallteam", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTeam(ctx context.Context, name string) (*Team, error) {
	var out Team
	if err := c.do(ctx, http.MethodPost, "/api/createteam", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTeam(ctx context.Context, id string) (*Team, error) {
	var out Team
	if err := c.do(ctx, http.MethodGet, "/api/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTeam(ctx context.Context, id string, patch Patch) (*Team, error) {
	var out Team
	if err := c.do(ctx, http.MethodPatch, "/api/updateteambyid/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTeam(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, "/api/"+url.PathEscape(id), nil)
}

func (c *Client) AddTeamMember(ctx context.Context, teamID, userID string) (*Team, error) {
	var out Team
	body := map[string]string{"teamId": teamID, "userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/addmember", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveTeamMember(ctx context.Context, teamID, userID string) (*Team, error) {
	var out Team
	body := map[string]string{"teamId": teamID, "memberId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/removemember", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- transport ---

func (c *Client) delete(ctx context.Context, path string, body any) (string, error) {
	var out deleteResponse
	if err := c.do(ctx, http.MethodDelete, path, body, &out); err != nil {
		return "", err
	}
	return out.Data.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var envelope struct {
		Error   string       `json:"error"`
		Message string       `json:"message"`
		Fields  []FieldError `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		switch {
		case envelope.Error != "":
			apiErr.Message = envelope.Error
		case envelope.Message != "":
			apiErr.Message = envelope.Message
		}
		apiErr.Fields = envelope.Fields
	}
	return apiErr
}
