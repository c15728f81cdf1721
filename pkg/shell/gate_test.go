package shell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskboard/taskboard-api/pkg/client"
)

func TestGate_Resolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &client.Session{Token: "t", UserID: "u1", Role: "user", ExpiresAt: now.Add(time.Hour)}
	admin := &client.Session{Token: "t", UserID: "a1", Role: "admin", ExpiresAt: now.Add(time.Hour)}
	expired := &client.Session{Token: "t", UserID: "u1", Role: "admin", ExpiresAt: now}
	upper := &client.Session{Token: "t", UserID: "u2", Role: "Admin", ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name    string
		path    string
		session *client.Session
		want    Decision
	}{
		{"public without session", "/services", nil, Decision{Allowed: true}},
		{"public with session", "/home", user, Decision{Allowed: true}},
		{"login signed out", "/login", nil, Decision{Allowed: true}},
		{"login signed in", "/login", user, Decision{Allowed: true}},
		{"register signed in", "/register", admin, Decision{Allowed: true}},
		{"login with expired token", "/login", expired, Decision{Allowed: true}},
		{"protected signed out", "/project", nil, Decision{Redirect: PathLogin}},
		{"protected signed in", "/project", user, Decision{Allowed: true}},
		{"protected at expiry", "/task", expired, Decision{Redirect: PathLogin}},
		{"admin as user", "/adminpanel", user, Decision{Redirect: PathDashboard}},
		{"admin role is case-sensitive", "/addtask", upper, Decision{Redirect: PathDashboard}},
		{"admin as admin", "/adminpanel", admin, Decision{Allowed: true}},
		{"admin expired", "/adminpanel", expired, Decision{Redirect: PathLogin}},
		{"unknown path", "/nowhere", admin, Decision{Redirect: PathHome}},
		{"trailing slash and query", "/dashboard/?tab=1", user, Decision{Allowed: true}},
	}

	gate := NewGate(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Resolve(tt.path, tt.session, now))
		})
	}
}

func TestGate_ClearedSessionIsSignedOut(t *testing.T) {
	now := time.Now()
	s := &client.Session{Token: "t", Role: "admin", ExpiresAt: now.Add(time.Hour)}
	s.Clear()

	assert.Equal(t, Decision{Redirect: PathLogin}, NewGate(nil).Resolve("/profile", s, now))
}

func TestGate_CustomRoutes(t *testing.T) {
	now := time.Now()
	user := &client.Session{Token: "t", Role: "user", ExpiresAt: now.Add(time.Hour)}
	gate := NewGate(map[string]Access{"/reports": Admin, "/welcome": PublicOnly})

	assert.Equal(t, Decision{Redirect: PathHome}, gate.Resolve("/home", nil, now))
	assert.Equal(t, Decision{Redirect: PathLogin}, gate.Resolve("/reports", nil, now))
	assert.Equal(t, Decision{Allowed: true}, gate.Resolve("/welcome", nil, now))
	assert.Equal(t, Decision{Redirect: PathDashboard}, gate.Resolve("/welcome", user, now))
}
