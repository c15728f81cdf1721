// Package shell mirrors the web app's route table and decides, per
// navigation, whether a page may be shown for the current session.
//
// The decision is advisory. The API enforces access on its own.
package shell

import (
	"path"
	"strings"
	"time"

	"github.com/taskboard/taskboard-api/pkg/client"
)

// Access is the guard a route sits behind.
type Access int

const (
	// Public pages render for everyone.
	Public Access = iota
	// PublicOnly pages are for signed-out visitors; a session goes to the dashboard.
	PublicOnly
	// Protected pages need a session that has not expired.
	Protected
	// Admin pages need a live session with the admin role.
	Admin
)

const (
	PathHome      = "/home"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// DefaultRoutes is the web app's page table. The sign-in and register pages
// stay reachable with a session, as they are in the web app.
var DefaultRoutes = map[string]Access{
	"/":               Public,
	"/home":           Public,
	"/subscription":   Public,
	"/services":       Public,
	"/privacy":        Public,
	"/terms":          Public,
	"/cookies":        Public,
	"/register":       Public,
	"/login":          Public,
	"/logout":         Protected,
	"/feedback":       Protected,
	"/paymentmethods": Protected,
	"/task":           Protected,
	"/team":           Protected,
	"/report":         Protected,
	"/project":        Protected,
	"/dashboard":      Protected,
	"/profile":        Protected,
	"/addproject":     Protected,
	"/addtask":        Admin,
	"/adminpanel":     Admin,
}

// Decision is the outcome of one navigation. Redirect is set only when
// Allowed is false.
type Decision struct {
	Allowed  bool
	Redirect string
}

type Gate struct {
	routes map[string]Access
}

// NewGate uses DefaultRoutes when routes is nil.
func NewGate(routes map[string]Access) *Gate {
	if routes == nil {
		routes = DefaultRoutes
	}
	return &Gate{routes: routes}
}

// Resolve decides whether p may be shown to the holder of s at now.
// Unknown paths redirect home.
func (g *Gate) Resolve(p string, s *client.Session, now time.Time) Decision {
	access, ok := g.routes[normalize(p)]
	if !ok {
		return redirect(PathHome)
	}

	live := s.Valid(now)
	switch access {
	case PublicOnly:
		if live {
			return redirect(PathDashboard)
		}
	case Protected:
		if !live {
			return redirect(PathLogin)
		}
	case Admin:
		if !live {
			return redirect(PathLogin)
		}
		if !s.IsAdmin() {
			return redirect(PathDashboard)
		}
	}
	return Decision{Allowed: true}
}

func redirect(to string) Decision {
	return Decision{Redirect: to}
}

// normalize drops the query, the fragment and any trailing slash.
func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
