// Package gate decides whether a session may enter a protected part of the app.
package gate

import (
	"strings"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/session"
)

// Entry points the gate redirects to.
const (
	LoginPath        = "/login"
	RegisterPath     = "/register"
	UnauthorizedPath = "/unauthorized"
)

// State is the outcome of an access decision.
type State uint8

const (
	// Unresolved: session restoration has not finished; show a neutral loading state.
	Unresolved State = iota
	// Authorized: authenticated and the role is allowed; render the subtree.
	Authorized
	// Forbidden: authenticated but the role is not allowed.
	Forbidden
	// Unauthenticated: no valid session.
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "Unresolved"
	case Authorized:
		return "Authenticated+Authorized"
	case Forbidden:
		return "Authenticated+Forbidden"
	case Unauthenticated:
		return "Unauthenticated"
	default:
		return "Unknown"
	}
}

// Decision is what the host should do for a navigation.
type Decision struct {
	State State
	// Redirect is empty when the host should render (or keep loading).
	Redirect string
}

// Render reports whether the protected subtree may be shown.
func (d Decision) Render() bool {
	return d.State == Authorized
}

// Loading reports whether the host should show its neutral loading state.
func (d Decision) Loading() bool {
	return d.State == Unresolved
}

// Decide is a pure function of the session view and the roles allowed into
// the subtree. No roles means any authenticated user is allowed.
func Decide(view session.View, allowed ...models.Role) Decision {
	if !view.Resolved {
		return Decision{State: Unresolved}
	}
	if !view.Authenticated() {
		return Decision{State: Unauthenticated, Redirect: LoginPath}
	}
	if len(allowed) > 0 && !contains(allowed, view.Role()) {
		return Decision{State: Forbidden, Redirect: UnauthorizedPath}
	}
	return Decision{State: Authorized}
}

// Route protects every path under Prefix.
type Route struct {
	Prefix string
	Roles  []models.Role
}

// Table maps navigation paths to their access rules.
type Table struct {
	public []string
	routes []Route
}

// DefaultTable mirrors the dashboards of the hotel admin app.
func DefaultTable() *Table {
	return &Table{
		public: []string{"/", LoginPath, RegisterPath, UnauthorizedPath},
		routes: []Route{
			{Prefix: "/guest", Roles: []models.Role{models.RoleGuest}},
			{Prefix: "/manager", Roles: []models.Role{models.RoleHotelManager}},
			{Prefix: "/admin", Roles: []models.Role{models.RoleAdmin}},
		},
	}
}

// NewTable builds a table from explicit public paths and protected routes.
func NewTable(public []string, routes ...Route) *Table {
	return &Table{public: public, routes: routes}
}

// Check decides access for path. Public paths always render; paths matching
// no route are treated as requiring authentication only.
func (t *Table) Check(path string, view session.View) Decision {
	path = clean(path)
	for _, p := range t.public {
		if path == p {
			return Decision{State: Authorized}
		}
	}
	if route, ok := t.match(path); ok {
		return Decide(view, route.Roles...)
	}
	return Decide(view)
}

func (t *Table) match(path string) (Route, bool) {
	best, found := Route{}, false
	for _, r := range t.routes {
		prefix := clean(r.Prefix)
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			if !found || len(prefix) > len(best.Prefix) {
				best, found = Route{Prefix: prefix, Roles: r.Roles}, true
			}
		}
	}
	return best, found
}

// HomeFor returns the landing path for a freshly logged-in role.
func HomeFor(role models.Role) string {
	switch role {
	case models.RoleGuest:
		return "/guest"
	case models.RoleHotelManager:
		return "/manager"
	case models.RoleAdmin:
		return "/admin"
	default:
		return UnauthorizedPath
	}
}

func clean(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func contains(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
