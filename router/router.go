package router

import (
	"net/url"
	"path"
	"strings"

	"github.com/MrEthical07/pmAuth/guard"
	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

const (
	PathLogin      = guard.LoginPath
	PathRegister   = "/register"
	PathDashboard  = "/dashboard"
	PathRoot       = "/"
	PathAdminUsers = "/admin/users"
)

// maxRedirects bounds Follow.
const maxRedirects = 4

// View names what a caller should display.
type View string

const (
	ViewLogin      View = "login"
	ViewRegister   View = "register"
	ViewDashboard  View = "dashboard"
	ViewAdminUsers View = "admin-users"
)

// Action is the kind of navigation result.
type Action uint8

const (
	// ActionPending means the session is still loading.
	ActionPending Action = iota
	// ActionRender means View may be shown.
	ActionRender
	// ActionDenied means the user stays put and is told access is denied.
	ActionDenied
	// ActionRedirect means navigate to RedirectTo.
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionPending:
		return "pending"
	case ActionRender:
		return "render"
	case ActionDenied:
		return "access-denied"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Route is one entry of the table.
type Route struct {
	Path  string
	View  View
	Title string
	// Gates are evaluated outermost first. A public route has none.
	Gates []guard.Requirement
	// RedirectTo makes the route forward once its gates admit the session.
	RedirectTo string
	// Menu places the route in the navigation menu.
	Menu bool
}

// Public reports whether the route is reachable without a session.
func (r Route) Public() bool {
	return len(r.Gates) == 0
}

// Result is the outcome of one navigation.
type Result struct {
	Path       string
	Query      url.Values
	Action     Action
	View       View
	RedirectTo string
	Replace    bool
	// Found is false when Path matched no route.
	Found bool
}

// Table is an ordered set of routes.
type Table struct {
	routes   []Route
	byPath   map[string]int
	fallback string
}

// New builds a table. Unknown paths redirect to fallback.
func New(fallback string, routes ...Route) *Table {
	t := &Table{
		routes:   make([]Route, 0, len(routes)),
		byPath:   make(map[string]int, len(routes)),
		fallback: fallback,
	}
	for _, r := range routes {
		t.byPath[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}
	return t
}

// Default returns the client's route table.
func Default() *Table {
	authed := guard.Authenticated()
	admin := guard.Roles(permission.RoleAdmin)

	return New(PathLogin,
		Route{Path: PathLogin, View: ViewLogin, Title: "Login"},
		Route{Path: PathRegister, View: ViewRegister, Title: "Register"},
		Route{Path: PathDashboard, View: ViewDashboard, Title: "Projects", Gates: []guard.Requirement{authed}, Menu: true},
		Route{Path: PathRoot, Gates: []guard.Requirement{authed}, RedirectTo: PathDashboard},
		Route{Path: PathAdminUsers, View: ViewAdminUsers, Title: "User Management", Gates: []guard.Requirement{authed, admin}, Menu: true},
	)
}

// Routes returns the table in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the route registered for p after normalization.
func (t *Table) Lookup(p string) (Route, bool) {
	i, ok := t.byPath[normalize(p)]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Navigate evaluates one hop to raw, which may carry a query string.
func (t *Table) Navigate(sess session.Session, raw string) Result {
	p, query := split(raw)
	res := Result{Path: p, Query: query}

	i, ok := t.byPath[p]
	if !ok {
		res.Action = ActionRedirect
		res.RedirectTo = t.fallback
		res.Replace = true
		return res
	}
	route := t.routes[i]
	res.Found = true

	if !route.Public() {
		out := guard.Chain(sess, route.Gates...)
		switch out.Decision {
		case guard.Pending:
			res.Action = ActionPending
			return res
		case guard.RedirectLogin:
			res.Action = ActionRedirect
			res.RedirectTo = out.RedirectTo
			res.Replace = out.Replace
			return res
		case guard.Denied:
			res.Action = ActionDenied
			return res
		}
	}

	if route.RedirectTo != "" {
		res.Action = ActionRedirect
		res.RedirectTo = route.RedirectTo
		res.Replace = true
		return res
	}
	res.Action = ActionRender
	res.View = route.View
	return res
}

// Follow navigates to raw and follows redirects until a non-redirect result.
func (t *Table) Follow(sess session.Session, raw string) Result {
	res := t.Navigate(sess, raw)
	for hops := 0; res.Action == ActionRedirect && hops < maxRedirects; hops++ {
		res = t.Navigate(sess, res.RedirectTo)
	}
	return res
}

// MenuItem is one reachable navigation entry.
type MenuItem struct {
	Title string
	Path  string
}

// Menu lists the menu routes the session may currently reach.
func (t *Table) Menu(sess session.Session) []MenuItem {
	var items []MenuItem
	for _, r := range t.routes {
		if !r.Menu {
			continue
		}
		if guard.Chain(sess, r.Gates...).Decision != guard.Render {
			continue
		}
		items = append(items, MenuItem{Title: r.Title, Path: r.Path})
	}
	return items
}

// RegisterPath returns the invite registration entry for token.
func RegisterPath(token string) string {
	if token == "" {
		return PathRegister
	}
	return PathRegister + "?" + url.Values{"token": {token}}.Encode()
}

func split(raw string) (string, url.Values) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return normalize(raw), url.Values{}
	}
	return normalize(u.Path), u.Query()
}

func normalize(p string) string {
	if p == "" {
		return PathRoot
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
