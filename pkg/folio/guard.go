package folio

// Decision is the outcome of evaluating a navigation attempt.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin sends the user to the login route.
	RedirectLogin
	// RedirectHome sends an already logged-in user away from login to
	// the protected landing route.
	RedirectHome
)

// Route describes a navigable client-side route.
type Route struct {
	Name         string
	RequiresAuth bool
}

// Guard evaluates route changes against the session. It is advisory
// UX only: the session flag can be stale or forged, and the server's
// auth gate remains the actual enforcement point.
type Guard struct {
	session    *Session
	routes     map[string]Route
	loginRoute string
	homeRoute  string
}

// NewGuard constructs a Guard redirecting unauthenticated users to
// loginRoute and logged-in users away from it to homeRoute.
func NewGuard(session *Session, loginRoute, homeRoute string) *Guard {
	g := &Guard{
		session:    session,
		routes:     make(map[string]Route),
		loginRoute: loginRoute,
		homeRoute:  homeRoute,
	}
	g.Register(Route{Name: loginRoute})
	g.Register(Route{Name: homeRoute, RequiresAuth: true})
	return g
}

// Register adds or replaces a route in the guard's table.
func (g *Guard) Register(route Route) {
	g.routes[route.Name] = route
}

// Next evaluates a navigation to the named route. Unknown routes are
// treated as public.
func (g *Guard) Next(name string) Decision {
	authenticated := g.session.Authenticated()

	route := g.routes[name]
	if route.RequiresAuth && !authenticated {
		return RedirectLogin
	}
	if name == g.loginRoute && authenticated {
		return RedirectHome
	}
	return Allow
}
