// Package navigation decides where the user should be sent based on the
// current session record. It reads the session store and never mutates it.
package navigation

import (
	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/session"
)

// Route is a navigable location
type Route string

const (
	RouteHome      Route = "/"
	RouteDashboard Route = "/dashboard"
	RouteSignIn    Route = "/auth/sign-in"
)

// Redirect is a navigation triggered by a session transition
type Redirect struct {
	To     Route  `json:"to"`
	Reason string `json:"reason"`
}

// Redirect reasons reported by Watch
const (
	ReasonLogin  = "login"
	ReasonLogout = "logout"
)

// Link is an entry in the header
type Link struct {
	Label string `json:"label"`
	Route Route  `json:"route,omitempty"`
	// Action names a command to run instead of navigating
	Action string `json:"action,omitempty"`
}

// Gate computes redirect targets from the session store
type Gate struct {
	store *session.Store
}

// NewGate creates a gate over the given store
func NewGate(store *session.Store) *Gate {
	return &Gate{store: store}
}

// AfterLogin returns where to go after a successful login or registration
func (g *Gate) AfterLogin() Route {
	return RouteHome
}

// AfterLogout returns where to go after a successful logout
func (g *Gate) AfterLogout() Route {
	return RouteHome
}

// GetStarted returns the target of the "Get Started" action
func (g *Gate) GetStarted() Route {
	if g.store.Current().IsAuthenticated() {
		return RouteDashboard
	}
	return RouteSignIn
}

// Resolve returns the route the user actually lands on when asking for route.
// The dashboard requires a session; the sign-in page is pointless with one.
func (g *Gate) Resolve(route Route) Route {
	authenticated := g.store.Current().IsAuthenticated()

	switch route {
	case RouteDashboard:
		if !authenticated {
			return RouteSignIn
		}
	case RouteSignIn:
		if authenticated {
			return RouteHome
		}
	}
	return route
}

// Header returns the header links for the current session
func (g *Gate) Header() []Link {
	if g.store.Current().IsAuthenticated() {
		return []Link{
			{Label: "Dashboard", Route: RouteDashboard},
			{Label: "Logout", Action: "logout"},
		}
	}
	return []Link{{Label: "Get Started", Route: g.GetStarted()}}
}

// Watch reports a redirect whenever the session flips between anonymous and
// authenticated. Replacements that keep the same user are ignored.
func (g *Gate) Watch(fn func(Redirect)) (unsubscribe func()) {
	return g.store.Subscribe(func(prev, next model.SessionRecord) {
		if redirect, ok := g.redirectFor(prev, next); ok {
			fn(redirect)
		}
	})
}

func (g *Gate) redirectFor(prev, next model.SessionRecord) (Redirect, bool) {
	switch {
	case next.IsAuthenticated() && prev.UserID() != next.UserID():
		return Redirect{To: g.AfterLogin(), Reason: ReasonLogin}, true
	case prev.IsAuthenticated() && !next.IsAuthenticated():
		return Redirect{To: g.AfterLogout(), Reason: ReasonLogout}, true
	default:
		return Redirect{}, false
	}
}
