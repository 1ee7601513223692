package tui

import (
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

// RouteKind classifies a page by who may see it.
type RouteKind int

const (
	// RequireAuth pages need a signed-in account.
	RequireAuth RouteKind = iota
	// GuestOnly pages (login, register) are hidden from signed-in accounts.
	GuestOnly
	// RequireAdmin pages need a signed-in admin account.
	RequireAdmin
)

// GuardDecision is the outcome of checking an auth state against a route
// kind.
type GuardDecision int

const (
	// Loading renders the fallback spinner until the state settles.
	Loading GuardDecision = iota
	// RedirectLogin sends an unauthenticated visitor to the login page.
	RedirectLogin
	// RedirectHome sends the visitor to the default landing page.
	RedirectHome
	// Suspended renders the terminal "account suspended" view.
	Suspended
	// Allow renders the page.
	Allow
)

// Decide is the route guard. It is a pure function of the route kind and the
// current auth state, so every page applies identical access rules.
//
// A suspended account wins over everything except the loading state: once a
// signed-in account turns inactive the dashboard shows the suspended view
// regardless of where the user navigates.
func Decide(kind RouteKind, state service.AuthState) GuardDecision {
	if state.IsLoading {
		return Loading
	}

	if state.IsAuthenticated && state.User != nil && !state.User.IsActive {
		return Suspended
	}

	switch kind {
	case GuestOnly:
		if state.IsAuthenticated {
			return RedirectHome
		}
	case RequireAuth:
		if !state.IsAuthenticated {
			return RedirectLogin
		}
	case RequireAdmin:
		if !state.IsAuthenticated {
			return RedirectLogin
		}
		if state.User == nil || state.User.Role != models.RoleAdmin {
			return RedirectHome
		}
	}

	return Allow
}
