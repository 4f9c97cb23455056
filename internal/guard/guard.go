// Package guard decides whether a protected view may be shown to the caller.
package guard

import (
	"github.com/zanta/lfp-client/internal/core/domain"
	"github.com/zanta/lfp-client/internal/session"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Render allows the protected content.
	Render Decision = iota
	// RedirectSignIn sends an unauthenticated caller to the sign-in page.
	RedirectSignIn
	// RedirectHome sends an authenticated non-admin away from an admin page.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectSignIn:
		return "redirect-signin"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Check evaluates the session against the route's requirement. It holds no
// state of its own; every call reads the store fresh.
//
//	not authenticated            → RedirectSignIn
//	authenticated, no role req.  → Render
//	admin required, role ADMIN   → Render
//	admin required, other role   → RedirectHome
func Check(store session.Store, requireAdmin bool) Decision {
	if !store.Authenticated() {
		return RedirectSignIn
	}
	if !requireAdmin {
		return Render
	}
	if user, ok := store.User(); ok && user.Role == domain.RoleAdmin {
		return Render
	}
	return RedirectHome
}
