// Package authz holds the pure authorization decisions over a session
// value. Handlers call these explicitly before touching the catalog or
// credential operations; there is no middleware chain to escape.
package authz

import "github.com/leopar/marketplace/internal/session"

type Decision int

const (
	Ok Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Ok:
		return "ok"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

func RequireAuthenticated(s session.Session) Decision {
	if s.Anonymous() {
		return Unauthenticated
	}
	return Ok
}

// RequireAdmin checks only the privilege snapshot. An anonymous session
// gets Forbidden, not Unauthenticated: the admin gate never falls back to
// an authentication check.
func RequireAdmin(s session.Session) Decision {
	if !s.IsAdmin {
		return Forbidden
	}
	return Ok
}
