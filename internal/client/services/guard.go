package services

import "github.com/dmitrijs2005/campusevents/internal/client/models"

// Decision is the outcome of a route guard check.
type Decision int

const (
	// DecisionPending means the session is still being restored.
	DecisionPending Decision = iota
	// DecisionLogin means the caller must log in first.
	DecisionLogin
	// DecisionForbidden means the caller is logged in with an insufficient role.
	DecisionForbidden
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionLogin:
		return "login"
	case DecisionForbidden:
		return "forbidden"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// SessionView is the read-only session state a guard inspects.
type SessionView interface {
	Loading() bool
	IsAuthenticated() bool
	Role() models.Role
}

// Authorize decides whether the session may reach something requiring the
// role required. An empty required role only asks for authentication; ADMIN
// passes every role check.
func Authorize(s SessionView, required models.Role) Decision {
	switch {
	case s.Loading():
		return DecisionPending
	case !s.IsAuthenticated():
		return DecisionLogin
	case !s.Role().Satisfies(required):
		return DecisionForbidden
	}
	return DecisionAllow
}
