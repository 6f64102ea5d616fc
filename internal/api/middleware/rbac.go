package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

type requirementKind int

const (
	kindPublic requirementKind = iota
	kindAuthenticated
	kindRole
)

// Requirement declares what a route demands from the caller: nothing, any
// resolved principal, or a specific role.
type Requirement struct {
	kind requirementKind
	role string
}

var (
	Public        = Requirement{kind: kindPublic}
	Authenticated = Requirement{kind: kindAuthenticated}
)

// Role requires a principal holding ROLE_<name>.
func Role(name string) Requirement {
	return Requirement{kind: kindRole, role: name}
}

// Enforce returns the middleware implementing the requirement. Anonymous
// callers on protected routes fail with ErrUnauthenticated; principals missing
// the required role fail with ErrForbidden. Both surface through the central
// error handler.
func Enforce(req Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if req.kind == kindPublic {
				return next(c)
			}

			p := PrincipalFrom(c)
			if p == nil {
				return domain.ErrUnauthenticated
			}
			if req.kind == kindRole && !p.HasRole(req.role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
