package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peopledesk/identity-api/internal/core/domain"
	"github.com/peopledesk/identity-api/internal/core/ports"
	"github.com/peopledesk/identity-api/internal/core/service"
)

const principalKey = "principal"

// Authenticate resolves a bearer token, if one is present, into a Principal
// attached to the request context. Resolution never rejects: a missing header,
// malformed or expired token, or a subject that no longer exists all leave the
// request anonymous. Rejecting anonymous callers is the access policy's job.
func Authenticate(tokens *service.TokenService, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return next(c)
			}

			user, err := repo.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				return next(c)
			}

			c.Set(principalKey, domain.NewPrincipal(user))
			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal resolved for this request, or nil when
// the request is anonymous.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// SetPrincipal attaches a principal to the context. Exposed for handler tests.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}
