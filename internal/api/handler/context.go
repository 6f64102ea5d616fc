package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/peopledesk/identity-api/internal/api/middleware"
	"github.com/peopledesk/identity-api/internal/core/domain"
)

// currentPrincipal returns the principal resolved for this request. Handlers
// behind an Authenticated or Role requirement should never see nil, but the
// check stays as a fast-fail in case a route is wired without its enforcer.
func currentPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}
