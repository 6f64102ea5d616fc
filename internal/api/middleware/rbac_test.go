package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

func enforce(t *testing.T, req Requirement, principal *domain.Principal) (bool, error) {
	t.Helper()
	e := echo.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	if principal != nil {
		SetPrincipal(c, principal)
	}

	called := false
	handler := Enforce(req)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func adminPrincipal() *domain.Principal {
	return domain.NewPrincipal(&domain.User{ID: "1", Username: "root", Role: domain.RoleAdmin})
}

func userPrincipal() *domain.Principal {
	return domain.NewPrincipal(&domain.User{ID: "2", Username: "joe", Role: domain.RoleUser})
}

func TestEnforce_PublicAllowsAnonymous(t *testing.T) {
	called, err := enforce(t, Public, nil)
	if err != nil || !called {
		t.Fatalf("public route must allow anonymous callers: err=%v called=%v", err, called)
	}
}

func TestEnforce_AuthenticatedRejectsAnonymous(t *testing.T) {
	called, err := enforce(t, Authenticated, nil)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if called {
		t.Fatalf("handler must not run for anonymous caller")
	}
}

func TestEnforce_AuthenticatedAllowsAnyPrincipal(t *testing.T) {
	called, err := enforce(t, Authenticated, userPrincipal())
	if err != nil || !called {
		t.Fatalf("any principal should pass: err=%v called=%v", err, called)
	}
}

func TestEnforce_RoleMatrix(t *testing.T) {
	// No principal → unauthenticated.
	called, err := enforce(t, Role(domain.RoleAdmin), nil)
	if !errors.Is(err, domain.ErrUnauthenticated) || called {
		t.Fatalf("anonymous caller: expected ErrUnauthenticated, got %v (called=%v)", err, called)
	}

	// Wrong role → forbidden.
	called, err = enforce(t, Role(domain.RoleAdmin), userPrincipal())
	if !errors.Is(err, domain.ErrForbidden) || called {
		t.Fatalf("ROLE_USER caller: expected ErrForbidden, got %v (called=%v)", err, called)
	}

	// Matching role → allowed.
	called, err = enforce(t, Role(domain.RoleAdmin), adminPrincipal())
	if err != nil || !called {
		t.Fatalf("ROLE_ADMIN caller should pass: err=%v called=%v", err, called)
	}
}
