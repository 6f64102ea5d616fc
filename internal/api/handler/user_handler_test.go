package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/peopledesk/identity-api/internal/api/middleware"
	"github.com/peopledesk/identity-api/internal/core/domain"
)

type stubUserService struct {
	importFn   func(ctx context.Context, drafts []domain.UserDraft) (domain.BatchImportResult, error)
	getFn      func(ctx context.Context, username string) (*domain.User, error)
	generateFn func(count int) []domain.UserDraft
}

func (s *stubUserService) ImportUsers(ctx context.Context, drafts []domain.UserDraft) (domain.BatchImportResult, error) {
	return s.importFn(ctx, drafts)
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}

func (s *stubUserService) Generate(count int) []domain.UserDraft {
	return s.generateFn(count)
}

func TestUserHandler_BatchImport(t *testing.T) {
	e := echo.New()
	var received []domain.UserDraft
	stub := &stubUserService{
		importFn: func(_ context.Context, drafts []domain.UserDraft) (domain.BatchImportResult, error) {
			received = drafts
			return domain.BatchImportResult{Total: 2, Success: 1, Failure: 1}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `[
		{"first_name":"Alice","last_name":"Alvarez","birth_date":"1990-04-12","city":"Madrid","country":"ES","avatar":"https://a.example.com/a.png","company":"Acme","job_position":"Engineer","mobile":"+34 600","username":"alice","email":"alice@x.com","password":"abcdef","role":"USER"},
		{"first_name":"Bob","last_name":"Becker","birth_date":"1985-01-30","city":"Berlin","country":"DE","avatar":"https://a.example.com/b.png","company":"Globex","job_position":"Analyst","mobile":"+49 170","username":"bob","email":"bob@x.com","password":"abcdef","role":"ADMIN"}
	]`
	req := httptest.NewRequest(http.MethodPost, "/api/users/batch", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.BatchImport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(received) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(received))
	}
	wantDate := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	if !received[0].BirthDate.Equal(wantDate) {
		t.Fatalf("birth date not parsed: %v", received[0].BirthDate)
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total_records"] != 2 || resp["success_count"] != 1 || resp["failure_count"] != 1 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}

func TestUserHandler_BatchImport_StoreFailure(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		importFn: func(_ context.Context, _ []domain.UserDraft) (domain.BatchImportResult, error) {
			return domain.BatchImportResult{}, domain.ErrStoreFailure
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/users/batch", strings.NewReader(`[]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.BatchImport(c); !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure to propagate, got %v", err)
	}
}

func TestUserHandler_Generate(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		generateFn: func(count int) []domain.UserDraft {
			drafts := make([]domain.UserDraft, count)
			for i := range drafts {
				drafts[i] = domain.UserDraft{Username: "u", BirthDate: time.Now()}
			}
			return drafts
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users/generate?count=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Generate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "users.json") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}

	var payload []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload) != 3 {
		t.Fatalf("expected 3 users, got %d", len(payload))
	}
}

func TestUserHandler_Generate_InvalidCount(t *testing.T) {
	e := echo.New()
	handler := NewUserHandler(&stubUserService{})

	for _, query := range []string{"", "count=0", "count=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/generate?"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Generate(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400 HTTPError, got %v", query, err)
		}
	}
}

func TestUserHandler_Me(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				t.Fatalf("unexpected username: %s", username)
			}
			return &domain.User{ID: "1", Username: "alice", Email: "alice@x.com", Role: domain.RoleUser}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetPrincipal(c, domain.NewPrincipal(&domain.User{ID: "1", Username: "alice", Role: domain.RoleUser}))

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash must not be exposed")
	}
}

func TestUserHandler_Me_Anonymous(t *testing.T) {
	e := echo.New()
	handler := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserHandler_GetByUsername_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	if err := handler.GetByUsername(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
