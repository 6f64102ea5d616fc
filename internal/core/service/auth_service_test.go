package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *TokenService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	tokens := NewTokenService("secret", 5)
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens, repo
}

func TestAuthService_Login_ByUsername(t *testing.T) {
	svc, tokens, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "alice@example.com", "s3cret")

	token, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	svc, tokens, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "alice@example.com", "s3cret")

	token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject should be the username, got %s", claims.Subject)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "alice@example.com", "s3cret")

	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown handle and wrong password must be indistinguishable.
func TestAuthService_Login_UnknownHandle(t *testing.T) {
	svc, _, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "alice@example.com", "s3cret")

	unknownErr := func() error {
		_, err := svc.Login(context.Background(), "ghost", "s3cret")
		return err
	}()
	wrongErr := func() error {
		_, err := svc.Login(context.Background(), "alice", "wrong")
		return err
	}()

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown handle, got %v", unknownErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_EmptyInputs(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty handle, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}
