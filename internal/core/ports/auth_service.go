package ports

import "context"

type AuthService interface {
	// Login verifies a handle/password pair and returns a signed bearer token.
	// Unknown handle and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, handle, password string) (string, error)
}
