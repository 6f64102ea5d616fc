package domain

// AuthorityPrefix is prepended to the role name to form the single granted
// authority carried by a Principal (e.g. ROLE_ADMIN).
const AuthorityPrefix = "ROLE_"

// Principal is the request-scoped view of "who is making this call", built
// fresh per request from a verified token and the stored identity. It is never
// persisted and never shared across requests.
type Principal struct {
	UserID       string
	Username     string
	Email        string
	PasswordHash string
	Authority    string
}

// NewPrincipal derives a Principal from a resolved identity.
func NewPrincipal(u *User) *Principal {
	return &Principal{
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Authority:    AuthorityPrefix + u.Role,
	}
}

// HasRole reports whether the principal's authority grants the given role.
func (p *Principal) HasRole(role string) bool {
	return p.Authority == AuthorityPrefix+role
}
