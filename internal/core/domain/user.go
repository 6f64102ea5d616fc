package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrValidation         = errors.New("validation failed")
	ErrStoreFailure       = errors.New("store commit failed")
)

// User is the durable identity record. Username and email are each globally
// unique; PasswordHash never holds plaintext once the record is committed.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	BirthDate    time.Time `json:"birth_date"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Avatar       string    `json:"avatar"`
	Company      string    `json:"company"`
	JobPosition  string    `json:"job_position"`
	Mobile       string    `json:"mobile"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserDraft is an import candidate: the same field set as User minus the
// store-assigned ID, carrying the raw password instead of a hash.
type UserDraft struct {
	FirstName   string    `validate:"required"`
	LastName    string    `validate:"required"`
	BirthDate   time.Time `validate:"required"`
	City        string    `validate:"required"`
	Country     string    `validate:"required,len=2,alpha"`
	Avatar      string    `validate:"required"`
	Company     string    `validate:"required"`
	JobPosition string    `validate:"required"`
	Mobile      string    `validate:"required"`
	Username    string    `validate:"required"`
	Email       string    `validate:"required,email"`
	Password    string    `validate:"required"`
	Role        string    `validate:"required,oneof=ADMIN USER"`
}

// BatchImportResult summarizes one bulk import call. Per-record validation
// failures land in Failure; they never abort the batch.
type BatchImportResult struct {
	Total   int `json:"total_records"`
	Success int `json:"success_count"`
	Failure int `json:"failure_count"`
}
