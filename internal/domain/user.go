package domain

import (
	"context"
	"time"
)

// User represents a registered user. Username is the user's email address.
// swagger:model User
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(firstName, lastName, username, passwordHash string) *User {
	return &User{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: passwordHash,
	}
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}
}

// UserSummary is the public projection of a user embedded in other resources.
// swagger:model UserSummary
type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// RegisterInput is the payload accepted when signing up.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"min=3,max=100"`
	LastName  string `json:"last_name" validate:"min=3,max=100"`
	Username  string `json:"username" validate:"required,max=255,email"`
	Password  string `json:"password" validate:"min=3,max=72"`
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	// Create returns ErrDuplicateEmail when the username is taken.
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// UserService defines sign up and authentication.
type UserService interface {
	Register(ctx context.Context, in *RegisterInput) (*User, error)
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
