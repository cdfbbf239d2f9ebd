package store

import (
	"context"
	"errors"

	"github.com/fernwood/authd/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// CreateUserParams carries the fields for a new account. Password is the
// plaintext: the store hashes it before persisting so a hash can never be
// written alongside an unhashed copy.
type CreateUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role // defaults to member when empty
}

// UpdateUserParams are the mutable fields of an account. Nil means "leave
// unchanged". The password hash is (re)computed if and only if a non-empty
// plaintext Password is supplied in this write.
type UpdateUserParams struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *domain.Role
	Active    *bool
}

// ListFilter narrows ListUsers and CountUsers. Nil fields match everything.
type ListFilter struct {
	Active *bool
	Role   *domain.Role
}

// Store is the data access boundary for accounts. Concrete drivers
// (sqlite today) implement it; email uniqueness is a store-level
// constraint because the authenticator only does a read-then-write.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// FindByEmail returns the user keyed by the exact email string.
	FindByEmail(ctx context.Context, email string) (domain.User, error)

	// FindByID returns a user by id.
	FindByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a new account. The plaintext password is hashed
	// here; role defaults to member and the account starts active.
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, p CreateUserParams) (domain.User, error)

	// UpdateUser applies the non-nil fields and returns the fresh record.
	UpdateUser(ctx context.Context, id string, p UpdateUserParams) (domain.User, error)

	// DeleteUser removes the account; reports whether a row was deleted.
	DeleteUser(ctx context.Context, id string) (bool, error)

	// CountUsers counts accounts matching the filter.
	CountUsers(ctx context.Context, f ListFilter) (int64, error)

	// ListUsers returns accounts matching the filter, oldest first.
	ListUsers(ctx context.Context, f ListFilter) ([]domain.User, error)
}
