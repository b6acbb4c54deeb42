package auth

import (
	"context"
	"errors"
)

// Store-level sentinel errors. The pgx-backed implementations translate
// driver errors into these so the auth core never depends on driver types.
var (
	// ErrNotFound is returned when a user or course id/key does not resolve.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a create collides with the unique
	// email key.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore is the credential store adapter: it wraps persistence of user
// records. The authentication and authorization gates re-resolve users
// through this interface on every request, so there is no in-process cache
// to go stale.
type UserStore interface {
	// CreateUser persists a new user and fills in its generated id and
	// creation time. A duplicate email yields ErrDuplicateEmail.
	CreateUser(ctx context.Context, user *User) error
	// GetUserByID resolves a user by id, excluding the password hash.
	GetUserByID(ctx context.Context, id int64) (*User, error)
	// GetUserByEmail resolves a user by the exact email key, including the
	// normally-hidden password hash for credential verification.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// UpdateProfile updates the mutable profile fields of the user's own
	// record. The id always comes from the identity context, never from a
	// request body.
	UpdateProfile(ctx context.Context, id int64, name, bio, picture string) error
}

// CourseStore resolves course identity for the enrollment gate.
type CourseStore interface {
	// GetCourseBySlug resolves a course by its unique human-readable slug.
	GetCourseBySlug(ctx context.Context, slug string) (*Course, error)
}
