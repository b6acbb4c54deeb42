// Package auth contains the authentication and authorization core of the
// platform: user and course models, password hashing, the session token
// service, the session cookie contract, the request gates, and the account
// lifecycle handlers.
package auth

import "time"

// Role is a closed enumeration of recognized user roles. Using a dedicated
// type instead of free-form strings eliminates typos and lets checks match
// exhaustively.
type Role string

const (
	// RoleSubscriber is the default role given to every registered user.
	RoleSubscriber Role = "Subscriber"
	// RoleInstructor marks users allowed through the instructor gate.
	RoleInstructor Role = "Instructor"
	// RoleAdmin is a superset role kept for administrative tooling.
	RoleAdmin Role = "Admin"
)

// ParseRole validates a stored role string against the closed enumeration.
// Unknown values are reported so callers can decide whether to drop or fail.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSubscriber, RoleInstructor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User represents a user record as stored in the database and used by the
// business logic. The hashed password is excluded from any outward-facing
// representation via the json:"-" tag; handlers additionally blank it before
// returning a user payload.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"`
	Roles          []Role    `json:"role"`
	Bio            string    `json:"bio,omitempty"`
	Picture        string    `json:"picture,omitempty"`
	// CourseIDs is the set of courses the user is enrolled in. Order is
	// irrelevant; only membership matters.
	CourseIDs []int64   `json:"courses"`
	CreatedAt time.Time `json:"created_at"`
}

// HasRole reports whether the user's role set contains the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// EnrolledIn reports whether the given course id is a member of the user's
// enrollment set.
func (u *User) EnrolledIn(courseID int64) bool {
	for _, id := range u.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// Course is the minimal course identity this core needs: the slug used in
// URLs and the internal id referenced by enrollment sets.
type Course struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}
