// Package users encapsulates user profile management: the current-user read,
// profile updates, and the public user lookup. This file defines the DTOs
// used by its handlers.
package users

import "github.com/user/devlearn-go/auth"

// UpdateProfileRequest is the payload for updating the caller's own profile.
// Only name, bio and picture are updatable; the target id always comes from
// the identity context.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Bio     string `json:"bio" validate:"max=1000"`
	Picture string `json:"picture" validate:"omitempty,max=500"`
}

// UserResponse wraps a user payload. The password hash is never serialized.
type UserResponse struct {
	Success bool       `json:"success"`
	User    *auth.User `json:"user"`
}

// UpdateResponse acknowledges a successful profile update.
type UpdateResponse struct {
	Success bool `json:"success"`
}
