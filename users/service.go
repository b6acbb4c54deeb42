package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/devlearn-go/apperror"
	"github.com/user/devlearn-go/auth"
)

// UserService provides the profile operations on top of the credential store
// adapter. It always re-fetches from the store rather than trusting any
// cached representation.
type UserService struct {
	users auth.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users auth.UserStore) *UserService {
	return &UserService{users: users}
}

// GetUserByID retrieves a user by id, excluding the password hash. A missing
// id resolves to a NotFound error; the account may have been deleted since
// the session token was issued.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError(fmt.Sprintf("failed to get user %d", id), err)
	}
	return user, nil
}

// UpdateProfile updates the name, bio and picture of the user's own record.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) error {
	err := s.users.UpdateProfile(ctx, id, req.Name, req.Bio, req.Picture)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return apperror.NewNotFoundError("User not found", nil)
		}
		return apperror.NewDatabaseError(fmt.Sprintf("failed to update profile for user %d", id), err)
	}
	return nil
}
