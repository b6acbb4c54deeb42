package auth

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/user/devlearn-go/apperror"
)

// Messages produced by the account lifecycle operations. Login failures are
// deliberately uniform so the response does not reveal whether the email or
// the password was wrong.
const (
	msgEmailTaken  = "Email already taken!"
	msgBadLogin    = "Invalid email or password"
	msgLoginFields = "Please enter email & password"
)

// AuthService orchestrates registration and login on top of the credential
// store, the password hasher and the token service.
type AuthService struct {
	users  UserStore
	tokens *TokenService
	log    *logrus.Logger
}

// NewAuthService creates a new AuthService with its collaborators injected.
func NewAuthService(users UserStore, tokens *TokenService, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a new user with the default subscriber role. The email is
// a case-sensitive unique key; a duplicate surfaces as a 400 validation
// error with the exact contract message. A hashing failure is fatal and
// surfaces as a 500.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashed,
		Roles:          []Role{RoleSubscriber},
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return apperror.NewValidationError(msgEmailTaken, nil)
		}
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same 401 to the client while remaining
// distinguishable in the logs.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*User, string, time.Time, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.WithField("reason", "unknown email").Debug("login rejected")
			return nil, "", time.Time{}, apperror.NewAuthError(msgBadLogin, nil)
		}
		s.log.WithError(err).Error("credential lookup failed during login")
		return nil, "", time.Time{}, apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(req.Password, user.HashedPassword) {
		s.log.WithField("reason", "password mismatch").Debug("login rejected")
		return nil, "", time.Time{}, apperror.NewAuthError(msgBadLogin, nil)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperror.NewInternalError("failed to issue session token", err)
	}

	// Strip the hash before the user object leaves the service.
	user.HashedPassword = ""
	return user, token, expiresAt, nil
}
