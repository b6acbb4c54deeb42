package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/user/devlearn-go/apperror"
)

// Messages sent by the authentication gate. They are part of the API
// contract with the frontend.
const (
	msgLoginRequired = "Please login to access this resource"
	msgTokenInvalid  = "Token is invalid or expired"
	msgUserNotFound  = "User not found"
	msgAuthFault     = "Authentication error"
)

// RequireAuth is the authentication gate. Per request it extracts the
// session token from the cookie, verifies it, resolves the user from the
// store and attaches the identity to the request context. Any failure
// terminates the request with a 401; an internal fault terminates it with a
// 500 — the gate fails closed, it never silently passes a request through,
// and it never mutates persisted state.
func RequireAuth(tokens *TokenService, users UserStore, log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, r, apperror.NewAuthError(msgLoginRequired, nil))
				return
			}

			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				// Expired, bad-signature and malformed tokens are logged
				// distinctly but all collapse to the same 401 for clients.
				log.WithFields(logrus.Fields{
					"path":   r.URL.Path,
					"reason": err.Error(),
				}).Debug("session token rejected")
				WriteError(w, r, apperror.NewAuthError(msgTokenInvalid, err))
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					WriteError(w, r, apperror.NewAuthError(msgUserNotFound, nil))
					return
				}
				log.WithError(err).Error("user resolution failed during authentication")
				WriteError(w, r, apperror.NewInternalError(msgAuthFault, err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireInstructor is the role gate. It assumes the authentication gate has
// already populated the identity context and re-fetches the user by id so a
// role change takes effect immediately instead of trusting stale context
// data. Non-instructors get a bare 403; a fetch fault gets a 500 — never a
// hung request, never a silent allow.
func RequireInstructor(users UserStore, log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := UserFromContext(r.Context())
			if !ok {
				WriteError(w, r, apperror.NewAuthError(msgLoginRequired, nil))
				return
			}

			user, err := users.GetUserByID(r.Context(), current.ID)
			if err != nil {
				log.WithError(err).Error("user resolution failed during instructor check")
				WriteError(w, r, apperror.NewInternalError(msgAuthFault, err))
				return
			}

			if !user.HasRole(RoleInstructor) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEnrollment is the membership gate for course-scoped routes. It
// resolves the course named by the {slug} path parameter and checks that its
// id is a member of the current user's enrollment set. A missing course is a
// hard failure, not a pass-through; a fetch fault is a 500.
func RequireEnrollment(users UserStore, courses CourseStore, log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := UserFromContext(r.Context())
			if !ok {
				WriteError(w, r, apperror.NewAuthError(msgLoginRequired, nil))
				return
			}

			user, err := users.GetUserByID(r.Context(), current.ID)
			if err != nil {
				log.WithError(err).Error("user resolution failed during enrollment check")
				WriteError(w, r, apperror.NewInternalError(msgAuthFault, err))
				return
			}

			slug := chi.URLParam(r, "slug")
			course, err := courses.GetCourseBySlug(r.Context(), slug)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					WriteError(w, r, apperror.NewNotFoundError("Course not found", nil))
					return
				}
				log.WithError(err).Error("course resolution failed during enrollment check")
				WriteError(w, r, apperror.NewInternalError(msgAuthFault, err))
				return
			}

			if !user.EnrolledIn(course.ID) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
