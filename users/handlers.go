package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/devlearn-go/apperror"
	"github.com/user/devlearn-go/auth"
)

// UserHandlers provides the HTTP handlers for user profile management.
type UserHandlers struct {
	service  *UserService
	validate *validator.Validate
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service, validate: validator.New()}
}

// HandleCurrentUser godoc
// @Summary Get the currently logged in user
// @Description Re-fetches the authenticated user's record, excluding the password hash.
// @Tags Users
// @Produce json
// @Success 200 {object} users.UserResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/current-user [get]
func (h *UserHandlers) HandleCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Please login first", nil))
			return
		}

		// Re-fetch by id: the account may have been deleted while the
		// session token was still valid, which is a 404, not a 401.
		user, err := h.service.GetUserByID(r.Context(), current.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
	}
}

// HandleUpdateProfile godoc
// @Summary Update the current user's profile
// @Description Updates name, bio and picture on the caller's own record. The target id comes from the identity context, never from the request body.
// @Tags Users
// @Accept json
// @Produce json
// @Param profileBody body users.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} users.UpdateResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/current-user/update [put]
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Please login first", nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Name" {
				auth.WriteError(w, r, apperror.NewValidationError("Name is required", nil))
				return
			}
			auth.WriteError(w, r, apperror.NewValidationError("Invalid profile data", err))
			return
		}

		if err := h.service.UpdateProfile(r.Context(), current.ID, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, UpdateResponse{Success: true})
	}
}

// HandleGetUserDetails godoc
// @Summary Get user details by id
// @Description Public lookup of a user by arbitrary id.
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} users.UserResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/user/{id} [get]
func (h *UserHandlers) HandleGetUserDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid user id", err))
			return
		}

		user, err := h.service.GetUserByID(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
	}
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"success":false,"message":"failed to encode response"}`, http.StatusInternalServerError)
	}
}
