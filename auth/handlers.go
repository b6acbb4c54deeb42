package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/user/devlearn-go/apperror"
	"github.com/user/devlearn-go/config"
	"github.com/user/devlearn-go/mail"
)

// Handlers exposes the account lifecycle operations over HTTP: register,
// login, logout and the password-reset mail trigger. Profile reads and
// updates live in the users package.
type Handlers struct {
	service  *AuthService
	authCfg  *config.AuthConfig
	mailer   mail.Sender
	validate *validator.Validate
	log      *logrus.Logger
}

// NewHandlers creates a new Handlers instance with its collaborators
// injected.
func NewHandlers(service *AuthService, authCfg *config.AuthConfig, mailer mail.Sender, log *logrus.Logger) *Handlers {
	return &Handlers{
		service:  service,
		authCfg:  authCfg,
		mailer:   mailer,
		validate: validator.New(),
		log:      log,
	}
}

// registerValidationMessage maps a validator field error on RegisterRequest
// to its contract message.
func registerValidationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "Name is required"
	case "Password":
		return "Password is required and should be min 6 characters long"
	case "Email":
		return "A valid email is required"
	}
	return "Invalid request"
}

// HandleRegister godoc
// @Summary User Registration
// @Description Creates a new account. No session token is issued; login is a separate step.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 200 {object} auth.RegisterResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				WriteError(w, r, apperror.NewValidationError(registerValidationMessage(fieldErrs[0]), nil))
				return
			}
			WriteError(w, r, apperror.NewValidationError("Invalid request", err))
			return
		}

		if err := h.service.Register(r.Context(), req); err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, RegisterResponse{OK: true})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Verifies credentials, issues a session token and sets it as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError(msgLoginFields, nil))
			return
		}

		user, token, expiresAt, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		http.SetCookie(w, SessionCookie(h.authCfg, token, expiresAt))
		writeJSON(w, http.StatusOK, LoginResponse{
			Success: true,
			Token:   token,
			User:    user,
		})
	}
}

// HandleLogout godoc
// @Summary User Logout
// @Description Clears the session cookie. There is no server-side session state to invalidate.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.LogoutResponse
// @Router /api/logout [get]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, ClearedSessionCookie(h.authCfg))
		writeJSON(w, http.StatusOK, LogoutResponse{
			Success: true,
			Message: "Logged out",
		})
	}
}

// HandleForgotPassword godoc
// @Summary Trigger password reset email
// @Description Sends a password-reset email to the given address. Completing the reset is not implemented.
// @Tags Auth
// @Accept json
// @Produce json
// @Param forgotBody body auth.ForgotPasswordRequest true "Account email"
// @Success 200 {object} auth.RegisterResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 502 {object} apperror.ErrorResponse
// @Router /api/forgot-password [post]
func (h *Handlers) HandleForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewValidationError("A valid email is required", nil))
			return
		}

		if err := h.mailer.SendPasswordReset(r.Context(), req.Email); err != nil {
			h.log.WithError(err).Error("failed to send password reset email")
			WriteError(w, r, apperror.NewExternalServiceError("Failed to send email", err))
			return
		}

		writeJSON(w, http.StatusOK, RegisterResponse{OK: true})
	}
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"success":false,"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError renders any error as a standardized JSON error response. Errors
// that are not AppErrors are wrapped as generic internal errors so a raw
// error string never reaches a client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
