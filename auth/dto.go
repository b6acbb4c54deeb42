package auth

// RegisterRequest is the registration payload. Validation tags are enforced
// with go-playground/validator in the handler; the messages sent back for
// each failure are part of the API contract.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse acknowledges a successful registration. No token is
// issued on registration; login is a separate step.
type RegisterResponse struct {
	OK bool `json:"ok"`
}

// LoginResponse is returned on successful login. The user payload never
// carries the password hash.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// LogoutResponse acknowledges a logout.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ForgotPasswordRequest triggers the password-reset mail stub.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}
