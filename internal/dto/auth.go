package dto

// CreateAccountRequest represents the request payload for account registration
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// ConfirmAccountRequest carries the 6-character token emailed after registration
type ConfirmAccountRequest struct {
	Token string `json:"token" validate:"required,len=6"`
}

// LoginRequest represents the request payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed bearer token issued on successful login
type LoginResponse struct {
	Token string `json:"token"`
}

// SendResetTokenRequest asks for a password-reset token to be emailed
type SendResetTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateResetTokenRequest carries a reset token to be checked without consuming it
type ValidateResetTokenRequest struct {
	Token string `json:"token" validate:"required,len=6"`
}

// ResetPasswordRequest carries the new password for a token-authorized reset
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=5"`
}

// UpdatePasswordRequest changes the password of an authenticated user
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	Password        string `json:"password" validate:"required,min=5"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MessageResponse is the generic acknowledgment body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FieldError describes a single failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists per-field validation messages
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}
