package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"CASHTRACKR_BACK-END/internal/auth"
	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/middleware"
	"CASHTRACKR_BACK-END/internal/storage"
	"CASHTRACKR_BACK-END/internal/utils"
)

// PasswordHandler handles the password-reset flow and password changes
type PasswordHandler struct {
	users  storage.UserStore
	mailer Mailer
}

// NewPasswordHandler creates a new PasswordHandler instance
func NewPasswordHandler(users storage.UserStore, mailer Mailer) *PasswordHandler {
	return &PasswordHandler{users: users, mailer: mailer}
}

// SendResetToken emails a fresh reset token to an existing account
// @Summary Request a password reset
// @Description Generate a new 6-character token, persist it on the user, and email it
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.SendResetTokenRequest true "Account email"
// @Success 200 {object} dto.MessageResponse "Token sent"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Unknown email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/send-token-to-reset-password [post]
func (h *PasswordHandler) SendResetToken(w http.ResponseWriter, r *http.Request) {
	var req dto.SendResetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.Email == "" || !validEmail(req.Email) {
		utils.WriteValidationErrors(w, []dto.FieldError{{Field: "email", Message: "A valid email is required"}})
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
			return
		}
		logrus.WithError(err).Error("send reset token: lookup user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		logrus.WithError(err).Error("send reset token: generate token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	user.Token = token
	if err := h.users.UpdateUser(r.Context(), user); err != nil {
		logrus.WithError(err).Error("send reset token: persist user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	if err := h.mailer.SendPasswordResetToken(user.Name, user.Email, token); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("send reset token: send email")
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Check your email for instructions"})
}

// ValidateResetToken checks a reset token without consuming it
// @Summary Validate a reset token
// @Description Verify that a reset token matches an account; the token stays usable
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ValidateResetTokenRequest true "Reset token"
// @Success 200 {object} dto.MessageResponse "Token is valid"
// @Failure 400 {object} dto.ValidationErrorResponse "Malformed token"
// @Failure 404 {object} dto.ErrorResponse "Token not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/validate-reset-password-token [post]
func (h *PasswordHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateResetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateOneTimeToken(req.Token); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	if _, err := h.users.FindUserByToken(r.Context(), req.Token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Token not found", "The token is invalid or has already been used")
			return
		}
		logrus.WithError(err).Error("validate reset token: lookup token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Valid token, set your new password"})
}

// ResetPassword consumes a reset token and stores a new password
// @Summary Reset password
// @Description Set a new password for the account holding the path token, then clear the token
// @Tags authentication
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse "Password updated"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Token not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-password/{token} [patch]
func (h *PasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if errs := validateOneTimeToken(token); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validatePassword(req.Password); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.users.FindUserByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Token not found", "The token is invalid or has already been used")
			return
		}
		logrus.WithError(err).Error("reset password: lookup token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("reset password: hash password")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	user.PasswordHash = hash
	user.Token = ""
	if err := h.users.UpdateUser(r.Context(), user); err != nil {
		logrus.WithError(err).Error("reset password: persist user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

// UpdatePassword changes the password of the authenticated user
// @Summary Update current password
// @Description Re-verify the current password, then store the new one
// @Tags authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse "Password updated"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/update-password [patch]
func (h *PasswordHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var req dto.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var errs []dto.FieldError
	if req.CurrentPassword == "" {
		errs = append(errs, dto.FieldError{Field: "current_password", Message: "Current password is required"})
	}
	errs = append(errs, validatePassword(req.Password)...)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("update password: hash password")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	updated := *user
	updated.PasswordHash = hash
	if err := h.users.UpdateUser(r.Context(), updated); err != nil {
		logrus.WithError(err).Error("update password: persist user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
