package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"CASHTRACKR_BACK-END/internal/auth"
	"CASHTRACKR_BACK-END/internal/config"
	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/middleware"
	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage"
	"CASHTRACKR_BACK-END/internal/utils"
)

// AuthHandler handles the account lifecycle: registration, confirmation,
// login, and the current-user endpoint
type AuthHandler struct {
	users  storage.UserStore
	mailer Mailer
	jwt    *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users storage.UserStore, mailer Mailer, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: users, mailer: mailer, jwt: jwtCfg}
}

// CreateAccount handles user registration
// @Summary Register a new account
// @Description Create an unconfirmed account and email a 6-character confirmation token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account registration data"
// @Success 201 {object} dto.MessageResponse "Account created"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/create-account [post]
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateAccountInput(req.Name, req.Email, req.Password); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("create account: hash password")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		logrus.WithError(err).Error("create account: generate token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Token:        token,
		Confirmed:    false,
	}

	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Email already registered", "An account with this email already exists")
			return
		}
		logrus.WithError(err).Error("create account: persist user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	// Best-effort: registration succeeds even when the mail cannot be sent.
	if err := h.mailer.SendAccountConfirmation(created.Name, created.Email, created.Token); err != nil {
		logrus.WithError(err).WithField("email", created.Email).Warn("create account: send confirmation email")
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.MessageResponse{
		Message: "Account created, we sent you a confirmation email",
	})
}

// ConfirmAccount consumes a confirmation token
// @Summary Confirm an account
// @Description Confirm a pending account with the emailed 6-character token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ConfirmAccountRequest true "Confirmation token"
// @Success 200 {object} dto.MessageResponse "Account confirmed"
// @Failure 400 {object} dto.ValidationErrorResponse "Malformed token"
// @Failure 404 {object} dto.ErrorResponse "Token not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/confirm-account [post]
func (h *AuthHandler) ConfirmAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateOneTimeToken(req.Token); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.users.FindUserByToken(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Token not found", "The token is invalid or has already been used")
			return
		}
		logrus.WithError(err).Error("confirm account: lookup token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	user.Confirmed = true
	user.Token = ""
	if err := h.users.UpdateUser(r.Context(), user); err != nil {
		logrus.WithError(err).Error("confirm account: persist user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Account confirmed successfully"})
}

// Login authenticates a confirmed account
// @Summary Log in
// @Description Authenticate with email and password; returns a bearer token valid for 30 days
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Signed bearer token"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Wrong password"
// @Failure 403 {object} dto.ErrorResponse "Account not confirmed"
// @Failure 404 {object} dto.ErrorResponse "Unknown email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var errs []dto.FieldError
	if req.Email == "" || !validEmail(req.Email) {
		errs = append(errs, dto.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if req.Password == "" {
		errs = append(errs, dto.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
			return
		}
		logrus.WithError(err).Error("login: lookup user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	// An unconfirmed account is rejected before the password is checked.
	if !user.Confirmed {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Account not confirmed", "Confirm your account before logging in")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.jwt)
	if err != nil {
		logrus.WithError(err).Error("login: sign token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{Token: token})
}

// CurrentUser returns the authenticated user's profile
// @Summary Get current user
// @Description Get the authenticated user's id, name, and email
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/user [get]
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	})
}
