package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CASHTRACKR_BACK-END/internal/auth"
	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/middleware"
	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage/memory"
)

func TestSendResetToken(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		handler := NewPasswordHandler(memory.NewStore(), newFakeMailer())

		req := jsonRequest(t, http.MethodPost, "/auth/send-token-to-reset-password",
			dto.SendResetTokenRequest{Email: "ghost@example.com"})
		rec := httptest.NewRecorder()
		handler.SendResetToken(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		handler := NewPasswordHandler(memory.NewStore(), newFakeMailer())

		req := jsonRequest(t, http.MethodPost, "/auth/send-token-to-reset-password",
			dto.SendResetTokenRequest{Email: "not-an-email"})
		rec := httptest.NewRecorder()
		handler.SendResetToken(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("persists and emails a fresh token", func(t *testing.T) {
		store := memory.NewStore()
		mailer := newFakeMailer()
		handler := NewPasswordHandler(store, mailer)
		user := seedUser(t, store, "jane@example.com", "secret1", true)

		req := jsonRequest(t, http.MethodPost, "/auth/send-token-to-reset-password",
			dto.SendResetTokenRequest{Email: "jane@example.com"})
		rec := httptest.NewRecorder()
		handler.SendResetToken(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := store.FindUserByID(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, stored.Token, models.TokenLength)
		assert.Equal(t, stored.Token, mailer.resetTokens["jane@example.com"])
	})
}

func TestValidateResetToken(t *testing.T) {
	store := memory.NewStore()
	handler := NewPasswordHandler(store, newFakeMailer())

	user := seedUser(t, store, "jane@example.com", "secret1", true)
	user.Token = "XyZ789"
	require.NoError(t, store.UpdateUser(context.Background(), user))

	t.Run("valid token stays usable", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			req := jsonRequest(t, http.MethodPost, "/auth/validate-reset-password-token",
				dto.ValidateResetTokenRequest{Token: "XyZ789"})
			rec := httptest.NewRecorder()
			handler.ValidateResetToken(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/validate-reset-password-token",
			dto.ValidateResetTokenRequest{Token: "zzzzzz"})
		rec := httptest.NewRecorder()
		handler.ValidateResetToken(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/validate-reset-password-token",
			dto.ValidateResetTokenRequest{Token: "zz"})
		rec := httptest.NewRecorder()
		handler.ValidateResetToken(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResetPassword(t *testing.T) {
	store := memory.NewStore()
	handler := NewPasswordHandler(store, newFakeMailer())

	user := seedUser(t, store, "jane@example.com", "old-password", true)
	user.Token = "XyZ789"
	require.NoError(t, store.UpdateUser(context.Background(), user))

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /auth/reset-password/{token}", handler.ResetPassword)

	patch := func(token, password string) *httptest.ResponseRecorder {
		req := jsonRequest(t, http.MethodPatch, "/auth/reset-password/"+token,
			dto.ResetPasswordRequest{Password: password})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	t.Run("weak password", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, patch("XyZ789", "1234").Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, patch("zzzzzz", "new-password").Code)
	})

	t.Run("valid token sets the new password and is consumed", func(t *testing.T) {
		require.Equal(t, http.StatusOK, patch("XyZ789", "new-password").Code)

		stored, err := store.FindUserByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Token)
		assert.True(t, auth.CheckPassword("new-password", stored.PasswordHash))
		assert.False(t, auth.CheckPassword("old-password", stored.PasswordHash))

		// Second use of the same token fails.
		assert.Equal(t, http.StatusNotFound, patch("XyZ789", "another-one").Code)
	})
}

func TestUpdatePassword(t *testing.T) {
	store := memory.NewStore()
	handler := NewPasswordHandler(store, newFakeMailer())
	user := seedUser(t, store, "jane@example.com", "old-password", true)

	token, err := middleware.GenerateToken(user.ID, testJWTConfig())
	require.NoError(t, err)
	protected := middleware.Authenticate(store, testJWTConfig(), handler.UpdatePassword)

	patch := func(body dto.UpdatePasswordRequest) *httptest.ResponseRecorder {
		req := jsonRequest(t, http.MethodPatch, "/auth/update-password", body)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(rec, req)
		return rec
	}

	t.Run("missing current password", func(t *testing.T) {
		rec := patch(dto.UpdatePasswordRequest{Password: "new-password"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong current password", func(t *testing.T) {
		rec := patch(dto.UpdatePasswordRequest{CurrentPassword: "wrong", Password: "new-password"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid change", func(t *testing.T) {
		rec := patch(dto.UpdatePasswordRequest{CurrentPassword: "old-password", Password: "new-password"})
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := store.FindUserByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword("new-password", stored.PasswordHash))
	})
}
