package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CASHTRACKR_BACK-END/internal/config"
	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/storage/memory"
)

type recordingMailer struct {
	confirmTokens map[string]string
	resetTokens   map[string]string
}

func (m *recordingMailer) SendAccountConfirmation(name, email, token string) error {
	m.confirmTokens[email] = token
	return nil
}

func (m *recordingMailer) SendPasswordResetToken(name, email, token string) error {
	m.resetTokens[email] = token
	return nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{TemplatesDir: "../../templates"},
		JWT:    config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             100,
		},
	}
}

type apiClient struct {
	t     *testing.T
	mux   *http.ServeMux
	token string
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(c.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)
	return rec
}

// TestAccountLifecycle walks the whole happy path: registration, confirmation,
// login, and budget and expense management with the issued token.
func TestAccountLifecycle(t *testing.T) {
	store := memory.NewStore()
	mailer := &recordingMailer{
		confirmTokens: make(map[string]string),
		resetTokens:   make(map[string]string),
	}

	mux := SetupRoutes(Deps{
		Users:    store,
		Budgets:  store,
		Expenses: store,
		Mailer:   mailer,
		DB:       okPinger{},
		Config:   testConfig(),
	})
	client := &apiClient{t: t, mux: mux}

	// Register.
	rec := client.do(http.MethodPost, "/auth/create-account", dto.CreateAccountRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	confirmToken := mailer.confirmTokens["jane@example.com"]
	require.Len(t, confirmToken, 6)

	// Login before confirmation is rejected.
	rec = client.do(http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: "jane@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Confirm with the emailed token.
	rec = client.do(http.MethodPost, "/auth/confirm-account", dto.ConfirmAccountRequest{Token: confirmToken})
	require.Equal(t, http.StatusOK, rec.Code)

	// Login now succeeds.
	rec = client.do(http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: "jane@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	client.token = login.Token

	// The token resolves the current user.
	rec = client.do(http.MethodGet, "/auth/user", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "jane@example.com", me.Email)

	// Create a budget.
	amount := 300.0
	rec = client.do(http.MethodPost, "/budgets", dto.BudgetRequest{Name: "Groceries", Amount: &amount})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = client.do(http.MethodGet, "/budgets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var budgets []dto.BudgetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budgets))
	require.Len(t, budgets, 1)
	budgetID := budgets[0].ID

	// The fresh budget has no expenses.
	rec = client.do(http.MethodGet, "/budgets/"+budgetID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail dto.BudgetDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.NotNil(t, detail.Expenses)
	assert.Empty(t, detail.Expenses)

	// Add an expense.
	expenseAmount := 42.5
	rec = client.do(http.MethodPost, "/budgets/"+budgetID+"/expenses",
		dto.ExpenseRequest{Name: "Milk and bread", Amount: &expenseAmount})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, "/budgets/"+budgetID+"/expenses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var expenses []dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, "Milk and bread", expenses[0].Name)
	assert.Equal(t, 42.5, expenses[0].Amount)
}

func TestPasswordResetFlow(t *testing.T) {
	store := memory.NewStore()
	mailer := &recordingMailer{
		confirmTokens: make(map[string]string),
		resetTokens:   make(map[string]string),
	}

	mux := SetupRoutes(Deps{
		Users:    store,
		Budgets:  store,
		Expenses: store,
		Mailer:   mailer,
		DB:       okPinger{},
		Config:   testConfig(),
	})
	client := &apiClient{t: t, mux: mux}

	rec := client.do(http.MethodPost, "/auth/create-account", dto.CreateAccountRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = client.do(http.MethodPost, "/auth/confirm-account",
		dto.ConfirmAccountRequest{Token: mailer.confirmTokens["jane@example.com"]})
	require.Equal(t, http.StatusOK, rec.Code)

	// Request a reset token.
	rec = client.do(http.MethodPost, "/auth/send-token-to-reset-password",
		dto.SendResetTokenRequest{Email: "jane@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	resetToken := mailer.resetTokens["jane@example.com"]
	require.Len(t, resetToken, 6)

	// Validate without consuming.
	rec = client.do(http.MethodPost, "/auth/validate-reset-password-token",
		dto.ValidateResetTokenRequest{Token: resetToken})
	require.Equal(t, http.StatusOK, rec.Code)

	// Reset to a new password.
	rec = client.do(http.MethodPatch, "/auth/reset-password/"+resetToken,
		dto.ResetPasswordRequest{Password: "brand-new"})
	require.Equal(t, http.StatusOK, rec.Code)

	// The old password no longer works, the new one does.
	rec = client.do(http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: "jane@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = client.do(http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: "jane@example.com", Password: "brand-new",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthRoutes(t *testing.T) {
	mux := SetupRoutes(Deps{
		Users:    memory.NewStore(),
		Budgets:  memory.NewStore(),
		Expenses: memory.NewStore(),
		Mailer:   &recordingMailer{confirmTokens: map[string]string{}, resetTokens: map[string]string{}},
		DB:       okPinger{},
		Config:   testConfig(),
	})
	client := &apiClient{t: t, mux: mux}

	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		rec := client.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthScreens(t *testing.T) {
	mux := SetupRoutes(Deps{
		Users:    memory.NewStore(),
		Budgets:  memory.NewStore(),
		Expenses: memory.NewStore(),
		Mailer:   &recordingMailer{confirmTokens: map[string]string{}, resetTokens: map[string]string{}},
		DB:       okPinger{},
		Config:   testConfig(),
	})
	client := &apiClient{t: t, mux: mux}

	pages := map[string]string{
		"/login":           "Log in",
		"/register":        "Create account",
		"/confirm-account": "Confirm your account",
		"/forgot-password": "Forgot password",
		"/reset-password":  "Reset password",
	}
	for path, title := range pages {
		rec := client.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), title, path)
	}

	// The reset screen pre-fills the token from the emailed link.
	rec := client.do(http.MethodGet, "/reset-password?token=AbC123", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="AbC123"`)

	// The root redirects to the login screen.
	rec = client.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasSuffix(rec.Header().Get("Location"), "/login"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	mux := SetupRoutes(Deps{
		Users:    memory.NewStore(),
		Budgets:  memory.NewStore(),
		Expenses: memory.NewStore(),
		Mailer:   &recordingMailer{confirmTokens: map[string]string{}, resetTokens: map[string]string{}},
		DB:       okPinger{},
		Config:   testConfig(),
	})
	client := &apiClient{t: t, mux: mux}

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/user"},
		{http.MethodPatch, "/auth/update-password"},
		{http.MethodGet, "/budgets"},
		{http.MethodPost, "/budgets"},
	} {
		rec := client.do(route.method, route.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.method+" "+route.path)
	}
}
