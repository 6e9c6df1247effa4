package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"CASHTRACKR_BACK-END/internal/config"
	"CASHTRACKR_BACK-END/internal/handlers"
	"CASHTRACKR_BACK-END/internal/middleware"
	"CASHTRACKR_BACK-END/internal/storage"
)

// Deps carries everything the router needs to wire handlers and guards.
type Deps struct {
	Users    storage.UserStore
	Budgets  storage.BudgetStore
	Expenses storage.ExpenseStore
	Mailer   handlers.Mailer
	DB       handlers.Pinger
	Config   *config.Config
}

// SetupRoutes configures all application routes
func SetupRoutes(deps Deps) *http.ServeMux {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Mailer, &deps.Config.JWT)
	passwordHandler := handlers.NewPasswordHandler(deps.Users, deps.Mailer)
	budgetsHandler := handlers.NewBudgetsHandler(deps.Budgets, deps.Expenses)
	expensesHandler := handlers.NewExpensesHandler(deps.Expenses)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	pagesHandler := handlers.NewPagesHandler(deps.Config.Server.TemplatesDir)

	limiter := middleware.NewRateLimiter(deps.Config.RateLimit.RequestsPerSecond, deps.Config.RateLimit.Burst)

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.Authenticate(deps.Users, &deps.Config.JWT, next)
	}
	withBudget := func(next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireBudget(deps.Budgets, next))
	}
	withExpense := func(next http.HandlerFunc) http.HandlerFunc {
		return withBudget(middleware.RequireExpense(deps.Expenses, next))
	}

	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("GET /healthz", healthHandler.HealthCheck)
	mux.HandleFunc("GET /livez", healthHandler.LivenessCheck)
	mux.HandleFunc("GET /readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /auth/create-account", limiter.Limit(authHandler.CreateAccount))
	mux.HandleFunc("POST /auth/confirm-account", authHandler.ConfirmAccount)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/user", authed(authHandler.CurrentUser))

	// Password reset routes
	mux.HandleFunc("POST /auth/send-token-to-reset-password", limiter.Limit(passwordHandler.SendResetToken))
	mux.HandleFunc("POST /auth/validate-reset-password-token", passwordHandler.ValidateResetToken)
	mux.HandleFunc("PATCH /auth/reset-password/{token}", passwordHandler.ResetPassword)
	mux.HandleFunc("PATCH /auth/update-password", authed(passwordHandler.UpdatePassword))

	// Budget routes
	mux.HandleFunc("GET /budgets", authed(budgetsHandler.List))
	mux.HandleFunc("POST /budgets", authed(budgetsHandler.Create))
	mux.HandleFunc("GET /budgets/{budgetId}", withBudget(budgetsHandler.Get))
	mux.HandleFunc("PUT /budgets/{budgetId}", withBudget(budgetsHandler.Update))
	mux.HandleFunc("DELETE /budgets/{budgetId}", withBudget(budgetsHandler.Delete))

	// Expense routes nested under a budget
	mux.HandleFunc("GET /budgets/{budgetId}/expenses", withBudget(expensesHandler.List))
	mux.HandleFunc("POST /budgets/{budgetId}/expenses", withBudget(expensesHandler.Create))
	mux.HandleFunc("GET /budgets/{budgetId}/expenses/{expenseId}", withExpense(expensesHandler.Get))
	mux.HandleFunc("PUT /budgets/{budgetId}/expenses/{expenseId}", withExpense(expensesHandler.Update))
	mux.HandleFunc("DELETE /budgets/{budgetId}/expenses/{expenseId}", withExpense(expensesHandler.Delete))

	// Server-rendered auth screens
	mux.HandleFunc("GET /login", pagesHandler.LoginPage)
	mux.HandleFunc("GET /register", pagesHandler.RegisterPage)
	mux.HandleFunc("GET /confirm-account", pagesHandler.ConfirmAccountPage)
	mux.HandleFunc("GET /forgot-password", pagesHandler.ForgotPasswordPage)
	mux.HandleFunc("GET /reset-password", pagesHandler.ResetPasswordPage)
	mux.HandleFunc("GET /{$}", pagesHandler.RootPage)

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
