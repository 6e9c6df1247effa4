package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage"
	"CASHTRACKR_BACK-END/internal/utils"
)

const (
	budgetContextKey  contextKey = "current_budget"
	expenseContextKey contextKey = "current_expense"
)

// RequireBudget resolves the {budgetId} path parameter, verifies the budget
// exists and belongs to the authenticated user, and threads the resolved
// budget through the request context. Runs after Authenticate.
func RequireBudget(budgets storage.BudgetStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetID, err := uuid.Parse(r.PathValue("budgetId"))
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid budget id", "Budget id must be a valid UUID")
			return
		}

		budget, err := budgets.FindBudgetByID(r.Context(), budgetID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				utils.WriteErrorResponse(w, http.StatusNotFound, "Budget not found", "")
				return
			}
			logrus.WithError(err).Error("budget guard: load budget")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
			return
		}

		user := CurrentUser(r)
		if user == nil || budget.UserID != user.ID {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Budget belongs to another user")
			return
		}

		ctx := context.WithValue(r.Context(), budgetContextKey, &budget)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireExpense resolves the {expenseId} path parameter against the budget
// already guarded by RequireBudget. Expenses reached through a foreign budget
// are reported as not found.
func RequireExpense(expenses storage.ExpenseStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenseID, err := uuid.Parse(r.PathValue("expenseId"))
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid expense id", "Expense id must be a valid UUID")
			return
		}

		expense, err := expenses.FindExpenseByID(r.Context(), expenseID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				utils.WriteErrorResponse(w, http.StatusNotFound, "Expense not found", "")
				return
			}
			logrus.WithError(err).Error("expense guard: load expense")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
			return
		}

		budget := CurrentBudget(r)
		if budget == nil || expense.BudgetID != budget.ID {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Expense not found", "")
			return
		}

		ctx := context.WithValue(r.Context(), expenseContextKey, &expense)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// CurrentBudget returns the budget resolved by RequireBudget, or nil.
func CurrentBudget(r *http.Request) *models.Budget {
	budget, _ := r.Context().Value(budgetContextKey).(*models.Budget)
	return budget
}

// CurrentExpense returns the expense resolved by RequireExpense, or nil.
func CurrentExpense(r *http.Request) *models.Expense {
	expense, _ := r.Context().Value(expenseContextKey).(*models.Expense)
	return expense
}
