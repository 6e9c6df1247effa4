package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"CASHTRACKR_BACK-END/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the user directory operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByToken(ctx context.Context, token string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// BudgetStore captures budget persistence operations.
type BudgetStore interface {
	CreateBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	FindBudgetByID(ctx context.Context, id uuid.UUID) (models.Budget, error)
	// ListBudgetsByUser returns the user's budgets ordered by creation time, newest first.
	ListBudgetsByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, budget models.Budget) error
	// DeleteBudget removes the budget and, by cascade, all of its expenses.
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

// ExpenseStore captures expense persistence operations.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	FindExpenseByID(ctx context.Context, id uuid.UUID) (models.Expense, error)
	ListExpensesByBudget(ctx context.Context, budgetID uuid.UUID) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, expense models.Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}
