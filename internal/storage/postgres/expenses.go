package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage"
)

const expenseColumns = "id, name, amount, budget_id, created_at, updated_at"

// CreateExpense inserts a new expense row.
func (s *Store) CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO expenses (id, name, amount, budget_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+expenseColumns,
		expense.ID, expense.Name, expense.Amount, expense.BudgetID)
	return scanExpense(row)
}

// FindExpenseByID fetches an expense by primary key.
func (s *Store) FindExpenseByID(ctx context.Context, id uuid.UUID) (models.Expense, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	return scanExpense(row)
}

// ListExpensesByBudget returns a budget's expenses in creation order.
func (s *Store) ListExpensesByBudget(ctx context.Context, budgetID uuid.UUID) ([]models.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE budget_id = $1 ORDER BY created_at`,
		budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// UpdateExpense persists name and amount changes.
func (s *Store) UpdateExpense(ctx context.Context, expense models.Expense) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE expenses SET name = $2, amount = $3, updated_at = NOW() WHERE id = $1`,
		expense.ID, expense.Name, expense.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteExpense removes a single expense.
func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var expense models.Expense
	err := row.Scan(&expense.ID, &expense.Name, &expense.Amount, &expense.BudgetID,
		&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Expense{}, storage.ErrNotFound
		}
		return models.Expense{}, err
	}
	return expense, nil
}
