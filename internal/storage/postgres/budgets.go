package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage"
)

const budgetColumns = "id, name, amount, user_id, created_at, updated_at"

// CreateBudget inserts a new budget row.
func (s *Store) CreateBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO budgets (id, name, amount, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+budgetColumns,
		budget.ID, budget.Name, budget.Amount, budget.UserID)
	return scanBudget(row)
}

// FindBudgetByID fetches a budget by primary key.
func (s *Store) FindBudgetByID(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	return scanBudget(row)
}

// ListBudgetsByUser returns the user's budgets, newest first.
func (s *Store) ListBudgetsByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// UpdateBudget persists name and amount changes.
func (s *Store) UpdateBudget(ctx context.Context, budget models.Budget) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE budgets SET name = $2, amount = $3, updated_at = NOW() WHERE id = $1`,
		budget.ID, budget.Name, budget.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget; the expenses FK cascades the delete.
func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var budget models.Budget
	err := row.Scan(&budget.ID, &budget.Name, &budget.Amount, &budget.UserID,
		&budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Budget{}, storage.ErrNotFound
		}
		return models.Budget{}, err
	}
	return budget, nil
}
