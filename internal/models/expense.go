package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a single expense recorded against a budget
type Expense struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Amount    float64   `json:"amount" db:"amount"`
	BudgetID  uuid.UUID `json:"budget_id" db:"budget_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
