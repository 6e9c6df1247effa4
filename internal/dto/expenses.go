package dto

// ExpenseRequest represents the payload for creating or updating an expense
type ExpenseRequest struct {
	Name   string   `json:"name" validate:"required"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	BudgetID  string  `json:"budget_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
