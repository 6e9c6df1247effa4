package dto

// BudgetRequest represents the payload for creating or updating a budget.
// Amount is a pointer so "missing" and "zero" can be told apart during validation.
type BudgetRequest struct {
	Name   string   `json:"name" validate:"required"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
}

// BudgetResponse represents a budget in list responses
type BudgetResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	UserID    string  `json:"user_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// BudgetDetailResponse is a budget together with its expenses
type BudgetDetailResponse struct {
	BudgetResponse
	Expenses []ExpenseResponse `json:"expenses"`
}
