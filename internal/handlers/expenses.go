package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/middleware"
	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage"
	"CASHTRACKR_BACK-END/internal/utils"
)

// ExpensesHandler manages expense CRUD endpoints nested under a budget
type ExpensesHandler struct {
	expenses storage.ExpenseStore
}

// NewExpensesHandler creates a new ExpensesHandler
func NewExpensesHandler(expenses storage.ExpenseStore) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses}
}

// List returns the expenses of a guard-verified budget
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Success 200 {array} dto.ExpenseResponse "Expenses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId}/expenses [get]
func (h *ExpensesHandler) List(w http.ResponseWriter, r *http.Request) {
	budget := middleware.CurrentBudget(r)
	if budget == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Budget not found", "")
		return
	}

	expenses, err := h.expenses.ListExpensesByBudget(r.Context(), budget.ID)
	if err != nil {
		logrus.WithError(err).Error("list expenses")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	response := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		response = append(response, toExpenseResponse(expense))
	}
	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// Create records a new expense against a guard-verified budget
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Param request body dto.ExpenseRequest true "Expense data"
// @Success 200 {object} dto.MessageResponse "Expense created"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId}/expenses [post]
func (h *ExpensesHandler) Create(w http.ResponseWriter, r *http.Request) {
	budget := middleware.CurrentBudget(r)
	if budget == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Budget not found", "")
		return
	}

	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateAmountInput(req.Name, req.Amount); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	expense := models.Expense{
		ID:       uuid.New(),
		Name:     req.Name,
		Amount:   *req.Amount,
		BudgetID: budget.ID,
	}
	if _, err := h.expenses.CreateExpense(r.Context(), expense); err != nil {
		logrus.WithError(err).Error("create expense")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Expense created successfully"})
}

// Get returns a single guard-verified expense
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Param expenseId path string true "Expense id"
// @Success 200 {object} dto.ExpenseResponse "Expense"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Router /budgets/{budgetId}/expenses/{expenseId} [get]
func (h *ExpensesHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense := middleware.CurrentExpense(r)
	if expense == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Expense not found", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toExpenseResponse(*expense))
}

// Update changes an expense's name and amount
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Param expenseId path string true "Expense id"
// @Param request body dto.ExpenseRequest true "Expense data"
// @Success 200 {object} dto.MessageResponse "Expense updated"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId}/expenses/{expenseId} [put]
func (h *ExpensesHandler) Update(w http.ResponseWriter, r *http.Request) {
	expense := middleware.CurrentExpense(r)
	if expense == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Expense not found", "")
		return
	}

	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateAmountInput(req.Name, req.Amount); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	updated := *expense
	updated.Name = req.Name
	updated.Amount = *req.Amount
	if err := h.expenses.UpdateExpense(r.Context(), updated); err != nil {
		logrus.WithError(err).Error("update expense")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Expense updated successfully"})
}

// Delete removes a single expense
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Param expenseId path string true "Expense id"
// @Success 200 {object} dto.MessageResponse "Expense deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId}/expenses/{expenseId} [delete]
func (h *ExpensesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expense := middleware.CurrentExpense(r)
	if expense == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Expense not found", "")
		return
	}

	if err := h.expenses.DeleteExpense(r.Context(), expense.ID); err != nil {
		logrus.WithError(err).Error("delete expense")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Expense deleted successfully"})
}

func toExpenseResponse(expense models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:        expense.ID.String(),
		Name:      expense.Name,
		Amount:    expense.Amount,
		BudgetID:  expense.BudgetID.String(),
		CreatedAt: expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt: expense.UpdatedAt.Format(time.RFC3339),
	}
}
