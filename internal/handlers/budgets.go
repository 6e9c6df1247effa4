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

// BudgetsHandler manages budget CRUD endpoints
type BudgetsHandler struct {
	budgets  storage.BudgetStore
	expenses storage.ExpenseStore
}

// NewBudgetsHandler creates a new BudgetsHandler
func NewBudgetsHandler(budgets storage.BudgetStore, expenses storage.ExpenseStore) *BudgetsHandler {
	return &BudgetsHandler{budgets: budgets, expenses: expenses}
}

// List returns the authenticated user's budgets
// @Summary List budgets
// @Description List the authenticated user's budgets, newest first
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BudgetResponse "Budgets"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets [get]
func (h *BudgetsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	budgets, err := h.budgets.ListBudgetsByUser(r.Context(), user.ID)
	if err != nil {
		logrus.WithError(err).Error("list budgets")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	response := make([]dto.BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		response = append(response, toBudgetResponse(budget))
	}
	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// Create creates a new budget owned by the authenticated user
// @Summary Create a budget
// @Description Create a budget with a name and a non-negative amount
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BudgetRequest true "Budget data"
// @Success 201 {object} dto.MessageResponse "Budget created"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets [post]
func (h *BudgetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateAmountInput(req.Name, req.Amount); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	budget := models.Budget{
		ID:     uuid.New(),
		Name:   req.Name,
		Amount: *req.Amount,
		UserID: user.ID,
	}
	if _, err := h.budgets.CreateBudget(r.Context(), budget); err != nil {
		logrus.WithError(err).Error("create budget")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.MessageResponse{Message: "Budget created successfully"})
}

// Get returns a budget together with its expenses
// @Summary Get a budget
// @Description Get a guard-verified budget including its expenses
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Success 200 {object} dto.BudgetDetailResponse "Budget with expenses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId} [get]
func (h *BudgetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	budget := middleware.CurrentBudget(r)
	if budget == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Budget not found", "")
		return
	}

	expenses, err := h.expenses.ListExpensesByBudget(r.Context(), budget.ID)
	if err != nil {
		logrus.WithError(err).Error("get budget: list expenses")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	detail := dto.BudgetDetailResponse{
		BudgetResponse: toBudgetResponse(*budget),
		Expenses:       make([]dto.ExpenseResponse, 0, len(expenses)),
	}
	for _, expense := range expenses {
		detail.Expenses = append(detail.Expenses, toExpenseResponse(expense))
	}
	utils.WriteJSONResponse(w, http.StatusOK, detail)
}

// Update changes a budget's name and amount
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Param request body dto.BudgetRequest true "Budget data"
// @Success 200 {object} dto.MessageResponse "Budget updated"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId} [put]
func (h *BudgetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	budget := middleware.CurrentBudget(r)
	if budget == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Budget not found", "")
		return
	}

	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if errs := validateAmountInput(req.Name, req.Amount); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	updated := *budget
	updated.Name = req.Name
	updated.Amount = *req.Amount
	if err := h.budgets.UpdateBudget(r.Context(), updated); err != nil {
		logrus.WithError(err).Error("update budget")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Budget updated successfully"})
}

// Delete removes a budget and all of its expenses
// @Summary Delete a budget
// @Description Delete a budget; its expenses are removed by cascade
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param budgetId path string true "Budget id"
// @Success 200 {object} dto.MessageResponse "Budget deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /budgets/{budgetId} [delete]
func (h *BudgetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	budget := middleware.CurrentBudget(r)
	if budget == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Budget not found", "")
		return
	}

	if err := h.budgets.DeleteBudget(r.Context(), budget.ID); err != nil {
		logrus.WithError(err).Error("delete budget")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Budget deleted successfully"})
}

func toBudgetResponse(budget models.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:        budget.ID.String(),
		Name:      budget.Name,
		Amount:    budget.Amount,
		UserID:    budget.UserID.String(),
		CreatedAt: budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt: budget.UpdatedAt.Format(time.RFC3339),
	}
}
