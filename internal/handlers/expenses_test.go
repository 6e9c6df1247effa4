package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CASHTRACKR_BACK-END/internal/dto"
	"CASHTRACKR_BACK-END/internal/models"
)

func TestExpensesCreateAndList(t *testing.T) {
	f := newBudgetFixture(t)
	budget := f.seedBudget(t, "Groceries", 300)
	base := "/budgets/" + budget.ID.String() + "/expenses"

	rec := f.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = f.do(t, http.MethodPost, base, dto.ExpenseRequest{Name: "Milk", Amount: amountPtr(3.5)})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var expenses []dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, "Milk", expenses[0].Name)
	assert.Equal(t, 3.5, expenses[0].Amount)
	assert.Equal(t, budget.ID.String(), expenses[0].BudgetID)
}

func TestExpensesCreateValidation(t *testing.T) {
	f := newBudgetFixture(t)
	budget := f.seedBudget(t, "Groceries", 300)
	base := "/budgets/" + budget.ID.String() + "/expenses"

	rec := f.do(t, http.MethodPost, base, dto.ExpenseRequest{Name: ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, base, dto.ExpenseRequest{Name: "Refund", Amount: amountPtr(-5)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpensesGet(t *testing.T) {
	f := newBudgetFixture(t)
	budget := f.seedBudget(t, "Groceries", 300)

	expense := models.Expense{ID: uuid.New(), Name: "Bread", Amount: 2, BudgetID: budget.ID}
	_, err := f.store.CreateExpense(context.Background(), expense)
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/budgets/"+budget.ID.String()+"/expenses/"+expense.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, expense.ID.String(), resp.ID)
	assert.Equal(t, "Bread", resp.Name)
}

func TestExpensesUpdate(t *testing.T) {
	f := newBudgetFixture(t)
	budget := f.seedBudget(t, "Groceries", 300)

	expense := models.Expense{ID: uuid.New(), Name: "Bread", Amount: 2, BudgetID: budget.ID}
	_, err := f.store.CreateExpense(context.Background(), expense)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/budgets/"+budget.ID.String()+"/expenses/"+expense.ID.String(),
		dto.ExpenseRequest{Name: "Sourdough", Amount: amountPtr(4.5)})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.store.FindExpenseByID(context.Background(), expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", stored.Name)
	assert.Equal(t, 4.5, stored.Amount)
}

func TestExpensesDelete(t *testing.T) {
	f := newBudgetFixture(t)
	budget := f.seedBudget(t, "Groceries", 300)

	expense := models.Expense{ID: uuid.New(), Name: "Bread", Amount: 2, BudgetID: budget.ID}
	_, err := f.store.CreateExpense(context.Background(), expense)
	require.NoError(t, err)

	path := "/budgets/" + budget.ID.String() + "/expenses/" + expense.ID.String()
	rec := f.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpensesAcrossBudgets(t *testing.T) {
	f := newBudgetFixture(t)
	groceries := f.seedBudget(t, "Groceries", 300)
	travel := f.seedBudget(t, "Travel", 1000)

	expense := models.Expense{ID: uuid.New(), Name: "Flight", Amount: 420, BudgetID: travel.ID}
	_, err := f.store.CreateExpense(context.Background(), expense)
	require.NoError(t, err)

	// A travel expense is invisible through the groceries budget.
	rec := f.do(t, http.MethodGet, "/budgets/"+groceries.ID.String()+"/expenses/"+expense.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
