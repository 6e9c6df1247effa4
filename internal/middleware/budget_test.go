package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage/memory"
)

type guardFixture struct {
	store   *memory.Store
	token   string
	user    models.User
	budget  models.Budget
	expense models.Expense
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	user := models.User{ID: uuid.New(), Name: "Owner", Email: "owner@example.com", Confirmed: true}
	_, err := store.CreateUser(ctx, user)
	require.NoError(t, err)

	budget := models.Budget{ID: uuid.New(), Name: "Groceries", Amount: 300, UserID: user.ID}
	_, err = store.CreateBudget(ctx, budget)
	require.NoError(t, err)

	expense := models.Expense{ID: uuid.New(), Name: "Milk", Amount: 3, BudgetID: budget.ID}
	_, err = store.CreateExpense(ctx, expense)
	require.NoError(t, err)

	token, err := GenerateToken(user.ID, testJWTConfig())
	require.NoError(t, err)

	return &guardFixture{store: store, token: token, user: user, budget: budget, expense: expense}
}

func (f *guardFixture) serveBudget(t *testing.T, path string, next http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /budgets/{budgetId}",
		Authenticate(f.store, testJWTConfig(), RequireBudget(f.store, next)))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func (f *guardFixture) serveExpense(t *testing.T, path string, next http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /budgets/{budgetId}/expenses/{expenseId}",
		Authenticate(f.store, testJWTConfig(), RequireBudget(f.store, RequireExpense(f.store, next))))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRequireBudget(t *testing.T) {
	f := newGuardFixture(t)

	t.Run("invalid id", func(t *testing.T) {
		rec := f.serveBudget(t, "/budgets/not-a-uuid", func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next should not run")
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing budget", func(t *testing.T) {
		rec := f.serveBudget(t, "/budgets/"+uuid.NewString(), func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next should not run")
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("foreign budget", func(t *testing.T) {
		foreign := models.Budget{ID: uuid.New(), Name: "Other", Amount: 50, UserID: uuid.New()}
		_, err := f.store.CreateBudget(context.Background(), foreign)
		require.NoError(t, err)

		rec := f.serveBudget(t, "/budgets/"+foreign.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next should not run")
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("owned budget", func(t *testing.T) {
		rec := f.serveBudget(t, "/budgets/"+f.budget.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			budget := CurrentBudget(r)
			require.NotNil(t, budget)
			assert.Equal(t, f.budget.ID, budget.ID)
			w.WriteHeader(http.StatusOK)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireExpense(t *testing.T) {
	f := newGuardFixture(t)
	base := "/budgets/" + f.budget.ID.String() + "/expenses/"

	t.Run("invalid id", func(t *testing.T) {
		rec := f.serveExpense(t, base+"not-a-uuid", func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next should not run")
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing expense", func(t *testing.T) {
		rec := f.serveExpense(t, base+uuid.NewString(), func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next should not run")
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("expense of another budget", func(t *testing.T) {
		otherBudget := models.Budget{ID: uuid.New(), Name: "Travel", Amount: 800, UserID: f.user.ID}
		_, err := f.store.CreateBudget(context.Background(), otherBudget)
		require.NoError(t, err)
		stray := models.Expense{ID: uuid.New(), Name: "Hotel", Amount: 120, BudgetID: otherBudget.ID}
		_, err = f.store.CreateExpense(context.Background(), stray)
		require.NoError(t, err)

		rec := f.serveExpense(t, base+stray.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next should not run")
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("matching expense", func(t *testing.T) {
		rec := f.serveExpense(t, base+f.expense.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			expense := CurrentExpense(r)
			require.NotNil(t, expense)
			assert.Equal(t, f.expense.ID, expense.ID)
			w.WriteHeader(http.StatusOK)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
