// Package memory provides an in-memory implementation of the storage
// interfaces. It backs handler tests and is handy for local development
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"CASHTRACKR_BACK-END/internal/models"
	"CASHTRACKR_BACK-END/internal/storage"
)

// Compile-time interface checks.
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.BudgetStore  = (*Store)(nil)
	_ storage.ExpenseStore = (*Store)(nil)
)

type budgetRecord struct {
	budget models.Budget
	seq    uint64
}

// Store keeps all records in maps guarded by a single mutex.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]models.User
	budgets  map[uuid.UUID]budgetRecord
	expenses map[uuid.UUID]models.Expense
	seq      uint64
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]models.User),
		budgets:  make(map[uuid.UUID]budgetRecord),
		expenses: make(map[uuid.UUID]models.Expense),
	}
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// CreateUser stores a new user, enforcing email uniqueness.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	now := time.Now()
	user.CreatedAt = stamp(user.CreatedAt)
	user.UpdatedAt = now
	s.users[user.ID] = user
	return user, nil
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// FindUserByEmail fetches a user by email.
func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindUserByToken fetches a user by one-time token. Empty tokens never match.
func (s *Store) FindUserByToken(_ context.Context, token string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if token == "" {
		return models.User{}, storage.ErrNotFound
	}
	for _, user := range s.users {
		if user.Token == token {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// UpdateUser replaces a stored user.
func (s *Store) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return storage.ErrNotFound
	}
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

// DeleteUser removes a user and cascades to budgets and expenses.
func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	for budgetID, rec := range s.budgets {
		if rec.budget.UserID == id {
			delete(s.budgets, budgetID)
			s.dropExpensesLocked(budgetID)
		}
	}
	return nil
}

// ListUsers returns all users in creation order.
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// CreateBudget stores a new budget.
func (s *Store) CreateBudget(_ context.Context, budget models.Budget) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	budget.CreatedAt = stamp(budget.CreatedAt)
	budget.UpdatedAt = now
	s.budgets[budget.ID] = budgetRecord{budget: budget, seq: s.nextSeq()}
	return budget, nil
}

// FindBudgetByID fetches a budget by id.
func (s *Store) FindBudgetByID(_ context.Context, id uuid.UUID) (models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.budgets[id]
	if !ok {
		return models.Budget{}, storage.ErrNotFound
	}
	return rec.budget, nil
}

// ListBudgetsByUser returns the user's budgets, newest first.
func (s *Store) ListBudgetsByUser(_ context.Context, userID uuid.UUID) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []budgetRecord
	for _, rec := range s.budgets {
		if rec.budget.UserID == userID {
			recs = append(recs, rec)
		}
	}
	// Insertion sequence breaks created_at ties deterministically.
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].budget.CreatedAt.Equal(recs[j].budget.CreatedAt) {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].budget.CreatedAt.After(recs[j].budget.CreatedAt)
	})
	budgets := make([]models.Budget, 0, len(recs))
	for _, rec := range recs {
		budgets = append(budgets, rec.budget)
	}
	return budgets, nil
}

// UpdateBudget replaces a stored budget.
func (s *Store) UpdateBudget(_ context.Context, budget models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.budgets[budget.ID]
	if !ok {
		return storage.ErrNotFound
	}
	budget.UserID = rec.budget.UserID
	budget.CreatedAt = rec.budget.CreatedAt
	budget.UpdatedAt = time.Now()
	rec.budget = budget
	s.budgets[budget.ID] = rec
	return nil
}

// DeleteBudget removes a budget and all of its expenses.
func (s *Store) DeleteBudget(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.budgets, id)
	s.dropExpensesLocked(id)
	return nil
}

func (s *Store) dropExpensesLocked(budgetID uuid.UUID) {
	for expenseID, expense := range s.expenses {
		if expense.BudgetID == budgetID {
			delete(s.expenses, expenseID)
		}
	}
}

// CreateExpense stores a new expense.
func (s *Store) CreateExpense(_ context.Context, expense models.Expense) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expense.CreatedAt = stamp(expense.CreatedAt)
	expense.UpdatedAt = now
	s.expenses[expense.ID] = expense
	return expense, nil
}

// FindExpenseByID fetches an expense by id.
func (s *Store) FindExpenseByID(_ context.Context, id uuid.UUID) (models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[id]
	if !ok {
		return models.Expense{}, storage.ErrNotFound
	}
	return expense, nil
}

// ListExpensesByBudget returns a budget's expenses in creation order.
func (s *Store) ListExpensesByBudget(_ context.Context, budgetID uuid.UUID) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []models.Expense
	for _, expense := range s.expenses {
		if expense.BudgetID == budgetID {
			expenses = append(expenses, expense)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.Before(expenses[j].CreatedAt)
	})
	return expenses, nil
}

// UpdateExpense replaces a stored expense.
func (s *Store) UpdateExpense(_ context.Context, expense models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.expenses[expense.ID]
	if !ok {
		return storage.ErrNotFound
	}
	expense.BudgetID = stored.BudgetID
	expense.CreatedAt = stored.CreatedAt
	expense.UpdatedAt = time.Now()
	s.expenses[expense.ID] = expense
	return nil
}

// DeleteExpense removes a single expense.
func (s *Store) DeleteExpense(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}
