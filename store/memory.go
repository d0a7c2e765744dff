package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/UmangSachdeva/BudgetX/models"
)

// MemoryStore keeps everything in process memory in insertion order. It backs
// the tests and STORE_DRIVER=memory for local runs.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []models.User
	transactions []models.Transaction
	budgets      []models.Budget
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func (s *MemoryStore) InsertUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ID == u.ID || strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) UserExists(_ context.Context, email, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func cloneTransaction(t models.Transaction) models.Transaction {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	if t.NextOccurrence != nil {
		next := *t.NextOccurrence
		t.NextOccurrence = &next
	}
	return t
}

func (s *MemoryStore) InsertTransaction(_ context.Context, t models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.transactions {
		if existing.ID == t.ID {
			return ErrDuplicate
		}
	}
	s.transactions = append(s.transactions, cloneTransaction(t))
	return nil
}

func (s *MemoryStore) InsertTransactions(ctx context.Context, ts []models.Transaction) error {
	for _, t := range ts {
		if err := s.InsertTransaction(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// indexOf finds a transaction regardless of owner. Only the recurring
// sweep looks transactions up this way.
func (s *MemoryStore) indexOf(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ownedIndex finds a transaction belonging to userID. An empty userID
// owns nothing.
func (s *MemoryStore) ownedIndex(id, userID string) int {
	if userID == "" {
		return -1
	}
	i := s.indexOf(id)
	if i < 0 || s.transactions[i].UserID != userID {
		return -1
	}
	return i
}

func (s *MemoryStore) FindTransaction(_ context.Context, id, userID string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.ownedIndex(id, userID); i >= 0 {
		return cloneTransaction(s.transactions[i]), nil
	}
	return models.Transaction{}, ErrNotFound
}

func (s *MemoryStore) FindTransactions(_ context.Context, f TransactionFilter, opts FindOptions) ([]models.Transaction, error) {
	s.mu.RLock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if f.Matches(t) {
			out = append(out, cloneTransaction(t))
		}
	}
	s.mu.RUnlock()

	switch opts.Sort {
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	}
	start, end := opts.Page.Bounds(len(out))
	return out[start:end], nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, id, userID string, p TransactionPatch) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ownedIndex(id, userID)
	if i < 0 {
		return models.Transaction{}, ErrNotFound
	}
	p.apply(&s.transactions[i])
	return cloneTransaction(s.transactions[i]), nil
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ownedIndex(id, userID)
	if i < 0 {
		return ErrNotFound
	}
	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
	return nil
}

func (s *MemoryStore) FindDueRecurring(_ context.Context, now time.Time) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if t.IsRecurring && t.NextOccurrence != nil && !t.NextOccurrence.After(now) {
			out = append(out, cloneTransaction(t))
		}
	}
	return out, nil
}

func (s *MemoryStore) SetNextOccurrence(_ context.Context, id string, next time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.transactions[i].NextOccurrence = &next
	return nil
}

func sameBudgetKey(a, b models.Budget) bool {
	return a.UserID == b.UserID && a.Category == b.Category && a.Month == b.Month && a.Currency == b.Currency
}

func (s *MemoryStore) UpsertBudget(_ context.Context, b models.Budget) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if sameBudgetKey(s.budgets[i], b) {
			s.budgets[i].BudgetAmount = b.BudgetAmount
			return s.budgets[i], nil
		}
	}
	s.budgets = append(s.budgets, b)
	return b, nil
}

func (s *MemoryStore) FindBudget(_ context.Context, userID string, category models.TransactionCategory, month string, currency models.Currency) (models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := models.Budget{UserID: userID, Category: category, Month: month, Currency: currency}
	for _, b := range s.budgets {
		if sameBudgetKey(b, key) {
			return b, nil
		}
	}
	return models.Budget{}, ErrNotFound
}

func (s *MemoryStore) FindBudgets(_ context.Context, userID, month string) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && (month == "" || b.Month == month) {
			out = append(out, b)
		}
	}
	return out, nil
}
