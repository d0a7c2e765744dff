package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/store"
)

const (
	warningThreshold = 80.0
	limitThreshold   = 100.0
)

type BudgetService struct {
	budgets      store.BudgetStore
	transactions store.TransactionStore
	now          func() time.Time
}

func NewBudgetService(budgets store.BudgetStore, transactions store.TransactionStore) *BudgetService {
	return &BudgetService{budgets: budgets, transactions: transactions, now: time.Now}
}

// CurrentMonth formats now as YYYY-MM in UTC.
func CurrentMonth(now time.Time) string {
	return now.UTC().Format(models.MonthLayout)
}

// MonthWindow returns [first of month, first of next month) in UTC.
func MonthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(models.MonthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("month", "expected YYYY-MM, got %q", month)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// Classify maps a percentage used to a budget status.
func Classify(percentageUsed float64) models.BudgetStatus {
	switch {
	case percentageUsed > limitThreshold:
		return models.OverBudget
	case percentageUsed < warningThreshold:
		return models.OnTrack
	}
	return models.Warning
}

// Progress derives the read-time fields of a budget from the amount spent.
// The status is classified on the unrounded percentage.
func Progress(b models.Budget, spent float64) models.BudgetResponse {
	spent = models.Round2(spent)
	return models.BudgetResponse{
		ID:              b.ID,
		Category:        b.Category,
		BudgetAmount:    b.BudgetAmount,
		Currency:        b.Currency,
		Month:           b.Month,
		SpentAmount:     spent,
		RemainingAmount: models.Sum(b.BudgetAmount, -spent),
		PercentageUsed:  models.Percent(spent, b.BudgetAmount),
		Status:          Classify(models.Ratio(spent, b.BudgetAmount)),
		CreatedAt:       b.CreatedAt,
	}
}

// Spent sums the user's expenses in one category and currency for a month.
func (s *BudgetService) Spent(ctx context.Context, userID string, category models.TransactionCategory, currency models.Currency, month string) (float64, error) {
	start, end, err := MonthWindow(month)
	if err != nil {
		return 0, err
	}
	expense := models.Expense
	txs, err := s.transactions.FindTransactions(ctx, store.TransactionFilter{
		UserID:   userID,
		Type:     &expense,
		Category: &category,
		Currency: &currency,
		From:     &start,
		Before:   &end,
	}, store.FindOptions{})
	if err != nil {
		return 0, fmt.Errorf("load expenses: %w", err)
	}
	var total models.Accumulator
	for _, t := range txs {
		total.Add(t.Amount)
	}
	return total.Value(), nil
}

func (s *BudgetService) withProgress(ctx context.Context, b models.Budget) (models.BudgetResponse, error) {
	spent, err := s.Spent(ctx, b.UserID, b.Category, b.Currency, b.Month)
	if err != nil {
		return models.BudgetResponse{}, err
	}
	return Progress(b, spent), nil
}

func (s *BudgetService) validate(req models.BudgetCreate) (models.BudgetCreate, error) {
	if d, ok := req.Category.Domain(); !ok {
		return req, invalid("category", "unknown category %q", req.Category)
	} else if d != models.Expense {
		return req, invalid("category", "budgets apply to expense categories, %q is %s", req.Category, d)
	}
	if req.BudgetAmount < 0 {
		return req, invalid("budget_amount", "must not be negative")
	}
	req.Currency = req.Currency.OrDefault()
	if !req.Currency.Valid() {
		return req, invalid("currency", "unsupported currency %q", req.Currency)
	}
	if req.Month == "" {
		req.Month = CurrentMonth(s.now())
	}
	if _, _, err := MonthWindow(req.Month); err != nil {
		return req, err
	}
	return req, nil
}

// CreateOrUpdate stores the budget for (user, category, month, currency),
// replacing the amount when one already exists, and returns it with fresh
// progress figures.
func (s *BudgetService) CreateOrUpdate(ctx context.Context, userID string, req models.BudgetCreate) (models.BudgetResponse, error) {
	req, err := s.validate(req)
	if err != nil {
		return models.BudgetResponse{}, err
	}
	b, err := s.budgets.UpsertBudget(ctx, models.Budget{
		ID:           uuid.NewString(),
		UserID:       userID,
		Category:     req.Category,
		BudgetAmount: req.BudgetAmount,
		Currency:     req.Currency,
		Month:        req.Month,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.BudgetResponse{}, fmt.Errorf("budget for %s %s %s was created concurrently: %w", req.Category, req.Month, req.Currency, ErrConflict)
		}
		return models.BudgetResponse{}, fmt.Errorf("save budget: %w", err)
	}
	return s.withProgress(ctx, b)
}

// List returns the user's budgets with progress, optionally for one month.
func (s *BudgetService) List(ctx context.Context, userID, month string) ([]models.BudgetResponse, error) {
	if month != "" {
		if _, _, err := MonthWindow(month); err != nil {
			return nil, err
		}
	}
	budgets, err := s.budgets.FindBudgets(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	sort.SliceStable(budgets, func(i, j int) bool {
		if budgets[i].Month != budgets[j].Month {
			return budgets[i].Month > budgets[j].Month
		}
		if budgets[i].Category != budgets[j].Category {
			return budgets[i].Category < budgets[j].Category
		}
		return budgets[i].Currency < budgets[j].Currency
	})

	out := make([]models.BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		r, err := s.withProgress(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ProgressForMonth reports every budget of one month, the current month by default.
func (s *BudgetService) ProgressForMonth(ctx context.Context, userID, month string) ([]models.BudgetProgress, error) {
	if month == "" {
		month = CurrentMonth(s.now())
	}
	budgets, err := s.List(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	out := make([]models.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, b.Progress())
	}
	return out, nil
}

// ForTransaction returns the budget covering an expense with its progress,
// or nil when the user has no such budget.
func (s *BudgetService) ForTransaction(ctx context.Context, t models.Transaction) (*models.BudgetResponse, error) {
	month := CurrentMonth(t.Date)
	b, err := s.budgets.FindBudget(ctx, t.UserID, t.Category, month, t.Currency)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r, err := s.withProgress(ctx, b)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
