package services

import (
	"context"
	"fmt"
	"time"

	"github.com/UmangSachdeva/BudgetX/currency"
	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/store"
)

// AnalyticsService computes read-only views over a user's transactions.
type AnalyticsService struct {
	transactions store.TransactionStore
	converter    *currency.Converter
	now          func() time.Time
}

func NewAnalyticsService(transactions store.TransactionStore, converter *currency.Converter) *AnalyticsService {
	return &AnalyticsService{transactions: transactions, converter: converter, now: time.Now}
}

// WindowDays returns days, or the default window for non-positive values.
func WindowDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return days
}

func (s *AnalyticsService) load(ctx context.Context, f store.TransactionFilter, sort store.SortOrder) ([]models.Transaction, error) {
	txs, err := s.transactions.FindTransactions(ctx, f, store.FindOptions{Sort: sort})
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return txs, nil
}

// window loads the user's transactions dated within [now-days, now].
func (s *AnalyticsService) window(ctx context.Context, userID string, days int, sort store.SortOrder) ([]models.Transaction, error) {
	now := s.now().UTC()
	from := now.AddDate(0, 0, -days)
	return s.load(ctx, store.TransactionFilter{UserID: userID, From: &from, Until: &now}, sort)
}

func (s *AnalyticsService) MonthlySummary(ctx context.Context, userID string) ([]models.MonthlySummary, error) {
	txs, err := s.load(ctx, store.TransactionFilter{UserID: userID}, store.SortNatural)
	if err != nil {
		return nil, err
	}
	return MonthlySummaries(txs), nil
}

func (s *AnalyticsService) CategorySummary(ctx context.Context, userID string) ([]models.CategorySummary, error) {
	txs, err := s.load(ctx, store.TransactionFilter{UserID: userID}, store.SortNatural)
	if err != nil {
		return nil, err
	}
	return CategorySummaries(txs), nil
}

func (s *AnalyticsService) DailyTrends(ctx context.Context, userID string, days int) ([]models.DailyTrend, error) {
	txs, err := s.window(ctx, userID, WindowDays(days), store.SortDateAsc)
	if err != nil {
		return nil, err
	}
	return DailyTrends(txs), nil
}

// CategoryBreakdown covers the current calendar month only.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, userID string) ([]models.CategoryBreakdown, error) {
	start, end, err := MonthWindow(CurrentMonth(s.now()))
	if err != nil {
		return nil, err
	}
	txs, err := s.load(ctx, store.TransactionFilter{UserID: userID, From: &start, Before: &end}, store.SortNatural)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdowns(txs), nil
}

// SpendingTrends buckets the window by period; unknown periods become monthly.
func (s *AnalyticsService) SpendingTrends(ctx context.Context, userID, period string, days int) (models.SpendingTrends, error) {
	p := NormalizePeriod(period)
	days = WindowDays(days)
	txs, err := s.window(ctx, userID, days, store.SortDateAsc)
	if err != nil {
		return models.SpendingTrends{}, err
	}
	return models.SpendingTrends{Period: p, Days: days, Data: TrendPoints(txs, p)}, nil
}

// FinancialInsights reads the window in the store's natural order; the
// spending trend direction depends on that order.
func (s *AnalyticsService) FinancialInsights(ctx context.Context, userID string, days int) (models.FinancialInsights, error) {
	days = WindowDays(days)
	txs, err := s.window(ctx, userID, days, store.SortNatural)
	if err != nil {
		return models.FinancialInsights{}, err
	}
	return Insights(txs, days, s.converter), nil
}

// MonthTransactions lists one calendar month of transactions, oldest first.
// An empty month means the current one.
func (s *AnalyticsService) MonthTransactions(ctx context.Context, userID, month string) ([]models.Transaction, error) {
	if month == "" {
		month = CurrentMonth(s.now())
	}
	start, end, err := MonthWindow(month)
	if err != nil {
		return nil, err
	}
	txs, err := s.load(ctx, store.TransactionFilter{UserID: userID, From: &start, Before: &end}, store.SortDateAsc)
	if err != nil {
		return nil, err
	}
	return nonNil(txs), nil
}
