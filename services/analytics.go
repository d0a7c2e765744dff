package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/UmangSachdeva/BudgetX/currency"
	"github.com/UmangSachdeva/BudgetX/models"
)

const (
	DefaultWindowDays   = 30
	monthlySummaryLimit = 12
	topCategoryLimit    = 5
	dayLayout           = "2006-01-02"
)

// incomeExpense accumulates the two sides of a bucket.
type incomeExpense struct {
	income, expense models.Accumulator
	count           int
}

func (b *incomeExpense) add(t models.Transaction) {
	switch t.Type {
	case models.Income:
		b.income.Add(t.Amount)
	case models.Expense:
		b.expense.Add(t.Amount)
	}
	b.count++
}

func (b *incomeExpense) net() float64 {
	return models.Sum(b.income.Value(), -b.expense.Value())
}

// MonthlySummaries groups transactions by UTC calendar month, newest first,
// and keeps the latest twelve months.
func MonthlySummaries(txs []models.Transaction) []models.MonthlySummary {
	type key struct {
		year  int
		month time.Month
	}
	groups := make(map[key]*incomeExpense)
	for _, t := range txs {
		d := t.Date.UTC()
		k := key{d.Year(), d.Month()}
		if groups[k] == nil {
			groups[k] = &incomeExpense{}
		}
		groups[k].add(t)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})
	if len(keys) > monthlySummaryLimit {
		keys = keys[:monthlySummaryLimit]
	}

	out := make([]models.MonthlySummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, models.MonthlySummary{
			Month:             fmt.Sprintf("%d-%02d", k.year, int(k.month)),
			Year:              k.year,
			TotalIncome:       g.income.Value(),
			TotalExpense:      g.expense.Value(),
			NetAmount:         g.net(),
			TransactionsCount: g.count,
		})
	}
	return out
}

// CategorySummaries totals each (category, type) pair.
func CategorySummaries(txs []models.Transaction) []models.CategorySummary {
	type key struct {
		category models.TransactionCategory
		typ      models.TransactionType
	}
	totals := make(map[key]*models.Accumulator)
	counts := make(map[key]int)
	for _, t := range txs {
		k := key{t.Category, t.Type}
		if totals[k] == nil {
			totals[k] = &models.Accumulator{}
		}
		totals[k].Add(t.Amount)
		counts[k]++
	}

	out := make([]models.CategorySummary, 0, len(totals))
	for k, total := range totals {
		out = append(out, models.CategorySummary{
			Category:          k.category,
			Type:              k.typ,
			TotalAmount:       total.Value(),
			TransactionsCount: counts[k],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailyTrends totals income and expense per UTC day, oldest first.
func DailyTrends(txs []models.Transaction) []models.DailyTrend {
	days := make(map[string]*incomeExpense)
	for _, t := range txs {
		d := t.Date.UTC().Format(dayLayout)
		if days[d] == nil {
			days[d] = &incomeExpense{}
		}
		days[d].add(t)
	}

	out := make([]models.DailyTrend, 0, len(days))
	for d, g := range days {
		out = append(out, models.DailyTrend{
			Date:    d,
			Income:  g.income.Value(),
			Expense: g.expense.Value(),
			Net:     g.net(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CategoryBreakdowns totals (category, type, currency) groups and expresses
// each as a share of its (type, currency) total.
func CategoryBreakdowns(txs []models.Transaction) []models.CategoryBreakdown {
	type bucket struct {
		typ models.TransactionType
		cur models.Currency
	}
	type key struct {
		category models.TransactionCategory
		bucket
	}
	groups := make(map[key]*models.Accumulator)
	counts := make(map[key]int)
	bucketTotals := make(map[bucket]*models.Accumulator)
	for _, t := range txs {
		b := bucket{t.Type, t.Currency}
		k := key{t.Category, b}
		if groups[k] == nil {
			groups[k] = &models.Accumulator{}
		}
		if bucketTotals[b] == nil {
			bucketTotals[b] = &models.Accumulator{}
		}
		groups[k].Add(t.Amount)
		bucketTotals[b].Add(t.Amount)
		counts[k]++
	}

	out := make([]models.CategoryBreakdown, 0, len(groups))
	for k, total := range groups {
		out = append(out, models.CategoryBreakdown{
			Category:          k.category,
			Type:              k.typ,
			Currency:          k.cur,
			TotalAmount:       total.Value(),
			Percentage:        models.Percent(total.Value(), bucketTotals[k.bucket].Value()),
			TransactionsCount: counts[k],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		if a.TotalAmount != b.TotalAmount {
			return a.TotalAmount > b.TotalAmount
		}
		return a.Category < b.Category
	})
	return out
}

// NormalizePeriod maps anything other than daily or weekly to monthly.
func NormalizePeriod(period string) models.TrendPeriod {
	switch p := models.TrendPeriod(period); p {
	case models.PeriodDaily, models.PeriodWeekly:
		return p
	}
	return models.PeriodMonthly
}

// BucketLabel names the trend bucket t falls into: YYYY-MM-DD, ISO YYYY-Www
// or YYYY-MM.
func BucketLabel(t time.Time, period models.TrendPeriod) string {
	t = t.UTC()
	switch period {
	case models.PeriodDaily:
		return t.Format(dayLayout)
	case models.PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format(models.MonthLayout)
}

// TrendPoints totals income and expense per (bucket, currency), ordered by
// bucket then currency.
func TrendPoints(txs []models.Transaction, period models.TrendPeriod) []models.TrendPoint {
	type key struct {
		label string
		cur   models.Currency
	}
	groups := make(map[key]*incomeExpense)
	for _, t := range txs {
		k := key{BucketLabel(t.Date, period), t.Currency}
		if groups[k] == nil {
			groups[k] = &incomeExpense{}
		}
		groups[k].add(t)
	}

	out := make([]models.TrendPoint, 0, len(groups))
	for k, g := range groups {
		out = append(out, models.TrendPoint{
			Date:     k.label,
			Income:   g.income.Value(),
			Expense:  g.expense.Value(),
			Net:      g.net(),
			Currency: k.cur,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}

// SpendingDirection compares expense totals of the first and second half of
// txs as given. The split is positional, so the result depends on the order
// the store returned the transactions in, not on their dates.
func SpendingDirection(txs []models.Transaction) models.TrendDirection {
	mid := len(txs) / 2
	var first, second models.Accumulator
	for i, t := range txs {
		if t.Type != models.Expense {
			continue
		}
		if i < mid {
			first.Add(t.Amount)
		} else {
			second.Add(t.Amount)
		}
	}
	switch f, s := first.Value(), second.Value(); {
	case s > f*1.1:
		return models.TrendIncreasing
	case s < f*0.9:
		return models.TrendDecreasing
	}
	return models.TrendStable
}

func perCurrency() map[models.Currency]float64 {
	m := make(map[models.Currency]float64, len(models.Currencies))
	for _, c := range models.Currencies {
		m[c] = 0
	}
	return m
}

// Insights summarises a window of transactions. days is the window length
// used for the daily average; conv normalises totals for the savings rate.
func Insights(txs []models.Transaction, days int, conv *currency.Converter) models.FinancialInsights {
	totals := make(map[models.Currency]*incomeExpense)
	for _, c := range models.Currencies {
		totals[c] = &incomeExpense{}
	}

	type catKey struct {
		category models.TransactionCategory
		cur      models.Currency
	}
	var catOrder []catKey
	catTotals := make(map[catKey]*models.Accumulator)
	dayTotals := make(map[string]*models.Accumulator)

	for _, t := range txs {
		if totals[t.Currency] == nil {
			totals[t.Currency] = &incomeExpense{}
		}
		totals[t.Currency].add(t)
		if t.Type != models.Expense {
			continue
		}

		k := catKey{t.Category, t.Currency}
		if catTotals[k] == nil {
			catTotals[k] = &models.Accumulator{}
			catOrder = append(catOrder, k)
		}
		catTotals[k].Add(t.Amount)

		d := t.Date.UTC().Format(dayLayout)
		if dayTotals[d] == nil {
			dayTotals[d] = &models.Accumulator{}
		}
		dayTotals[d].Add(t.Amount)
	}

	ins := models.FinancialInsights{
		Days:                  days,
		TotalIncome:           perCurrency(),
		TotalExpense:          perCurrency(),
		NetAmount:             perCurrency(),
		AverageDailyExpense:   perCurrency(),
		TopSpendingCategories: []models.CategorySpend{},
		SpendingTrend:         SpendingDirection(txs),
		ReferenceCurrency:     conv.Base(),
	}

	var incomeRef, expenseRef models.Accumulator
	for cur, g := range totals {
		in, ex := g.income.Value(), g.expense.Value()
		ins.TotalIncome[cur] = in
		ins.TotalExpense[cur] = ex
		ins.NetAmount[cur] = models.Sum(in, -ex)
		if days > 0 {
			ins.AverageDailyExpense[cur] = models.Round2(ex / float64(days))
		}
		incomeRef.Add(conv.Convert(in, cur, conv.Base()))
		expenseRef.Add(conv.Convert(ex, cur, conv.Base()))
	}
	ins.SavingsRate = models.Percent(models.Sum(incomeRef.Value(), -expenseRef.Value()), incomeRef.Value())

	for _, k := range catOrder {
		ins.TopSpendingCategories = append(ins.TopSpendingCategories, models.CategorySpend{
			Category: k.category,
			Amount:   catTotals[k].Value(),
			Currency: k.cur,
		})
	}
	sort.SliceStable(ins.TopSpendingCategories, func(i, j int) bool {
		return ins.TopSpendingCategories[i].Amount > ins.TopSpendingCategories[j].Amount
	})
	if len(ins.TopSpendingCategories) > topCategoryLimit {
		ins.TopSpendingCategories = ins.TopSpendingCategories[:topCategoryLimit]
	}

	for d, total := range dayTotals {
		v := total.Value()
		best := ins.HighestExpenseDay
		if best == nil || v > best.Amount || (v == best.Amount && d < best.Date) {
			ins.HighestExpenseDay = &models.ExpenseDay{Date: d, Amount: v}
		}
	}
	return ins
}
