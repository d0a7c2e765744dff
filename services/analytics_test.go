package services

import (
	"testing"
	"time"

	"github.com/UmangSachdeva/BudgetX/currency"
	"github.com/UmangSachdeva/BudgetX/models"
)

func entry(typ models.TransactionType, cat models.TransactionCategory, amount float64, cur models.Currency, date time.Time) models.Transaction {
	return models.Transaction{Type: typ, Category: cat, Amount: amount, Currency: cur, Date: date}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestMonthlySummaries(t *testing.T) {
	txs := []models.Transaction{
		entry(models.Income, models.Salary, 50000, models.INR, day(2024, 3, 1)),
		entry(models.Expense, models.Food, 2000, models.INR, day(2024, 3, 2)),
		entry(models.Expense, models.Food, 10.1, models.INR, day(2023, 12, 2)),
		entry(models.Expense, models.Food, 20.2, models.INR, day(2023, 12, 3)),
	}
	got := MonthlySummaries(txs)
	if len(got) != 2 {
		t.Fatalf("got %d months, want 2", len(got))
	}

	march := got[0]
	if march.Month != "2024-03" || march.Year != 2024 || march.TotalIncome != 50000 || march.TotalExpense != 2000 || march.NetAmount != 48000 || march.TransactionsCount != 2 {
		t.Errorf("march = %+v", march)
	}
	dec := got[1]
	if dec.Month != "2023-12" || dec.TotalExpense != 30.3 || dec.NetAmount != -30.3 {
		t.Errorf("december = %+v", dec)
	}
}

func TestMonthlySummariesKeepsLatestTwelve(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 15; i++ {
		txs = append(txs, entry(models.Expense, models.Food, 1, models.INR, day(2023, time.January, 1).AddDate(0, i, 0)))
	}
	got := MonthlySummaries(txs)
	if len(got) != 12 {
		t.Fatalf("got %d months, want 12", len(got))
	}
	if got[0].Month != "2024-03" || got[11].Month != "2023-04" {
		t.Errorf("range = %s..%s", got[0].Month, got[11].Month)
	}
}

func TestCategorySummaries(t *testing.T) {
	txs := []models.Transaction{
		entry(models.Expense, models.Food, 100, models.INR, day(2024, 3, 1)),
		entry(models.Expense, models.Food, 50, models.USD, day(2024, 1, 1)),
		entry(models.Income, models.Salary, 900, models.INR, day(2024, 3, 1)),
	}
	got := CategorySummaries(txs)
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Category != models.Food || got[0].TotalAmount != 150 || got[0].TransactionsCount != 2 {
		t.Errorf("food = %+v", got[0])
	}
	if got[1].Category != models.Salary || got[1].Type != models.Income {
		t.Errorf("salary = %+v", got[1])
	}
}

func TestDailyTrends(t *testing.T) {
	txs := []models.Transaction{
		entry(models.Expense, models.Food, 30, models.INR, day(2024, 3, 5)),
		entry(models.Income, models.Salary, 100, models.INR, day(2024, 3, 3)),
		entry(models.Expense, models.Food, 20, models.INR, day(2024, 3, 3)),
	}
	got := DailyTrends(txs)
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Date != "2024-03-03" || got[0].Income != 100 || got[0].Expense != 20 || got[0].Net != 80 {
		t.Errorf("first day = %+v", got[0])
	}
	if got[1].Date != "2024-03-05" || got[1].Income != 0 || got[1].Net != -30 {
		t.Errorf("second day = %+v", got[1])
	}
}

func TestCategoryBreakdowns(t *testing.T) {
	txs := []models.Transaction{
		entry(models.Expense, models.Food, 300, models.INR, day(2024, 3, 1)),
		entry(models.Expense, models.Housing, 700, models.INR, day(2024, 3, 1)),
		entry(models.Expense, models.Food, 10, models.USD, day(2024, 3, 1)),
		entry(models.Income, models.Salary, 1, models.INR, day(2024, 3, 1)),
		entry(models.Income, models.Freelance, 2, models.INR, day(2024, 3, 1)),
	}
	got := CategoryBreakdowns(txs)
	want := map[models.TransactionCategory]map[models.Currency]float64{
		models.Food:      {models.INR: 30, models.USD: 100},
		models.Housing:   {models.INR: 70},
		models.Salary:    {models.INR: 33.33},
		models.Freelance: {models.INR: 66.67},
	}
	if len(got) != 5 {
		t.Fatalf("got %d groups: %+v", len(got), got)
	}
	for _, b := range got {
		if b.Percentage != want[b.Category][b.Currency] {
			t.Errorf("%s/%s percentage = %v, want %v", b.Category, b.Currency, b.Percentage, want[b.Category][b.Currency])
		}
	}
	if got[0].Category != models.Housing {
		t.Errorf("largest INR expense should come first, got %+v", got[0])
	}
}

func TestNormalizePeriod(t *testing.T) {
	for in, want := range map[string]models.TrendPeriod{
		"daily":   models.PeriodDaily,
		"weekly":  models.PeriodWeekly,
		"monthly": models.PeriodMonthly,
		"bogus":   models.PeriodMonthly,
		"":        models.PeriodMonthly,
		"DAILY":   models.PeriodMonthly,
	} {
		if got := NormalizePeriod(in); got != want {
			t.Errorf("NormalizePeriod(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestBucketLabel(t *testing.T) {
	d := day(2024, 12, 30)
	if got := BucketLabel(d, models.PeriodDaily); got != "2024-12-30" {
		t.Errorf("daily = %s", got)
	}
	if got := BucketLabel(d, models.PeriodWeekly); got != "2025-W01" {
		t.Errorf("weekly = %s", got)
	}
	if got := BucketLabel(d, models.PeriodMonthly); got != "2024-12" {
		t.Errorf("monthly = %s", got)
	}
}

func TestTrendPointsPerCurrency(t *testing.T) {
	txs := []models.Transaction{
		entry(models.Income, models.Salary, 100, models.USD, day(2024, 3, 4)),
		entry(models.Expense, models.Food, 40, models.INR, day(2024, 3, 5)),
		entry(models.Expense, models.Food, 10, models.USD, day(2024, 3, 6)),
	}
	got := TrendPoints(txs, models.PeriodWeekly)
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Currency != models.INR || got[0].Date != "2024-W10" || got[0].Net != -40 {
		t.Errorf("INR bucket = %+v", got[0])
	}
	if got[1].Currency != models.USD || got[1].Net != 90 {
		t.Errorf("USD bucket = %+v", got[1])
	}
	for _, p := range got {
		if p.Net != p.Income-p.Expense {
			t.Errorf("net mismatch in %+v", p)
		}
	}
}

func TestSpendingDirection(t *testing.T) {
	exp := func(a float64) models.Transaction {
		return entry(models.Expense, models.Food, a, models.INR, day(2024, 3, 1))
	}
	tests := []struct {
		name string
		txs  []models.Transaction
		want models.TrendDirection
	}{
		{"empty", nil, models.TrendStable},
		{"increasing", []models.Transaction{exp(100), exp(100), exp(130), exp(100)}, models.TrendIncreasing},
		{"decreasing", []models.Transaction{exp(100), exp(100), exp(50), exp(100)}, models.TrendDecreasing},
		{"within ten percent", []models.Transaction{exp(100), exp(105)}, models.TrendStable},
		{"odd length puts the middle in the second half", []models.Transaction{exp(100), exp(50), exp(50)}, models.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpendingDirection(tt.txs); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("split follows list order not dates", func(t *testing.T) {
		late := entry(models.Expense, models.Food, 500, models.INR, day(2024, 3, 20))
		early := entry(models.Expense, models.Food, 100, models.INR, day(2024, 3, 1))
		if got := SpendingDirection([]models.Transaction{late, early}); got != models.TrendDecreasing {
			t.Errorf("got %s, want decreasing", got)
		}
	})
}

func TestInsights(t *testing.T) {
	conv := currency.NewConverter(currency.DefaultRates(), models.INR)
	txs := []models.Transaction{
		entry(models.Income, models.Salary, 100000, models.INR, day(2024, 3, 1)),
		entry(models.Expense, models.Housing, 20000, models.INR, day(2024, 3, 2)),
		entry(models.Expense, models.Food, 3000, models.INR, day(2024, 3, 2)),
		entry(models.Expense, models.Food, 2000, models.INR, day(2024, 3, 5)),
		entry(models.Expense, models.Shopping, 100, models.USD, day(2024, 3, 6)),
	}
	ins := Insights(txs, 10, conv)

	if ins.TotalIncome[models.INR] != 100000 || ins.TotalIncome[models.USD] != 0 {
		t.Errorf("total income = %v", ins.TotalIncome)
	}
	if ins.TotalExpense[models.INR] != 25000 || ins.TotalExpense[models.USD] != 100 {
		t.Errorf("total expense = %v", ins.TotalExpense)
	}
	if ins.NetAmount[models.INR] != 75000 || ins.NetAmount[models.USD] != -100 {
		t.Errorf("net = %v", ins.NetAmount)
	}
	if ins.AverageDailyExpense[models.INR] != 2500 || ins.AverageDailyExpense[models.USD] != 10 {
		t.Errorf("average daily expense = %v", ins.AverageDailyExpense)
	}
	if ins.HighestExpenseDay == nil || ins.HighestExpenseDay.Date != "2024-03-02" || ins.HighestExpenseDay.Amount != 23000 {
		t.Errorf("highest expense day = %+v", ins.HighestExpenseDay)
	}
	// (100000 - 25000 - 100*83.12) / 100000
	if ins.SavingsRate != 66.69 {
		t.Errorf("savings rate = %v, want 66.69", ins.SavingsRate)
	}
	if len(ins.TopSpendingCategories) != 3 || ins.TopSpendingCategories[0].Category != models.Housing || ins.TopSpendingCategories[1].Amount != 5000 {
		t.Errorf("top categories = %+v", ins.TopSpendingCategories)
	}
	if ins.ReferenceCurrency != models.INR {
		t.Errorf("reference currency = %s", ins.ReferenceCurrency)
	}
}

func TestInsightsEmpty(t *testing.T) {
	ins := Insights(nil, 30, currency.NewConverter(currency.DefaultRates(), models.INR))
	if ins.SavingsRate != 0 || ins.HighestExpenseDay != nil || ins.SpendingTrend != models.TrendStable {
		t.Errorf("empty insights = %+v", ins)
	}
	for _, c := range models.Currencies {
		if _, ok := ins.TotalIncome[c]; !ok {
			t.Errorf("missing %s in total_income", c)
		}
	}
	if ins.TopSpendingCategories == nil {
		t.Error("top categories should be an empty list")
	}
}

func TestInsightsTopFive(t *testing.T) {
	var txs []models.Transaction
	for i, c := range models.ExpenseCategories {
		txs = append(txs, entry(models.Expense, c, float64(10*(i+1)), models.INR, day(2024, 3, 1)))
	}
	ins := Insights(txs, 30, currency.NewConverter(currency.DefaultRates(), models.INR))
	if len(ins.TopSpendingCategories) != 5 {
		t.Fatalf("got %d top categories", len(ins.TopSpendingCategories))
	}
	if ins.TopSpendingCategories[0].Category != models.OtherExpense || ins.TopSpendingCategories[0].Amount != 90 {
		t.Errorf("top = %+v", ins.TopSpendingCategories[0])
	}
}
