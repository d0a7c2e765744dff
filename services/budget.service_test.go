package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/store"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newBudgetFixture() (*BudgetService, *TransactionService, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	budgets := NewBudgetService(mem, mem)
	budgets.now = clock
	txs := NewTransactionService(mem, budgets, nil)
	txs.now = clock
	return budgets, txs, mem
}

func TestMonthWindow(t *testing.T) {
	start, end, err := MonthWindow("2024-12")
	if err != nil {
		t.Fatalf("MonthWindow: %v", err)
	}
	if !start.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window = [%v, %v)", start, end)
	}

	for _, bad := range []string{"2024-13", "24-01", "March", "2024-1-1"} {
		_, _, err := MonthWindow(bad)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("MonthWindow(%q) err = %v, want validation error", bad, err)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		pct  float64
		want models.BudgetStatus
	}{
		{0, models.OnTrack},
		{79.99, models.OnTrack},
		{80, models.Warning},
		{100, models.Warning},
		{79.996, models.OnTrack},
		{100.004, models.OverBudget},
		{100.01, models.OverBudget},
		{150, models.OverBudget},
	}
	for _, tt := range tests {
		if got := Classify(tt.pct); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestProgressIdentities(t *testing.T) {
	for _, tt := range []struct{ budget, spent float64 }{
		{10000, 15000}, {5000, 1234.56}, {100, 0}, {0, 50}, {0, 0}, {333.33, 111.11},
	} {
		r := Progress(models.Budget{BudgetAmount: tt.budget}, tt.spent)
		if r.RemainingAmount != models.Sum(tt.budget, -tt.spent) {
			t.Errorf("budget %v spent %v: remaining = %v", tt.budget, tt.spent, r.RemainingAmount)
		}
		want := 0.0
		if tt.budget > 0 {
			want = models.Round2(tt.spent / tt.budget * 100)
		}
		if r.PercentageUsed != want {
			t.Errorf("budget %v spent %v: percentage = %v, want %v", tt.budget, tt.spent, r.PercentageUsed, want)
		}
	}
}

func TestProgressStatusUsesUnroundedPercentage(t *testing.T) {
	tests := []struct {
		budget, spent float64
		pct           float64
		status        models.BudgetStatus
	}{
		{1000, 1000.04, 100, models.OverBudget},
		{10000, 7999.6, 80, models.OnTrack},
		{1000, 1000, 100, models.Warning},
		{1000, 800, 80, models.Warning},
	}
	for _, tt := range tests {
		r := Progress(models.Budget{BudgetAmount: tt.budget}, tt.spent)
		if r.PercentageUsed != tt.pct || r.Status != tt.status {
			t.Errorf("budget %v spent %v: pct = %v status = %s, want %v %s", tt.budget, tt.spent, r.PercentageUsed, r.Status, tt.pct, tt.status)
		}
	}
}

func TestBudgetOverspendScenario(t *testing.T) {
	ctx := context.Background()
	budgets, txs, _ := newBudgetFixture()

	if _, err := budgets.CreateOrUpdate(ctx, "alice", models.BudgetCreate{Category: models.Food, BudgetAmount: 10000, Currency: models.INR}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if _, err := txs.Create(ctx, "alice", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 15000, Description: "feast"}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	progress, err := budgets.ProgressForMonth(ctx, "alice", "")
	if err != nil {
		t.Fatalf("ProgressForMonth: %v", err)
	}
	if len(progress) != 1 {
		t.Fatalf("got %d budgets, want 1", len(progress))
	}
	p := progress[0]
	if p.Month != "2024-03" || p.SpentAmount != 15000 || p.RemainingAmount != -5000 || p.PercentageUsed != 150 || p.Status != models.OverBudget {
		t.Errorf("unexpected progress %+v", p)
	}
}

func TestBudgetUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	budgets, _, mem := newBudgetFixture()

	first, err := budgets.CreateOrUpdate(ctx, "alice", models.BudgetCreate{Category: models.Food, BudgetAmount: 1000, Month: "2024-03"})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := budgets.CreateOrUpdate(ctx, "alice", models.BudgetCreate{Category: models.Food, BudgetAmount: 6000, Month: "2024-03", Currency: models.INR})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("id changed from %s to %s", first.ID, second.ID)
	}
	if second.BudgetAmount != 6000 {
		t.Errorf("amount = %v, want 6000", second.BudgetAmount)
	}
	stored, _ := mem.FindBudgets(ctx, "alice", "")
	if len(stored) != 1 || stored[0].BudgetAmount != 6000 {
		t.Errorf("stored budgets = %+v", stored)
	}
}

func TestBudgetSpentIsCurrencyScoped(t *testing.T) {
	ctx := context.Background()
	budgets, txs, _ := newBudgetFixture()

	_, _ = budgets.CreateOrUpdate(ctx, "alice", models.BudgetCreate{Category: models.Shopping, BudgetAmount: 200, Currency: models.USD})
	_, _ = budgets.CreateOrUpdate(ctx, "alice", models.BudgetCreate{Category: models.Shopping, BudgetAmount: 10000, Currency: models.INR})

	lastMonth := &models.RequestTime{Time: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)}
	for _, req := range []models.TransactionCreate{
		{Type: models.Expense, Category: models.Shopping, Amount: 100, Currency: models.USD},
		{Type: models.Expense, Category: models.Shopping, Amount: 5000, Currency: models.INR},
		{Type: models.Expense, Category: models.Shopping, Amount: 999, Currency: models.INR, Date: lastMonth},
		{Type: models.Expense, Category: models.Food, Amount: 999, Currency: models.INR},
	} {
		if _, err := txs.Create(ctx, "alice", req); err != nil {
			t.Fatalf("create %+v: %v", req, err)
		}
	}
	_, _ = txs.Create(ctx, "bob", models.TransactionCreate{Type: models.Expense, Category: models.Shopping, Amount: 777, Currency: models.INR})

	list, err := budgets.List(ctx, "alice", "2024-03")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d budgets, want 2", len(list))
	}
	for _, b := range list {
		if b.PercentageUsed != 50 {
			t.Errorf("%s budget: spent %v, percentage %v; want 50%%", b.Currency, b.SpentAmount, b.PercentageUsed)
		}
	}
}

func TestBudgetValidation(t *testing.T) {
	ctx := context.Background()
	budgets, _, _ := newBudgetFixture()

	for name, req := range map[string]models.BudgetCreate{
		"unknown category": {Category: "pets", BudgetAmount: 10},
		"income category":  {Category: models.Salary, BudgetAmount: 10},
		"negative amount":  {Category: models.Food, BudgetAmount: -1},
		"bad currency":     {Category: models.Food, BudgetAmount: 1, Currency: "EUR"},
		"bad month":        {Category: models.Food, BudgetAmount: 1, Month: "2024/03"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := budgets.CreateOrUpdate(ctx, "alice", req); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}

	if _, err := budgets.List(ctx, "alice", "not-a-month"); !errors.Is(err, ErrValidation) {
		t.Errorf("List with bad month: err = %v", err)
	}
}
