package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/UmangSachdeva/BudgetX/events"
	"github.com/UmangSachdeva/BudgetX/helpers"
	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/store"
)

func at(t time.Time) *models.RequestTime {
	return &models.RequestTime{Time: t}
}

func ptr[T any](v T) *T { return &v }

func TestCreateTransactionDefaults(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	got, err := svc.Create(context.Background(), "u1", models.TransactionCreate{
		Type:     models.Expense,
		Category: models.Food,
		Amount:   12.5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "" || got.UserID != "u1" {
		t.Errorf("identity = %q/%q", got.ID, got.UserID)
	}
	if got.Currency != models.INR {
		t.Errorf("currency = %s, want INR", got.Currency)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags = %#v, want empty list", got.Tags)
	}
	if !got.Date.Equal(fixedNow) || !got.CreatedAt.Equal(fixedNow) {
		t.Errorf("date = %v created = %v", got.Date, got.CreatedAt)
	}
	if got.RecurrenceType != models.RecurrenceNone || got.NextOccurrence != nil {
		t.Errorf("recurrence = %s next = %v", got.RecurrenceType, got.NextOccurrence)
	}
}

func TestCreateRecurringSetsNextOccurrence(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	date := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	got, err := svc.Create(context.Background(), "u1", models.TransactionCreate{
		Type:           models.Expense,
		Category:       models.Housing,
		Amount:         15000,
		Date:           at(date),
		IsRecurring:    true,
		RecurrenceType: models.RecurrenceMonthly,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)
	if got.NextOccurrence == nil || !got.NextOccurrence.Equal(want) {
		t.Errorf("next occurrence = %v, want %v", got.NextOccurrence, want)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	_, svc, mem := newBudgetFixture()
	tests := []struct {
		name  string
		req   models.TransactionCreate
		field string
	}{
		{"income category on expense", models.TransactionCreate{Type: models.Expense, Category: models.Salary, Amount: 1}, "category"},
		{"unknown category", models.TransactionCreate{Type: models.Income, Category: "lottery", Amount: 1}, "category"},
		{"unknown type", models.TransactionCreate{Type: "transfer", Category: models.Food, Amount: 1}, "type"},
		{"negative amount", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: -1}, "amount"},
		{"unsupported currency", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 1, Currency: "EUR"}, "currency"},
		{"unknown recurrence", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 1, IsRecurring: true, RecurrenceType: "invalid_type"}, "recurrence_type"},
		{"cadence without is_recurring", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 1, RecurrenceType: models.RecurrenceDaily}, "recurrence_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}

	all, _ := mem.FindTransactions(context.Background(), store.TransactionFilter{}, store.FindOptions{})
	if len(all) != 0 {
		t.Errorf("rejected requests stored %d transactions", len(all))
	}
}

func seed(t *testing.T, svc *TransactionService, userID string, reqs ...models.TransactionCreate) []models.Transaction {
	t.Helper()
	out := make([]models.Transaction, 0, len(reqs))
	for _, r := range reqs {
		tx, err := svc.Create(context.Background(), userID, r)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, tx)
	}
	return out
}

func TestListIsNewestFirstAndUserScoped(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	seed(t, svc, "u1",
		models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 1, Date: at(day(2024, 3, 1))},
		models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 2, Date: at(day(2024, 3, 10))},
		models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 3, Date: at(day(2024, 3, 5))},
	)
	seed(t, svc, "u2", models.TransactionCreate{Type: models.Income, Category: models.Salary, Amount: 9})

	got, err := svc.List(context.Background(), "u1", helpers.Paginate{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 || got[0].Amount != 2 || got[1].Amount != 3 || got[2].Amount != 1 {
		t.Errorf("list = %+v", got)
	}

	page, err := svc.List(context.Background(), "u1", helpers.Paginate{Limit: 1, Skip: 1})
	if err != nil {
		t.Fatalf("List page: %v", err)
	}
	if len(page) != 1 || page[0].Amount != 3 {
		t.Errorf("page = %+v", page)
	}

	empty, err := svc.List(context.Background(), "nobody", helpers.Paginate{})
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty list = %#v, %v", empty, err)
	}
}

func TestSearch(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	seed(t, svc, "u1",
		models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 250, Description: "Weekly Groceries", Date: at(day(2024, 3, 2)), Tags: []string{"home"}},
		models.TransactionCreate{Type: models.Expense, Category: models.Transportation, Amount: 40, Description: "Metro card", Date: at(day(2024, 3, 3)), Tags: []string{"work"}},
		models.TransactionCreate{Type: models.Income, Category: models.Salary, Amount: 50000, Description: "March salary", Date: at(day(2024, 3, 1))},
	)

	tests := []struct {
		name string
		q    models.TransactionSearch
		want []float64
	}{
		{"text is case insensitive", models.TransactionSearch{Query: "groceries"}, []float64{250}},
		{"type", models.TransactionSearch{Type: ptr(models.Expense)}, []float64{40, 250}},
		{"category", models.TransactionSearch{Category: ptr(models.Salary)}, []float64{50000}},
		{"amount range", models.TransactionSearch{MinAmount: ptr(30.0), MaxAmount: ptr(300.0)}, []float64{40, 250}},
		{"date range is inclusive", models.TransactionSearch{StartDate: at(day(2024, 3, 1)), EndDate: at(day(2024, 3, 2))}, []float64{250, 50000}},
		{"any tag", models.TransactionSearch{Tags: []string{"work", "travel"}}, []float64{40}},
		{"everything", models.TransactionSearch{}, []float64{40, 250, 50000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(context.Background(), "u1", tt.q)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, tx := range got {
				if tx.Amount != tt.want[i] {
					t.Errorf("result %d amount = %v, want %v", i, tx.Amount, tt.want[i])
				}
			}
		})
	}

	_, err := svc.Search(context.Background(), "u1", models.TransactionSearch{Type: ptr(models.TransactionType("gift"))})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad type err = %v", err)
	}
}

func TestUpdateTransaction(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	tx := seed(t, svc, "u1", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 10, Description: "lunch"})[0]

	got, err := svc.Update(context.Background(), "u1", tx.ID, models.TransactionUpdate{Amount: ptr(12.75), Description: ptr("team lunch")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Amount != 12.75 || got.Description != "team lunch" || got.Category != models.Food {
		t.Errorf("updated = %+v", got)
	}

	_, err = svc.Update(context.Background(), "u1", tx.ID, models.TransactionUpdate{Category: ptr(models.Salary)})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("cross-domain category err = %v", err)
	}
	_, err = svc.Update(context.Background(), "u1", tx.ID, models.TransactionUpdate{Type: ptr(models.Income), Category: ptr(models.Freelance)})
	if err != nil {
		t.Errorf("switching type and category together: %v", err)
	}
	_, err = svc.Update(context.Background(), "u1", tx.ID, models.TransactionUpdate{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("empty update err = %v", err)
	}
	_, err = svc.Update(context.Background(), "u2", tx.ID, models.TransactionUpdate{Amount: ptr(1.0)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update err = %v", err)
	}
}

func TestUpdateDateMovesNextOccurrence(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	tx := seed(t, svc, "u1", models.TransactionCreate{
		Type: models.Expense, Category: models.Housing, Amount: 900,
		Date: at(day(2024, 3, 1)), IsRecurring: true, RecurrenceType: models.RecurrenceMonthly,
	})[0]

	got, err := svc.Update(context.Background(), "u1", tx.ID, models.TransactionUpdate{Date: at(day(2024, 3, 10))})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if want := day(2024, 4, 10); got.NextOccurrence == nil || !got.NextOccurrence.Equal(want) {
		t.Errorf("next occurrence = %v, want %v", got.NextOccurrence, want)
	}

	oneOff := seed(t, svc, "u1", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 1})[0]
	moved, err := svc.Update(context.Background(), "u1", oneOff.ID, models.TransactionUpdate{Date: at(day(2024, 3, 2))})
	if err != nil {
		t.Fatalf("Update one-off: %v", err)
	}
	if moved.NextOccurrence != nil {
		t.Errorf("one-off gained next occurrence %v", moved.NextOccurrence)
	}
}

func TestDeleteTransactionIsUserScoped(t *testing.T) {
	_, svc, _ := newBudgetFixture()
	tx := seed(t, svc, "u1", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 10})[0]

	if err := svc.Delete(context.Background(), "u2", tx.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", tx.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestCreateExpensePublishesBudgetAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := events.NewMockPublisher(ctrl)

	mem := store.NewMemoryStore()
	budgets := NewBudgetService(mem, mem)
	budgets.now = clock
	svc := NewTransactionService(mem, budgets, publisher)
	svc.now = clock

	if _, err := budgets.CreateOrUpdate(context.Background(), "u1", models.BudgetCreate{Category: models.Food, BudgetAmount: 1000, Month: "2024-03"}); err != nil {
		t.Fatalf("CreateOrUpdate: %v", err)
	}

	// 500 of 1000 stays on track and raises nothing.
	seed(t, svc, "u1", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 500})

	var got events.BudgetAlert
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a events.BudgetAlert) error {
			got = a
			return errors.New("broker down")
		}).
		Times(1)

	tx := seed(t, svc, "u1", models.TransactionCreate{Type: models.Expense, Category: models.Food, Amount: 700})[0]
	if got.Status != models.OverBudget || got.TransactionID != tx.ID || got.SpentAmount != 1200 || got.PercentageUsed != 120 {
		t.Errorf("alert = %+v", got)
	}

	// Income never touches budgets.
	seed(t, svc, "u1", models.TransactionCreate{Type: models.Income, Category: models.Salary, Amount: 10})
}
