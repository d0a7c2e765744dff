package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/UmangSachdeva/BudgetX/events"
	"github.com/UmangSachdeva/BudgetX/helpers"
	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/recurrence"
	"github.com/UmangSachdeva/BudgetX/store"
)

// MaxListLimit caps list and search results.
const MaxListLimit = 1000

type TransactionService struct {
	transactions store.TransactionStore
	budgets      *BudgetService
	publisher    events.Publisher
	now          func() time.Time
}

func NewTransactionService(transactions store.TransactionStore, budgets *BudgetService, publisher events.Publisher) *TransactionService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &TransactionService{
		transactions: transactions,
		budgets:      budgets,
		publisher:    publisher,
		now:          time.Now,
	}
}

func validAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func validCategory(c models.TransactionCategory, t models.TransactionType) error {
	if !t.Valid() {
		return invalid("type", "unknown transaction type %q", t)
	}
	d, ok := c.Domain()
	if !ok {
		return invalid("category", "unknown category %q", c)
	}
	if d != t {
		return invalid("category", "%q is not an %s category", c, t)
	}
	return nil
}

// build validates a create request and turns it into a transaction.
func (s *TransactionService) build(userID string, req models.TransactionCreate) (models.Transaction, error) {
	if err := validCategory(req.Category, req.Type); err != nil {
		return models.Transaction{}, err
	}
	if err := validAmount("amount", req.Amount); err != nil {
		return models.Transaction{}, err
	}
	cur := req.Currency.OrDefault()
	if !cur.Valid() {
		return models.Transaction{}, invalid("currency", "unsupported currency %q", req.Currency)
	}
	cadence, err := recurrence.Parse(string(req.RecurrenceType))
	if err != nil {
		return models.Transaction{}, invalid("recurrence_type", "%v", err)
	}
	if !req.IsRecurring && cadence != models.RecurrenceNone {
		return models.Transaction{}, invalid("recurrence_type", "%s requires is_recurring", cadence)
	}

	now := s.now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.Time
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	t := models.Transaction{
		ID:             uuid.NewString(),
		UserID:         userID,
		Type:           req.Type,
		Category:       req.Category,
		Amount:         req.Amount,
		Currency:       cur,
		Description:    req.Description,
		Date:           date,
		Tags:           tags,
		IsRecurring:    req.IsRecurring,
		RecurrenceType: cadence,
		CreatedAt:      now,
	}
	if next, ok := recurrence.NextOccurrence(date, cadence); ok && req.IsRecurring {
		t.NextOccurrence = &next
	}
	return t, nil
}

func (s *TransactionService) Create(ctx context.Context, userID string, req models.TransactionCreate) (models.Transaction, error) {
	t, err := s.build(userID, req)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := s.transactions.InsertTransaction(ctx, t); err != nil {
		return models.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	if t.Type == models.Expense {
		s.alertBudget(ctx, t)
	}
	return t, nil
}

// alertBudget publishes an alert when t leaves its budget off track. Failures
// are logged and never fail the request.
func (s *TransactionService) alertBudget(ctx context.Context, t models.Transaction) {
	if s.budgets == nil {
		return
	}
	b, err := s.budgets.ForTransaction(ctx, t)
	if err != nil {
		log.Printf("budget check for transaction %s: %v", t.ID, err)
		return
	}
	if b == nil {
		return
	}
	alert, ok := events.NewBudgetAlert(*b, t.UserID, t.ID, s.now())
	if !ok {
		return
	}
	if err := s.publisher.Publish(ctx, alert); err != nil {
		log.Printf("publish budget alert for %s: %v", b.ID, err)
	}
}

// List returns the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID string, page helpers.Paginate) ([]models.Transaction, error) {
	if page.Limit <= 0 || page.Limit > MaxListLimit {
		page.Limit = MaxListLimit
	}
	txs, err := s.transactions.FindTransactions(ctx, store.TransactionFilter{UserID: userID}, store.FindOptions{
		Sort: store.SortDateDesc,
		Page: page,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return nonNil(txs), nil
}

// Search applies every given criterion; results are newest first.
func (s *TransactionService) Search(ctx context.Context, userID string, q models.TransactionSearch) ([]models.Transaction, error) {
	f := store.TransactionFilter{
		UserID:    userID,
		Text:      q.Query,
		From:      q.StartDate.Ptr(),
		Until:     q.EndDate.Ptr(),
		MinAmount: q.MinAmount,
		MaxAmount: q.MaxAmount,
		AnyTags:   q.Tags,
	}
	if q.Type != nil {
		if !q.Type.Valid() {
			return nil, invalid("type", "unknown transaction type %q", *q.Type)
		}
		f.Type = q.Type
	}
	if q.Category != nil {
		if !q.Category.Valid() {
			return nil, invalid("category", "unknown category %q", *q.Category)
		}
		f.Category = q.Category
	}

	txs, err := s.transactions.FindTransactions(ctx, f, store.FindOptions{
		Sort: store.SortDateDesc,
		Page: helpers.Paginate{Limit: MaxListLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("search transactions: %w", err)
	}
	return nonNil(txs), nil
}

// Update changes the editable fields of a transaction the user owns.
func (s *TransactionService) Update(ctx context.Context, userID, id string, u models.TransactionUpdate) (models.Transaction, error) {
	if u.Empty() {
		return models.Transaction{}, invalid("", "no fields to update")
	}
	current, err := s.transactions.FindTransaction(ctx, id, userID)
	if err != nil {
		return models.Transaction{}, notFound("transaction", err)
	}

	typ, cat := current.Type, current.Category
	if u.Type != nil {
		typ = *u.Type
	}
	if u.Category != nil {
		cat = *u.Category
	}
	if err := validCategory(cat, typ); err != nil {
		return models.Transaction{}, err
	}
	if u.Amount != nil {
		if err := validAmount("amount", *u.Amount); err != nil {
			return models.Transaction{}, err
		}
	}

	patch := store.TransactionPatch{
		Type:        u.Type,
		Category:    u.Category,
		Amount:      u.Amount,
		Description: u.Description,
		Date:        u.Date.Ptr(),
	}
	// A recurring series restarts from its new date.
	if patch.Date != nil && current.IsRecurring {
		if next, ok := recurrence.NextOccurrence(*patch.Date, current.RecurrenceType); ok {
			patch.NextOccurrence = &next
		}
	}

	updated, err := s.transactions.UpdateTransaction(ctx, id, userID, patch)
	if err != nil {
		return models.Transaction{}, notFound("transaction", err)
	}
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.transactions.DeleteTransaction(ctx, id, userID); err != nil {
		return notFound("transaction", err)
	}
	return nil
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil(txs []models.Transaction) []models.Transaction {
	if txs == nil {
		return []models.Transaction{}
	}
	return txs
}
