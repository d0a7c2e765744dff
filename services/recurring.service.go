package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/recurrence"
	"github.com/UmangSachdeva/BudgetX/store"
)

// AutoGeneratedSuffix marks transactions materialized from a recurring one.
const AutoGeneratedSuffix = " (Auto-generated)"

// RecurringProcessor materializes due recurring transactions for all users.
//
// Nothing locks the sweep: two overlapping runs can both see the same due
// transaction before either advances it, so it must be scheduled at most once
// per due interval.
type RecurringProcessor struct {
	transactions store.TransactionStore
}

func NewRecurringProcessor(transactions store.TransactionStore) *RecurringProcessor {
	return &RecurringProcessor{transactions: transactions}
}

// Instance builds the one-off transaction for an occurrence of t.
func Instance(t models.Transaction, createdAt time.Time) models.Transaction {
	return models.Transaction{
		ID:             uuid.NewString(),
		UserID:         t.UserID,
		Type:           t.Type,
		Category:       t.Category,
		Amount:         t.Amount,
		Currency:       t.Currency,
		Description:    t.Description + AutoGeneratedSuffix,
		Date:           *t.NextOccurrence,
		Tags:           append([]string{}, t.Tags...),
		IsRecurring:    false,
		RecurrenceType: models.RecurrenceNone,
		CreatedAt:      createdAt,
	}
}

// ProcessDue creates one instance per recurring transaction due at now,
// advances each original from its own next occurrence, and returns how many
// were processed. The instances are inserted together after the sweep. When
// an advance fails, the instances of the originals already advanced are still
// inserted; the failed one stays due for the next run.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	due, err := p.transactions.FindDueRecurring(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find due recurring transactions: %w", err)
	}

	instances := make([]models.Transaction, 0, len(due))
	var advanceErr error
	for _, t := range due {
		if t.NextOccurrence == nil {
			continue
		}
		next, ok := recurrence.NextOccurrence(*t.NextOccurrence, t.RecurrenceType)
		if !ok {
			log.Printf("recurring transaction %s has cadence %q, skipping", t.ID, t.RecurrenceType)
			continue
		}
		if err := p.transactions.SetNextOccurrence(ctx, t.ID, next); err != nil {
			advanceErr = fmt.Errorf("advance recurring transaction %s: %w", t.ID, err)
			break
		}
		instances = append(instances, Instance(t, now.UTC()))
	}

	if err := p.transactions.InsertTransactions(ctx, instances); err != nil {
		return 0, fmt.Errorf("insert recurring instances: %w", err)
	}
	return len(instances), advanceErr
}
