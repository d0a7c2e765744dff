package store

import (
	"strings"

	"github.com/UmangSachdeva/BudgetX/models"
)

// Matches evaluates the filter in memory with the same semantics as the
// Mongo query built by transactionQuery.
func (f TransactionFilter) Matches(t models.Transaction) bool {
	if f.UserID != "" && t.UserID != f.UserID {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Currency != nil && t.Currency != *f.Currency {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.Until != nil && t.Date.After(*f.Until) {
		return false
	}
	if f.Before != nil && !t.Date.Before(*f.Before) {
		return false
	}
	if f.MinAmount != nil && t.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && t.Amount > *f.MaxAmount {
		return false
	}
	if f.Text != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Text)) {
		return false
	}
	if len(f.AnyTags) > 0 && !t.HasTag(f.AnyTags...) {
		return false
	}
	return true
}

func (p TransactionPatch) apply(t *models.Transaction) {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.NextOccurrence != nil {
		next := *p.NextOccurrence
		t.NextOccurrence = &next
	}
}
