package store

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/UmangSachdeva/BudgetX/models"
)

func ownedBy(id, userID string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}

func budgetKey(userID string, category models.TransactionCategory, month string, currency models.Currency) bson.M {
	return bson.M{
		"user_id":  userID,
		"category": category,
		"month":    month,
		"currency": currency,
	}
}

func dueRecurringQuery(now time.Time) bson.M {
	return bson.M{
		"is_recurring":    true,
		"next_occurrence": bson.M{"$lte": now},
	}
}

func sortSpec(order SortOrder) bson.D {
	switch order {
	case SortDateDesc:
		return bson.D{{Key: "date", Value: -1}}
	case SortDateAsc:
		return bson.D{{Key: "date", Value: 1}}
	}
	return nil
}

// transactionQuery translates a filter into a Mongo query document.
func transactionQuery(f TransactionFilter) bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if f.Type != nil {
		q["type"] = *f.Type
	}
	if f.Category != nil {
		q["category"] = *f.Category
	}
	if f.Currency != nil {
		q["currency"] = *f.Currency
	}

	date := bson.M{}
	if f.From != nil {
		date["$gte"] = *f.From
	}
	if f.Until != nil {
		date["$lte"] = *f.Until
	}
	if f.Before != nil {
		date["$lt"] = *f.Before
	}
	if len(date) > 0 {
		q["date"] = date
	}

	amount := bson.M{}
	if f.MinAmount != nil {
		amount["$gte"] = *f.MinAmount
	}
	if f.MaxAmount != nil {
		amount["$lte"] = *f.MaxAmount
	}
	if len(amount) > 0 {
		q["amount"] = amount
	}

	if f.Text != "" {
		q["description"] = bson.M{"$regex": regexp.QuoteMeta(f.Text), "$options": "i"}
	}
	if len(f.AnyTags) > 0 {
		q["tags"] = bson.M{"$in": f.AnyTags}
	}
	return q
}

func patchSet(p TransactionPatch) bson.M {
	set := bson.M{}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Amount != nil {
		set["amount"] = *p.Amount
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.NextOccurrence != nil {
		set["next_occurrence"] = *p.NextOccurrence
	}
	return set
}
