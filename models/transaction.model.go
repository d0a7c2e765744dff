package models

import "time"

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

type TransactionCategory string

const (
	Salary      TransactionCategory = "salary"
	Freelance   TransactionCategory = "freelance"
	Business    TransactionCategory = "business"
	Investment  TransactionCategory = "investment"
	OtherIncome TransactionCategory = "other_income"

	Food           TransactionCategory = "food"
	Transportation TransactionCategory = "transportation"
	Housing        TransactionCategory = "housing"
	Utilities      TransactionCategory = "utilities"
	Entertainment  TransactionCategory = "entertainment"
	Healthcare     TransactionCategory = "healthcare"
	Education      TransactionCategory = "education"
	Shopping       TransactionCategory = "shopping"
	OtherExpense   TransactionCategory = "other_expense"
)

var IncomeCategories = []TransactionCategory{Salary, Freelance, Business, Investment, OtherIncome}

var ExpenseCategories = []TransactionCategory{
	Food, Transportation, Housing, Utilities, Entertainment, Healthcare, Education, Shopping, OtherExpense,
}

// Domain returns the transaction type a category belongs to.
func (c TransactionCategory) Domain() (TransactionType, bool) {
	for _, ic := range IncomeCategories {
		if c == ic {
			return Income, true
		}
	}
	for _, ec := range ExpenseCategories {
		if c == ec {
			return Expense, true
		}
	}
	return "", false
}

func (c TransactionCategory) Valid() bool {
	_, ok := c.Domain()
	return ok
}

// AllowedFor reports whether the category may be used with the given type.
func (c TransactionCategory) AllowedFor(t TransactionType) bool {
	d, ok := c.Domain()
	return ok && d == t
}

type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Transaction is a single income or expense entry owned by a user.
// NextOccurrence is only set for recurring entries with a cadence other than none.
type Transaction struct {
	ID             string              `json:"id" bson:"_id"`
	UserID         string              `json:"user_id" bson:"user_id"`
	Type           TransactionType     `json:"type" bson:"type"`
	Category       TransactionCategory `json:"category" bson:"category"`
	Amount         float64             `json:"amount" bson:"amount"`
	Currency       Currency            `json:"currency" bson:"currency"`
	Description    string              `json:"description" bson:"description"`
	Date           time.Time           `json:"date" bson:"date"`
	Tags           []string            `json:"tags" bson:"tags"`
	IsRecurring    bool                `json:"is_recurring" bson:"is_recurring"`
	RecurrenceType RecurrenceType      `json:"recurrence_type" bson:"recurrence_type"`
	NextOccurrence *time.Time          `json:"next_occurrence" bson:"next_occurrence,omitempty"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
}

// HasTag reports whether any of the given tags is attached to the transaction.
func (t Transaction) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

type TransactionCreate struct {
	Type           TransactionType     `json:"type"`
	Category       TransactionCategory `json:"category"`
	Amount         float64             `json:"amount"`
	Currency       Currency            `json:"currency"`
	Description    string              `json:"description"`
	Date           *RequestTime        `json:"date"`
	Tags           []string            `json:"tags"`
	IsRecurring    bool                `json:"is_recurring"`
	RecurrenceType RecurrenceType      `json:"recurrence_type"`
}

// TransactionUpdate carries the fields a user may change after creation.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Type        *TransactionType     `json:"type"`
	Category    *TransactionCategory `json:"category"`
	Amount      *float64             `json:"amount"`
	Description *string              `json:"description"`
	Date        *RequestTime         `json:"date"`
}

func (u TransactionUpdate) Empty() bool {
	return u.Type == nil && u.Category == nil && u.Amount == nil && u.Description == nil && u.Date == nil
}

type TransactionSearch struct {
	Query     string               `json:"query"`
	Category  *TransactionCategory `json:"category"`
	Type      *TransactionType     `json:"type"`
	StartDate *RequestTime         `json:"start_date"`
	EndDate   *RequestTime         `json:"end_date"`
	MinAmount *float64             `json:"min_amount"`
	MaxAmount *float64             `json:"max_amount"`
	Tags      []string             `json:"tags"`
}
