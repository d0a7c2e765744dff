package models

import "time"

type BudgetStatus string

const (
	OnTrack    BudgetStatus = "on_track"
	Warning    BudgetStatus = "warning"
	OverBudget BudgetStatus = "over_budget"
)

// MonthLayout is the format of Budget.Month.
const MonthLayout = "2006-01"

// Budget is a spending limit for one expense category in one month and currency.
// Spent, remaining and percentage are derived at read time and never stored.
type Budget struct {
	ID           string              `json:"id" bson:"_id"`
	UserID       string              `json:"user_id" bson:"user_id"`
	Category     TransactionCategory `json:"category" bson:"category"`
	BudgetAmount float64             `json:"budget_amount" bson:"budget_amount"`
	Currency     Currency            `json:"currency" bson:"currency"`
	Month        string              `json:"month" bson:"month"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
}

type BudgetCreate struct {
	Category     TransactionCategory `json:"category"`
	BudgetAmount float64             `json:"budget_amount"`
	Currency     Currency            `json:"currency"`
	Month        string              `json:"month"`
}

// BudgetResponse is a stored budget together with its derived progress.
type BudgetResponse struct {
	ID              string              `json:"id"`
	Category        TransactionCategory `json:"category"`
	BudgetAmount    float64             `json:"budget_amount"`
	Currency        Currency            `json:"currency"`
	Month           string              `json:"month"`
	SpentAmount     float64             `json:"spent_amount"`
	RemainingAmount float64             `json:"remaining_amount"`
	PercentageUsed  float64             `json:"percentage_used"`
	Status          BudgetStatus        `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
}

type BudgetProgress struct {
	ID              string              `json:"id"`
	Category        TransactionCategory `json:"category"`
	Month           string              `json:"month"`
	Currency        Currency            `json:"currency"`
	BudgetAmount    float64             `json:"budget_amount"`
	SpentAmount     float64             `json:"spent_amount"`
	RemainingAmount float64             `json:"remaining_amount"`
	PercentageUsed  float64             `json:"percentage_used"`
	Status          BudgetStatus        `json:"status"`
}

func (b BudgetResponse) Progress() BudgetProgress {
	return BudgetProgress{
		ID:              b.ID,
		Category:        b.Category,
		Month:           b.Month,
		Currency:        b.Currency,
		BudgetAmount:    b.BudgetAmount,
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.RemainingAmount,
		PercentageUsed:  b.PercentageUsed,
		Status:          b.Status,
	}
}
