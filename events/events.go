// Package events publishes budget alerts raised when an expense pushes a
// budget into the warning or over-budget band.
package events

import (
	"context"
	"log"
	"time"

	"github.com/UmangSachdeva/BudgetX/models"
)

type BudgetAlert struct {
	UserID         string                     `json:"user_id"`
	BudgetID       string                     `json:"budget_id"`
	TransactionID  string                     `json:"transaction_id"`
	Category       models.TransactionCategory `json:"category"`
	Currency       models.Currency            `json:"currency"`
	Month          string                     `json:"month"`
	Status         models.BudgetStatus        `json:"status"`
	BudgetAmount   float64                    `json:"budget_amount"`
	SpentAmount    float64                    `json:"spent_amount"`
	PercentageUsed float64                    `json:"percentage_used"`
	Message        string                     `json:"message"`
	RaisedAt       time.Time                  `json:"raised_at"`
}

//go:generate mockgen -source=events.go -destination=mock_publisher.go -package=events

type Publisher interface {
	Publish(ctx context.Context, alert BudgetAlert) error
	Close() error
}

// NewBudgetAlert builds an alert for a budget that is no longer on track.
// It reports false when there is nothing to raise.
func NewBudgetAlert(b models.BudgetResponse, userID, transactionID string, at time.Time) (BudgetAlert, bool) {
	var msg string
	switch b.Status {
	case models.OverBudget:
		msg = "You have exceeded your " + string(b.Category) + " budget for " + b.Month
	case models.Warning:
		msg = "You are nearing your " + string(b.Category) + " budget for " + b.Month
	default:
		return BudgetAlert{}, false
	}
	return BudgetAlert{
		UserID:         userID,
		BudgetID:       b.ID,
		TransactionID:  transactionID,
		Category:       b.Category,
		Currency:       b.Currency,
		Month:          b.Month,
		Status:         b.Status,
		BudgetAmount:   b.BudgetAmount,
		SpentAmount:    b.SpentAmount,
		PercentageUsed: b.PercentageUsed,
		Message:        msg,
		RaisedAt:       at.UTC(),
	}, true
}

// LogPublisher writes alerts to the process log. It is used when no broker
// is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, alert BudgetAlert) error {
	log.Printf("budget alert: user=%s budget=%s status=%s used=%.2f%%", alert.UserID, alert.BudgetID, alert.Status, alert.PercentageUsed)
	return nil
}

func (LogPublisher) Close() error { return nil }
