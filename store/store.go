// Package store persists users, transactions and budgets.
//
// Every transaction and budget query is scoped by user id except the
// recurring sweep, which scans all users.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/UmangSachdeva/BudgetX/helpers"
	"github.com/UmangSachdeva/BudgetX/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type SortOrder int

const (
	// SortNatural keeps the store's own order, which is insertion order.
	SortNatural SortOrder = iota
	SortDateDesc
	SortDateAsc
)

// TransactionFilter is an AND of all set fields.
type TransactionFilter struct {
	UserID    string
	Type      *models.TransactionType
	Category  *models.TransactionCategory
	Currency  *models.Currency
	From      *time.Time // inclusive
	Until     *time.Time // inclusive
	Before    *time.Time // exclusive
	MinAmount *float64
	MaxAmount *float64
	// Text is a case-insensitive substring of the description.
	Text string
	// AnyTags matches transactions carrying at least one of the tags.
	AnyTags []string
}

type FindOptions struct {
	Sort SortOrder
	Page helpers.Paginate
}

// TransactionPatch lists the user-editable fields; nil fields are kept.
// NextOccurrence follows a moved date of a recurring transaction.
type TransactionPatch struct {
	Type           *models.TransactionType
	Category       *models.TransactionCategory
	Amount         *float64
	Description    *string
	Date           *time.Time
	NextOccurrence *time.Time
}

type UserStore interface {
	InsertUser(ctx context.Context, u models.User) error
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	UserExists(ctx context.Context, email, username string) (bool, error)
}

type TransactionStore interface {
	InsertTransaction(ctx context.Context, t models.Transaction) error
	InsertTransactions(ctx context.Context, ts []models.Transaction) error
	FindTransaction(ctx context.Context, id, userID string) (models.Transaction, error)
	FindTransactions(ctx context.Context, f TransactionFilter, opts FindOptions) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, id, userID string, p TransactionPatch) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID string) error
	// FindDueRecurring returns recurring transactions of every user whose
	// next occurrence is at or before now.
	FindDueRecurring(ctx context.Context, now time.Time) ([]models.Transaction, error)
	SetNextOccurrence(ctx context.Context, id string, next time.Time) error
}

type BudgetStore interface {
	// UpsertBudget stores b keyed by (user, category, month, currency). An
	// existing record keeps its id and creation time and takes the new amount.
	UpsertBudget(ctx context.Context, b models.Budget) (models.Budget, error)
	FindBudget(ctx context.Context, userID string, category models.TransactionCategory, month string, currency models.Currency) (models.Budget, error)
	// FindBudgets lists a user's budgets; an empty month means all months.
	FindBudgets(ctx context.Context, userID, month string) ([]models.Budget, error)
}

type Store interface {
	UserStore
	TransactionStore
	BudgetStore
	Close(ctx context.Context) error
}
