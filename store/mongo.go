package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UmangSachdeva/BudgetX/models"
)

const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
)

type MongoStore struct {
	client       *mongo.Client
	users        *mongo.Collection
	transactions *mongo.Collection
	budgets      *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:       client,
		users:        db.Collection(usersCollection),
		transactions: db.Collection(transactionsCollection),
		budgets:      db.Collection(budgetsCollection),
	}
}

// EnsureIndexes creates the unique and lookup indexes the store relies on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.transactions, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "is_recurring", Value: 1}, {Key: "next_occurrence", Value: 1}}},
		}},
		{s.budgets, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "category", Value: 1},
					{Key: "month", Value: 1},
					{Key: "currency", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		}},
	}
	for _, ix := range indexes {
		if _, err := ix.coll.Indexes().CreateMany(ctx, ix.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", ix.coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (s *MongoStore) InsertUser(ctx context.Context, u models.User) error {
	_, err := s.users.InsertOne(ctx, u)
	return translate(err)
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, translate(err)
}

func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	return u, translate(err)
}

func (s *MongoStore) UserExists(ctx context.Context, email, username string) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoStore) InsertTransaction(ctx context.Context, t models.Transaction) error {
	_, err := s.transactions.InsertOne(ctx, normalizeTags(t))
	return translate(err)
}

func (s *MongoStore) InsertTransactions(ctx context.Context, ts []models.Transaction) error {
	if len(ts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(ts))
	for _, t := range ts {
		docs = append(docs, normalizeTags(t))
	}
	_, err := s.transactions.InsertMany(ctx, docs)
	return translate(err)
}

// normalizeTags stores an empty array instead of null so $in queries and
// clients see a list.
func normalizeTags(t models.Transaction) models.Transaction {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

func (s *MongoStore) FindTransaction(ctx context.Context, id, userID string) (models.Transaction, error) {
	var t models.Transaction
	err := s.transactions.FindOne(ctx, ownedBy(id, userID)).Decode(&t)
	return t, translate(err)
}

func (s *MongoStore) FindTransactions(ctx context.Context, f TransactionFilter, opts FindOptions) ([]models.Transaction, error) {
	cursor, err := s.transactions.Find(ctx, transactionQuery(f), opts.Page.BuildFindOptions(sortSpec(opts.Sort)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) UpdateTransaction(ctx context.Context, id, userID string, p TransactionPatch) (models.Transaction, error) {
	set := patchSet(p)
	if len(set) == 0 {
		return s.FindTransaction(ctx, id, userID)
	}
	var t models.Transaction
	err := s.transactions.FindOneAndUpdate(ctx, ownedBy(id, userID), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	return t, translate(err)
}

func (s *MongoStore) DeleteTransaction(ctx context.Context, id, userID string) error {
	result, err := s.transactions.DeleteOne(ctx, ownedBy(id, userID))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) FindDueRecurring(ctx context.Context, now time.Time) ([]models.Transaction, error) {
	cursor, err := s.transactions.Find(ctx, dueRecurringQuery(now))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) SetNextOccurrence(ctx context.Context, id string, next time.Time) error {
	result, err := s.transactions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"next_occurrence": next}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertBudget is a single FindOneAndUpdate with upsert, so the natural key
// lookup and the write cannot interleave with another request. Two concurrent
// first inserts of the same key can still race on the unique index; the loser
// gets ErrDuplicate.
func (s *MongoStore) UpsertBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	update := bson.M{
		"$set": bson.M{"budget_amount": b.BudgetAmount},
		"$setOnInsert": bson.M{
			"_id":        b.ID,
			"created_at": b.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out models.Budget
	err := s.budgets.FindOneAndUpdate(ctx, budgetKey(b.UserID, b.Category, b.Month, b.Currency), update, opts).Decode(&out)
	return out, translate(err)
}

func (s *MongoStore) FindBudget(ctx context.Context, userID string, category models.TransactionCategory, month string, currency models.Currency) (models.Budget, error) {
	var b models.Budget
	err := s.budgets.FindOne(ctx, budgetKey(userID, category, month, currency)).Decode(&b)
	return b, translate(err)
}

func (s *MongoStore) FindBudgets(ctx context.Context, userID, month string) ([]models.Budget, error) {
	filter := bson.M{"user_id": userID}
	if month != "" {
		filter["month"] = month
	}
	cursor, err := s.budgets.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Budget
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
