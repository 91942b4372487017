package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// accountDocument is the persisted shape of a domain.Account. Holdings is a
// sub-document keyed by currency symbol, so "$inc" on "holdings.<SYM>" both
// mutates an existing entry and creates a missing one in the same atomic
// update.
type accountDocument struct {
	ID        string             `bson:"_id"`
	Balance   float64            `bson:"balance"`
	Holdings  map[string]float64 `bson:"holdings"`
	History   []string           `bson:"transaction_history"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// AccountRepository implements gateway.AccountRepository on MongoDB. All
// per-account ordering guarantees ride on the single-document atomicity of
// FindOneAndUpdate; no lock is held in this process.
type AccountRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(client *mongo.Client, dbName string) *AccountRepository {
	return &AccountRepository{
		collection: client.Database(dbName).Collection("accounts"),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	now := time.Now().UTC()
	doc := accountDocument{
		ID:        account.ID,
		Balance:   account.Balance,
		Holdings:  account.Holdings,
		History:   account.History,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Holdings == nil {
		doc.Holdings = map[string]float64{}
	}
	if doc.History == nil {
		doc.History = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var doc accountDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return toDomainAccount(doc), nil
}

// ApplyDelta is the guard-and-mutate step. The sufficient-funds check for a
// debit lives in the filter, so the store evaluates guard and mutation as
// one indivisible operation; nothing can interleave between them.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id, currency string, delta float64) (*gateway.BalanceSnapshot, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["holdings."+currency] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{
			"balance":              delta,
			"holdings." + currency: delta,
		},
		"$currentDate": bson.M{"updated_at": true},
	}

	// No upsert: a credit to a missing account must fail, never mint one.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.classifyNoMatch(ctx, id, delta)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	return &gateway.BalanceSnapshot{
		Balance:  doc.Balance,
		Holdings: doc.Holdings,
	}, nil
}

// classifyNoMatch splits "guard rejected the debit" from "no such account".
// The guard alone cannot tell them apart, so we re-check existence with a
// read; neither path has mutated anything.
func (r *AccountRepository) classifyNoMatch(ctx context.Context, id string, delta float64) error {
	if delta >= 0 {
		return domain.ErrAccountNotFound
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if count == 0 {
		return domain.ErrAccountNotFound
	}
	return domain.ErrInsufficientFunds
}

func (r *AccountRepository) AppendHistory(ctx context.Context, id, transactionID string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"transaction_history": transactionID}},
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction history: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toDomainAccount(doc accountDocument) *domain.Account {
	return &domain.Account{
		ID:        doc.ID,
		Balance:   doc.Balance,
		Holdings:  doc.Holdings,
		History:   doc.History,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
