package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type transactionDocument struct {
	ID             string    `bson:"_id"`
	UserID         string    `bson:"user"`
	Type           string    `bson:"type"`
	Amount         float64   `bson:"amount"`
	Cryptocurrency string    `bson:"cryptocurrency"`
	WalletAddress  string    `bson:"wallet_address"`
	Timestamp      time.Time `bson:"timestamp"`
}

type TransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(client *mongo.Client, dbName string) *TransactionRepository {
	return &TransactionRepository{
		collection: client.Database(dbName).Collection("wallet_transactions"),
	}
}

// Create inserts the record and fills in the generated id and timestamp.
// Records are immutable from here on; there is no update path.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	doc := transactionDocument{
		ID:             uuid.NewString(),
		UserID:         transaction.UserID,
		Type:           string(transaction.Type),
		Amount:         transaction.Amount,
		Cryptocurrency: transaction.Cryptocurrency,
		WalletAddress:  transaction.WalletAddress,
		Timestamp:      time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	transaction.ID = doc.ID
	transaction.Timestamp = doc.Timestamp
	return nil
}

// ListByUser returns the user's records, newest first. Timestamp is the
// sole sort key.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []transactionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(docs))
	for _, doc := range docs {
		transactions = append(transactions, *toDomainTransaction(doc))
	}
	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var doc transactionDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return toDomainTransaction(doc), nil
}

func toDomainTransaction(doc transactionDocument) *domain.Transaction {
	return &domain.Transaction{
		ID:             doc.ID,
		UserID:         doc.UserID,
		Type:           domain.TransactionType(doc.Type),
		Amount:         doc.Amount,
		Cryptocurrency: doc.Cryptocurrency,
		WalletAddress:  doc.WalletAddress,
		Timestamp:      doc.Timestamp,
	}
}
