package gateway

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
)

type TransactionRepository interface {
	// Create inserts the record and fills in the generated ID and Timestamp.
	Create(ctx context.Context, transaction *domain.Transaction) error

	// ListByUser returns every record owned by userID, newest first. It
	// queries by owner, deliberately ignoring the account's history pointer
	// list, so listings stay correct even when that list lags behind.
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)

	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
}
