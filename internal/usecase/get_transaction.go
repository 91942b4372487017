package usecase

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
)

type GetTransactionUseCase struct {
	transactionRepository gateway.TransactionRepository
}

func NewGetTransaction(transactionRepo gateway.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepository: transactionRepo,
	}
}

// Execute fetches one transaction by id. Ownership is checked here, after
// the lookup: a record that exists but belongs to someone else is
// ErrForbidden, not ErrTransactionNotFound. The caller's identity must
// already be authenticated upstream.
func (u *GetTransactionUseCase) Execute(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	transaction, err := u.transactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.UserID != userID {
		return nil, domain.ErrForbidden
	}

	return transaction, nil
}
