package usecase

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
)

type ListTransactionsUseCase struct {
	transactionRepository gateway.TransactionRepository
}

func NewListTransactions(transactionRepo gateway.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepository: transactionRepo,
	}
}

// Execute returns the caller's transactions, newest first. An account with
// no transactions yields an empty slice, not an error.
func (u *ListTransactionsUseCase) Execute(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return u.transactionRepository.ListByUser(ctx, userID)
}
