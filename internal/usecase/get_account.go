package usecase

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
)

type GetAccountOutput struct {
	ID           string
	Balance      float64
	Holdings     map[string]float64
	Transactions []domain.Transaction
}

type GetAccountUseCase struct {
	accountRepository     gateway.AccountRepository
	transactionRepository gateway.TransactionRepository
}

func NewGetAccount(accountRepo gateway.AccountRepository, transactionRepo gateway.TransactionRepository) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepository:     accountRepo,
		transactionRepository: transactionRepo,
	}
}

// Execute returns the account with its transaction history resolved. The
// history comes from querying records by owner, not from dereferencing the
// account's pointer list, so it stays complete even while that list lags.
func (u *GetAccountUseCase) Execute(ctx context.Context, userID string) (*GetAccountOutput, error) {
	account, err := u.accountRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := u.transactionRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &GetAccountOutput{
		ID:           account.ID,
		Balance:      account.Balance,
		Holdings:     account.Holdings,
		Transactions: transactions,
	}, nil
}
