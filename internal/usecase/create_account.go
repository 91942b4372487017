package usecase

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
)

type CreateAccountInput struct {
	ID       string
	Balance  float64
	Holdings map[string]float64
}

type CreateAccountOutput struct {
	ID       string
	Balance  float64
	Holdings map[string]float64
}

type CreateAccountUseCase struct {
	accountRepository gateway.AccountRepository
}

func NewCreateAccount(accountRepo gateway.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepository: accountRepo,
	}
}

// Execute provisions the account document the ledger mutates. A single
// insert, so no transaction management is needed here.
func (u *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	holdings := input.Holdings
	if holdings == nil {
		holdings = map[string]float64{}
	}
	for currency, amount := range holdings {
		if !domain.ValidCurrency(currency) {
			return nil, domain.ErrInvalidCurrency
		}
		if amount < 0 {
			return nil, domain.ErrInvalidAmount
		}
	}

	account := &domain.Account{
		ID:       input.ID,
		Balance:  input.Balance,
		Holdings: holdings,
		History:  []string{},
	}
	if err := u.accountRepository.Create(ctx, account); err != nil {
		return nil, err
	}

	return &CreateAccountOutput{
		ID:       account.ID,
		Balance:  account.Balance,
		Holdings: account.Holdings,
	}, nil
}
