package gateway

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
)

// BalanceSnapshot is the post-mutation state returned by the store's atomic
// update. It must come from the update itself, never from a re-read: a
// concurrent transaction could make a re-read stale.
type BalanceSnapshot struct {
	Balance  float64
	Holdings map[string]float64
}

// AccountRepository is the contract for account persistence. The usecases
// only talk to this; they do not know the store is MongoDB.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// ApplyDelta applies the signed delta to the account's aggregate balance
	// and to its holding of currency, as one indivisible guard-and-mutate:
	// a negative delta only matches when holdings[currency] >= -delta, so
	// two concurrent debits can never jointly overdraw a holding. A positive
	// delta creates the currency entry when missing; the account itself is
	// never created here.
	//
	// Returns domain.ErrInsufficientFunds when the guard rejects a debit and
	// domain.ErrAccountNotFound when no account has that id. Nothing is
	// mutated on any error path.
	ApplyDelta(ctx context.Context, id, currency string, delta float64) (*BalanceSnapshot, error)

	// AppendHistory pushes a transaction id onto the account's history list.
	// This is a second, independent write; see RecordTransactionUseCase for
	// how its failure is handled.
	AppendHistory(ctx context.Context, id, transactionID string) error
}
