package usecase

import (
	"context"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
	"github.com/rs/zerolog/log"
)

// RecordTransactionInput carries the fields of one wallet movement. UserID
// arrives already authenticated by the upstream identity layer.
type RecordTransactionInput struct {
	UserID         string
	Type           domain.TransactionType
	Amount         float64
	Cryptocurrency string
	WalletAddress  string
}

// RecordTransactionOutput returns the created record plus the balances
// exactly as produced by the atomic update, so a concurrent later
// transaction can never make them look stale.
type RecordTransactionOutput struct {
	Transaction domain.Transaction
	Balance     float64
	Holdings    map[string]float64
}

type RecordTransactionUseCase struct {
	accountRepository     gateway.AccountRepository
	transactionRepository gateway.TransactionRepository
	eventPublisher        gateway.EventPublisher
}

func NewRecordTransaction(
	accountRepo gateway.AccountRepository,
	transactionRepo gateway.TransactionRepository,
	publisher gateway.EventPublisher,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		accountRepository:     accountRepo,
		transactionRepository: transactionRepo,
		eventPublisher:        publisher,
	}
}

// Execute applies the movement to the account and appends the ledger record.
//
// The balance mutation is a single conditional update in the store: for a
// "sent" movement the match requires holdings[currency] >= amount, so the
// guard and the mutation are one indivisible step. No application-level lock
// is taken; a second lock layer without the store's cooperation could not
// close the overdraw race anyway.
func (u *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	// Fail fast before touching any state.
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if !domain.ValidAmount(input.Amount) {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidCurrency(input.Cryptocurrency) {
		return nil, domain.ErrInvalidCurrency
	}

	delta := input.Amount
	if input.Type == domain.TransactionSent {
		delta = -input.Amount
	}

	snapshot, err := u.accountRepository.ApplyDelta(ctx, input.UserID, input.Cryptocurrency, delta)
	if err != nil {
		return nil, err
	}

	transaction := domain.Transaction{
		UserID:         input.UserID,
		Type:           input.Type,
		Amount:         input.Amount,
		Cryptocurrency: input.Cryptocurrency,
		WalletAddress:  input.WalletAddress,
	}
	if err := u.transactionRepository.Create(ctx, &transaction); err != nil {
		// The balance moved but no record exists for it. Surface the error;
		// listings re-derive from records, so nothing points at a ghost.
		return nil, err
	}

	// The history list is an auxiliary index over the records. A failed push
	// leaves it lagging, never wrong: listings query records by owner.
	if err := u.accountRepository.AppendHistory(ctx, input.UserID, transaction.ID); err != nil {
		log.Warn().Err(err).
			Str("user_id", input.UserID).
			Str("transaction_id", transaction.ID).
			Msg("failed to append transaction to account history")
	}

	if u.eventPublisher != nil {
		event := map[string]interface{}{
			"transaction_id": transaction.ID,
			"user_id":        transaction.UserID,
			"type":           transaction.Type,
			"amount":         transaction.Amount,
			"cryptocurrency": transaction.Cryptocurrency,
			"wallet_address": transaction.WalletAddress,
			"timestamp":      transaction.Timestamp,
		}
		if err := u.eventPublisher.Publish(ctx, "wallet_events", "transaction.recorded", event); err != nil {
			// Audit is out-of-band; never fail the request over it.
			log.Error().Err(err).Msg("failed to publish transaction event")
		}
	}

	return &RecordTransactionOutput{
		Transaction: transaction,
		Balance:     snapshot.Balance,
		Holdings:    snapshot.Holdings,
	}, nil
}
