package usecase

import (
	"context"
	"testing"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTransactions(t *testing.T) {
	transactionRepo := newFakeTransactionRepository()
	uc := NewListTransactions(transactionRepo)

	for _, seed := range []struct {
		user     string
		currency string
	}{
		{"alice", "BTC"},
		{"bob", "ETH"},
		{"alice", "ETH"},
		{"alice", "BTC"},
	} {
		require.NoError(t, transactionRepo.Create(context.Background(), &domain.Transaction{
			UserID:         seed.user,
			Type:           domain.TransactionReceived,
			Amount:         1,
			Cryptocurrency: seed.currency,
			WalletAddress:  "addr",
		}))
	}

	t.Run("newest first, owner only", func(t *testing.T) {
		transactions, err := uc.Execute(context.Background(), "alice")
		require.NoError(t, err)
		require.Len(t, transactions, 3)
		for i, transaction := range transactions {
			assert.Equal(t, "alice", transaction.UserID)
			if i > 0 {
				assert.False(t, transaction.Timestamp.After(transactions[i-1].Timestamp),
					"timestamps must be non-increasing")
			}
		}
	})

	t.Run("no records is an empty slice, not an error", func(t *testing.T) {
		transactions, err := uc.Execute(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})
}
