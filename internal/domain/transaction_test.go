package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionSent.Valid())
	assert.True(t, TransactionReceived.Valid())
	assert.False(t, TransactionType("swapped").Valid())
	assert.False(t, TransactionType("").Valid())
	assert.False(t, TransactionType("SENT").Valid())
}

func TestTransactionDelta(t *testing.T) {
	sent := Transaction{Type: TransactionSent, Amount: 2.5}
	received := Transaction{Type: TransactionReceived, Amount: 2.5}
	assert.Equal(t, -2.5, sent.Delta())
	assert.Equal(t, 2.5, received.Delta())
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(0.00000001))
	assert.True(t, ValidAmount(42))
	assert.False(t, ValidAmount(0))
	assert.False(t, ValidAmount(-1))
	assert.False(t, ValidAmount(math.NaN()))
	assert.False(t, ValidAmount(math.Inf(1)))
	assert.False(t, ValidAmount(math.Inf(-1)))
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("BTC"))
	assert.True(t, ValidCurrency("ETH2"))
	assert.False(t, ValidCurrency(""))
	assert.False(t, ValidCurrency("BTC.X"))
	assert.False(t, ValidCurrency(".BTC"))
	assert.False(t, ValidCurrency("$BTC"))
	// An inner "$" is not an operator escape, only a leading one is.
	assert.True(t, ValidCurrency("BT$C"))
}

func TestAccountCanDebit(t *testing.T) {
	account := Account{Holdings: map[string]float64{"BTC": 5}}
	assert.True(t, account.CanDebit("BTC", 5))
	assert.True(t, account.CanDebit("BTC", 2))
	assert.False(t, account.CanDebit("BTC", 5.1))
	assert.False(t, account.CanDebit("ETH", 0.1))
	assert.False(t, account.CanDebit("BTC", 0))
}
