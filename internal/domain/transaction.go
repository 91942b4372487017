package domain

import (
	"math"
	"strings"
	"time"
)

// TransactionType is the direction of a wallet transaction. The sign of the
// balance delta is implied by the type; Amount always stores the magnitude.
type TransactionType string

const (
	TransactionSent     TransactionType = "sent"
	TransactionReceived TransactionType = "received"
)

// Valid reports whether t is one of the two known directions.
func (t TransactionType) Valid() bool {
	return t == TransactionSent || t == TransactionReceived
}

// Transaction is one immutable ledger entry. It is created exactly once,
// after the account mutation it describes has committed, and never updated.
type Transaction struct {
	ID             string
	UserID         string
	Type           TransactionType
	Amount         float64
	Cryptocurrency string
	WalletAddress  string
	Timestamp      time.Time
}

// Delta returns the signed balance change this transaction represents.
func (t *Transaction) Delta() float64 {
	if t.Type == TransactionSent {
		return -t.Amount
	}
	return t.Amount
}

// ValidAmount reports whether amount is usable as a transaction magnitude:
// finite and strictly positive.
func ValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}

// ValidCurrency reports whether symbol is usable as a holdings key. The
// store addresses holdings by field path, so a "." would silently address a
// nested field and a "$" prefix would read as an operator; both must be
// rejected before any update is built.
func ValidCurrency(symbol string) bool {
	return symbol != "" && !strings.Contains(symbol, ".") && !strings.HasPrefix(symbol, "$")
}
