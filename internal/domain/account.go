package domain

import "time"

// Account holds a user's aggregate balance and per-currency holdings.
// Clean Architecture: this entity knows nothing about JSON or BSON.
//
// Balance is kept as a plain additive mirror of every delta ever applied to
// Holdings; it equals the algebraic sum of the holdings only while all
// currencies share one unit. That is a bookkeeping simplification, not a
// financial invariant.
type Account struct {
	ID        string
	Balance   float64
	Holdings  map[string]float64
	History   []string // transaction ids, append-only, insertion order
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holding returns the current amount held of a currency (zero when the
// account never touched it).
func (a *Account) Holding(currency string) float64 {
	return a.Holdings[currency]
}

// CanDebit validates a debit against the in-memory snapshot. The persistent
// store re-checks this atomically; this helper exists so callers can reject
// obviously doomed debits without a round-trip.
func (a *Account) CanDebit(currency string, amount float64) bool {
	return ValidAmount(amount) && a.Holdings[currency] >= amount
}
