package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/gateway"
)

// fakeAccountRepository mimics the store's single-document atomicity with a
// mutex: the guard check and the mutation happen under one critical section,
// exactly the contract ApplyDelta promises.
type fakeAccountRepository struct {
	mu         sync.Mutex
	accounts   map[string]*domain.Account
	historyErr error
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: map[string]*domain.Account{}}
}

func (f *fakeAccountRepository) seed(id string, balance float64, holdings map[string]float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cloned := map[string]float64{}
	for currency, amount := range holdings {
		cloned[currency] = amount
	}
	f.accounts[id] = &domain.Account{
		ID:       id,
		Balance:  balance,
		Holdings: cloned,
		History:  []string{},
	}
}

func (f *fakeAccountRepository) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.ID]; ok {
		return domain.ErrAccountExists
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	snapshot := *account
	snapshot.Holdings = cloneHoldings(account.Holdings)
	return &snapshot, nil
}

func (f *fakeAccountRepository) ApplyDelta(_ context.Context, id, currency string, delta float64) (*gateway.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if delta < 0 && account.Holdings[currency] < -delta {
		return nil, domain.ErrInsufficientFunds
	}

	account.Balance += delta
	account.Holdings[currency] += delta

	return &gateway.BalanceSnapshot{
		Balance:  account.Balance,
		Holdings: cloneHoldings(account.Holdings),
	}, nil
}

func (f *fakeAccountRepository) AppendHistory(_ context.Context, id, transactionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return f.historyErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.History = append(account.History, transactionID)
	return nil
}

func cloneHoldings(holdings map[string]float64) map[string]float64 {
	cloned := map[string]float64{}
	for currency, amount := range holdings {
		cloned[currency] = amount
	}
	return cloned
}

type fakeTransactionRepository struct {
	mu           sync.Mutex
	transactions []domain.Transaction
	createErr    error
	seq          int
	clock        time.Time
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{clock: time.Now().UTC()}
}

func (f *fakeTransactionRepository) Create(_ context.Context, transaction *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	transaction.ID = fmt.Sprintf("tx-%d", f.seq)
	// Strictly increasing timestamps so the descending sort is decidable.
	f.clock = f.clock.Add(time.Millisecond)
	transaction.Timestamp = f.clock
	f.transactions = append(f.transactions, *transaction)
	return nil
}

func (f *fakeTransactionRepository) ListByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Transaction, 0)
	for _, transaction := range f.transactions {
		if transaction.UserID == userID {
			result = append(result, transaction)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (f *fakeTransactionRepository) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, transaction := range f.transactions {
		if transaction.ID == id {
			found := transaction
			return &found, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

type publishedEvent struct {
	Exchange   string
	RoutingKey string
	Body       interface{}
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakeEventPublisher) Publish(_ context.Context, exchange, routingKey string, body interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{Exchange: exchange, RoutingKey: routingKey, Body: body})
	return nil
}
