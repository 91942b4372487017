package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRecord is one archived transaction event, as consumed from the
// wallet_events exchange by the worker.
type AuditRecord struct {
	TransactionID  string
	UserID         string
	Type           string
	Amount         float64
	Cryptocurrency string
	WalletAddress  string
	Timestamp      time.Time
	ProcessedAt    time.Time
}

// AuditRepository archives transaction events into PostgreSQL. This is the
// out-of-band trail; the MongoDB documents stay the system of record.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: pool}
}

// Migrate creates the archive table. The worker owns this one table, so it
// migrates itself at startup instead of depending on an external tool.
func (r *AuditRepository) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS transaction_audit (
			id BIGSERIAL PRIMARY KEY,
			transaction_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			cryptocurrency TEXT NOT NULL,
			wallet_address TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			processed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create transaction_audit table: %w", err)
	}
	return nil
}

// Save archives one event. ON CONFLICT DO NOTHING makes redelivered
// messages harmless: the queue guarantees at-least-once, not exactly-once.
func (r *AuditRepository) Save(ctx context.Context, record AuditRecord) error {
	query := `
		INSERT INTO transaction_audit
			(transaction_id, user_id, type, amount, cryptocurrency, wallet_address, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (transaction_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		record.TransactionID,
		record.UserID,
		record.Type,
		record.Amount,
		record.Cryptocurrency,
		record.WalletAddress,
		record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}
