package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// ErrDuplicateTransaction is returned for a repeated gateway transaction id.
var ErrDuplicateTransaction = errors.New("transaction with this id already exists")

// BillingRepository handles subscriptions and payment transactions.
type BillingRepository struct {
	pool *pgxpool.Pool
}

// NewBillingRepository creates a new BillingRepository.
func NewBillingRepository(pool *pgxpool.Pool) *BillingRepository {
	return &BillingRepository{pool: pool}
}

// CreateTransaction inserts a new PENDING transaction. The transaction_id
// column is unique; a duplicate maps to ErrDuplicateTransaction, never a
// second row.
func (r *BillingRepository) CreateTransaction(ctx context.Context, t *model.PaymentTransaction) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payment_transactions (user_id, plan, amount, currency, provider, transaction_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Plan, t.Amount, t.Currency, t.Provider, t.TransactionID, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTransaction
		}
		return err
	}
	return nil
}

// GetTransaction retrieves a transaction by its gateway transaction id.
func (r *BillingRepository) GetTransaction(ctx context.Context, transactionID string) (*model.PaymentTransaction, error) {
	t := &model.PaymentTransaction{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, plan, amount, currency, provider, transaction_id, status, created_at, updated_at
		 FROM payment_transactions WHERE transaction_id = $1`, transactionID,
	).Scan(&t.ID, &t.UserID, &t.Plan, &t.Amount, &t.Currency, &t.Provider,
		&t.TransactionID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransactionStatus advances a transaction's status.
func (r *BillingRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status model.PaymentStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payment_transactions SET status = $1, updated_at = NOW()
		 WHERE transaction_id = $2`,
		status, transactionID)
	return err
}

// ListTransactionsByUser returns a user's ledger rows, newest first.
func (r *BillingRepository) ListTransactionsByUser(ctx context.Context, userID uuid.UUID) ([]model.PaymentTransaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, plan, amount, currency, provider, transaction_id, status, created_at, updated_at
		 FROM payment_transactions WHERE user_id = $1
		 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []model.PaymentTransaction
	for rows.Next() {
		var t model.PaymentTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Plan, &t.Amount, &t.Currency,
			&t.Provider, &t.TransactionID, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetSubscription retrieves a user's subscription.
func (r *BillingRepository) GetSubscription(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	s := &model.Subscription{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, plan, status, period_start, period_end, updated_at
		 FROM subscriptions WHERE user_id = $1`, userID,
	).Scan(&s.UserID, &s.Plan, &s.Status, &s.PeriodStart, &s.PeriodEnd, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpsertSubscription activates or extends a user's subscription.
func (r *BillingRepository) UpsertSubscription(ctx context.Context, userID uuid.UUID, plan model.SubscriptionPlan, periodStart, periodEnd time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subscriptions (user_id, plan, status, period_start, period_end, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET plan = EXCLUDED.plan, status = EXCLUDED.status,
		     period_start = EXCLUDED.period_start, period_end = EXCLUDED.period_end,
		     updated_at = NOW()`,
		userID, plan, model.SubscriptionActive, periodStart, periodEnd)
	return err
}
