package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Billing errors.
var (
	ErrTransactionNotFound     = errors.New("payment transaction not found")
	ErrIllegalStatusTransition = errors.New("illegal payment status transition")
)

// subscriptionPeriod is one billing cycle.
const subscriptionPeriod = 30 * 24 * time.Hour

// BillingService handles payment transaction bookkeeping and subscription
// activation.
type BillingService struct {
	billingRepo *repository.BillingRepository
	logger      zerolog.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(billingRepo *repository.BillingRepository, logger zerolog.Logger) *BillingService {
	return &BillingService{
		billingRepo: billingRepo,
		logger:      logger.With().Str("component", "billing_service").Logger(),
	}
}

// CreatePayment opens a PENDING transaction. A duplicate transaction id
// surfaces as repository.ErrDuplicateTransaction and no row is written.
func (s *BillingService) CreatePayment(ctx context.Context, req *model.CreatePaymentRequest) (*model.PaymentTransaction, error) {
	currency := req.Currency
	if currency == "" {
		currency = "BDT"
	}
	t := &model.PaymentTransaction{
		UserID:        req.UserID,
		Plan:          model.SubscriptionPlan(req.Plan),
		Amount:        req.Amount,
		Currency:      currency,
		Provider:      req.Provider,
		TransactionID: req.TransactionID,
		Status:        model.PaymentPending,
	}
	if err := s.billingRepo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetPayment retrieves a transaction by its provider transaction id.
func (s *BillingService) GetPayment(ctx context.Context, transactionID string) (*model.PaymentTransaction, error) {
	t, err := s.billingRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// nextPeriod computes the billing window a completed payment buys. Paying
// while a subscription is still running extends it by one cycle from its
// current end; otherwise the cycle starts now.
func nextPeriod(current *model.Subscription, now time.Time) (time.Time, time.Time) {
	if current != nil && current.Status == model.SubscriptionActive && current.PeriodEnd.After(now) {
		return current.PeriodStart, current.PeriodEnd.Add(subscriptionPeriod)
	}
	return now, now.Add(subscriptionPeriod)
}

// AdvanceStatus moves a transaction through the status machine. A COMPLETED
// transition activates or extends the user's subscription; a REFUNDED
// transition downgrades the user to FREE. Subscription failure is logged but
// does not fail the transition (the ledger row is the source of truth).
func (s *BillingService) AdvanceStatus(ctx context.Context, transactionID string, next model.PaymentStatus) (*model.PaymentTransaction, error) {
	t, err := s.GetPayment(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !t.Status.CanTransitionTo(next) {
		return nil, ErrIllegalStatusTransition
	}

	if err := s.billingRepo.UpdateTransactionStatus(ctx, transactionID, next); err != nil {
		return nil, err
	}
	t.Status = next

	switch next {
	case model.PaymentCompleted:
		now := time.Now()
		var current *model.Subscription
		if sub, err := s.billingRepo.GetSubscription(ctx, t.UserID); err == nil {
			current = sub
		} else if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().Err(err).Str("user_id", t.UserID.String()).Msg("subscription lookup failed")
		}
		start, end := nextPeriod(current, now)
		if err := s.billingRepo.UpsertSubscription(ctx, t.UserID, t.Plan, start, end); err != nil {
			s.logger.Error().Err(err).Str("transaction_id", transactionID).
				Str("user_id", t.UserID.String()).Msg("subscription activation failed")
		}
	case model.PaymentRefunded:
		now := time.Now()
		if err := s.billingRepo.UpsertSubscription(ctx, t.UserID, model.PlanFree, now, now); err != nil {
			s.logger.Error().Err(err).Str("transaction_id", transactionID).
				Str("user_id", t.UserID.String()).Msg("subscription downgrade failed")
		}
	}
	return t, nil
}

// GetSubscription returns the user's current subscription, defaulting to an
// active FREE plan when no row exists.
func (s *BillingService) GetSubscription(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	sub, err := s.billingRepo.GetSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.Subscription{
				UserID: userID,
				Plan:   model.PlanFree,
				Status: model.SubscriptionActive,
			}, nil
		}
		return nil, err
	}
	// FREE has no billing window, so it never expires.
	if sub.Plan != model.PlanFree && sub.Status == model.SubscriptionActive && time.Now().After(sub.PeriodEnd) {
		sub.Status = model.SubscriptionExpired
	}
	return sub, nil
}

// ListUserPayments returns a user's transaction history.
func (s *BillingService) ListUserPayments(ctx context.Context, userID uuid.UUID) ([]model.PaymentTransaction, error) {
	return s.billingRepo.ListTransactionsByUser(ctx, userID)
}
