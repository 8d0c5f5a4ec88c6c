package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlan enumerates the plan tiers.
type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "FREE"
	PlanStandard SubscriptionPlan = "STANDARD"
	PlanPremium  SubscriptionPlan = "PREMIUM"
)

// SubscriptionStatus enumerates subscription states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is the current plan tier of one user.
type Subscription struct {
	UserID      uuid.UUID          `json:"user_id"`
	Plan        SubscriptionPlan   `json:"plan"`
	Status      SubscriptionStatus `json:"status"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PaymentStatus enumerates the payment transaction states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status machine permits moving from the
// current status to next. PENDING fans out to COMPLETED/FAILED/CANCELLED;
// only COMPLETED payments can be refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentCompleted || next == PaymentFailed || next == PaymentCancelled
	case PaymentCompleted:
		return next == PaymentRefunded
	default:
		return false
	}
}

// PaymentTransaction is one ledger row per payment attempt.
type PaymentTransaction struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	Plan          SubscriptionPlan `json:"plan"`
	Amount        float64          `json:"amount"`
	Currency      string           `json:"currency"`
	Provider      string           `json:"provider"`
	TransactionID string           `json:"transaction_id"`
	Status        PaymentStatus    `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreatePaymentRequest opens a PENDING transaction.
type CreatePaymentRequest struct {
	UserID        uuid.UUID `json:"user_id" binding:"required"`
	Plan          string    `json:"plan" binding:"required,oneof=FREE STANDARD PREMIUM"`
	Amount        float64   `json:"amount" binding:"required,gte=0"`
	Currency      string    `json:"currency" binding:"omitempty,len=3"`
	Provider      string    `json:"provider" binding:"required,min=2,max=50"`
	TransactionID string    `json:"transaction_id" binding:"required,min=4,max=128"`
}

// UpdatePaymentStatusRequest advances the status machine.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED FAILED REFUNDED CANCELLED"`
}
