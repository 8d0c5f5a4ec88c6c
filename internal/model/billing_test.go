package model

import "testing"

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentPending, PaymentCompleted, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentCancelled, true},
		{PaymentPending, PaymentRefunded, false},
		{PaymentPending, PaymentPending, false},
		{PaymentCompleted, PaymentRefunded, true},
		{PaymentCompleted, PaymentPending, false},
		{PaymentCompleted, PaymentFailed, false},
		{PaymentFailed, PaymentCompleted, false},
		{PaymentRefunded, PaymentPending, false},
		{PaymentCancelled, PaymentCompleted, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
