package service

import (
	"testing"
	"time"

	"github.com/porikkha/porikkha-backend/internal/model"
)

func TestNextPeriodFreshActivation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	start, end := nextPeriod(nil, now)
	if !start.Equal(now) {
		t.Errorf("start = %v, want %v", start, now)
	}
	if !end.Equal(now.Add(subscriptionPeriod)) {
		t.Errorf("end = %v, want %v", end, now.Add(subscriptionPeriod))
	}
}

func TestNextPeriodExtendsRunningSubscription(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sub := &model.Subscription{
		Plan:        model.PlanPremium,
		Status:      model.SubscriptionActive,
		PeriodStart: now.Add(-10 * 24 * time.Hour),
		PeriodEnd:   now.Add(20 * 24 * time.Hour),
	}

	start, end := nextPeriod(sub, now)
	if !start.Equal(sub.PeriodStart) {
		t.Errorf("start = %v, want unchanged %v", start, sub.PeriodStart)
	}
	if !end.Equal(sub.PeriodEnd.Add(subscriptionPeriod)) {
		t.Errorf("end = %v, want %v", end, sub.PeriodEnd.Add(subscriptionPeriod))
	}
}

func TestNextPeriodRestartsAfterLapse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		sub  *model.Subscription
	}{
		{"period already over", &model.Subscription{
			Status:      model.SubscriptionActive,
			PeriodStart: now.Add(-60 * 24 * time.Hour),
			PeriodEnd:   now.Add(-30 * 24 * time.Hour),
		}},
		{"cancelled", &model.Subscription{
			Status:      model.SubscriptionCancelled,
			PeriodStart: now.Add(-5 * 24 * time.Hour),
			PeriodEnd:   now.Add(25 * 24 * time.Hour),
		}},
		{"expired", &model.Subscription{
			Status:    model.SubscriptionExpired,
			PeriodEnd: now.Add(-time.Hour),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := nextPeriod(tt.sub, now)
			if !start.Equal(now) {
				t.Errorf("start = %v, want %v", start, now)
			}
			if !end.Equal(now.Add(subscriptionPeriod)) {
				t.Errorf("end = %v, want %v", end, now.Add(subscriptionPeriod))
			}
		})
	}
}
