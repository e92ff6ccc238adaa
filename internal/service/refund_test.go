package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"railres/internal/models"
)

func TestDefaultRefundPolicy(t *testing.T) {
	policy := DefaultRefundPolicy()

	tests := []struct {
		name    string
		elapsed time.Duration
		refund  int64
		tier    models.RefundTier
	}{
		{"immediately", 0, 30000, models.RefundFull},
		{"exactly one day", 24 * time.Hour, 30000, models.RefundFull},
		{"just over one day", 24*time.Hour + time.Second, 15000, models.RefundPartial},
		{"exactly three days", 72 * time.Hour, 15000, models.RefundPartial},
		{"just over three days", 72*time.Hour + time.Second, 0, models.RefundNone},
		{"four days", 96 * time.Hour, 0, models.RefundNone},
		{"clock went backwards", -time.Hour, 30000, models.RefundFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Apply(30000, tt.elapsed)
			assert.Equal(t, tt.refund, got.Amount)
			assert.Equal(t, tt.tier, got.Tier)
		})
	}
}

func TestRefundRoundsDownOddAmounts(t *testing.T) {
	got := DefaultRefundPolicy().Apply(25001, 48*time.Hour)
	assert.Equal(t, int64(12500), got.Amount)
	assert.Equal(t, "Partial refund of 125.00 is issued.", got.Message)
}

func TestCustomRefundPolicy(t *testing.T) {
	policy := NewRefundPolicy(RefundRule{MaxElapsed: time.Hour, Percent: 100, Tier: models.RefundFull})

	assert.Equal(t, models.RefundFull, policy.Apply(1000, time.Hour).Tier)

	got := policy.Apply(1000, 2*time.Hour)
	assert.Equal(t, models.RefundNone, got.Tier)
	assert.Equal(t, "No refund available after 1 hours.", got.Message)
}
