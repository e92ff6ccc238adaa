package service

import (
	"fmt"
	"time"

	"railres/internal/models"
)

// RefundRule grants Percent of the price when the elapsed time since booking
// is at most MaxElapsed.
type RefundRule struct {
	MaxElapsed time.Duration
	Percent    int
	Tier       models.RefundTier
}

// RefundPolicy evaluates rules in order; the first rule whose MaxElapsed is
// not exceeded wins. Past the last rule there is no refund.
type RefundPolicy struct {
	rules []RefundRule
}

// Refund is the outcome of applying a RefundPolicy.
type Refund struct {
	Amount  int64
	Percent int
	Tier    models.RefundTier
	Message string
}

func NewRefundPolicy(rules ...RefundRule) RefundPolicy {
	return RefundPolicy{rules: rules}
}

// DefaultRefundPolicy: full refund within a day, half within three days.
func DefaultRefundPolicy() RefundPolicy {
	return NewRefundPolicy(
		RefundRule{MaxElapsed: 24 * time.Hour, Percent: 100, Tier: models.RefundFull},
		RefundRule{MaxElapsed: 72 * time.Hour, Percent: 50, Tier: models.RefundPartial},
	)
}

func (p RefundPolicy) Apply(price int64, elapsed time.Duration) Refund {
	for _, rule := range p.rules {
		if elapsed <= rule.MaxElapsed {
			amount := price * int64(rule.Percent) / 100
			return Refund{
				Amount:  amount,
				Percent: rule.Percent,
				Tier:    rule.Tier,
				Message: refundMessage(rule.Tier, amount),
			}
		}
	}
	return Refund{Tier: models.RefundNone, Message: p.noRefundMessage()}
}

func (p RefundPolicy) noRefundMessage() string {
	if len(p.rules) == 0 {
		return "No refund available."
	}
	last := p.rules[len(p.rules)-1].MaxElapsed
	return fmt.Sprintf("No refund available after %d hours.", int(last.Hours()))
}

func refundMessage(tier models.RefundTier, amount int64) string {
	if tier == models.RefundFull {
		return fmt.Sprintf("Full refund of %s is issued.", models.FormatAmount(amount))
	}
	return fmt.Sprintf("Partial refund of %s is issued.", models.FormatAmount(amount))
}
